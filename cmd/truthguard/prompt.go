// cmd/truthguard/prompt.go
package main

import (
	"fmt"
	"strings"
)

// factCheckSystemPrompt primes the model for the verification role.
const factCheckSystemPrompt = "You are a professional fact-checker. Analyze statements using the " +
	"provided sources when available and respond with valid JSON only."

// buildPrompt renders the statement, the gathered evidence and the output
// schema into the single user prompt shared by every provider.
func buildPrompt(statement string, evidence []EvidenceItem) string {
	var b strings.Builder

	b.WriteString("You are a professional fact-checker. Analyze the following statement using the provided sources.\n\n")
	fmt.Fprintf(&b, "Statement to fact-check: \"%s\"\n\n", statement)

	b.WriteString("Available sources:\n")
	if len(evidence) == 0 {
		b.WriteString("No specific sources found for this statement.\n")
	} else {
		for i, item := range evidence {
			if i > 0 {
				b.WriteString("\n---\n\n")
			}
			fmt.Fprintf(&b, "Source %d: %s\n", i+1, item.Source)
			fmt.Fprintf(&b, "Title: %s\n", item.Title)
			fmt.Fprintf(&b, "Content: %s\n", item.Snippet)
			fmt.Fprintf(&b, "URL: %s\n", item.URL)
			fmt.Fprintf(&b, "Relevance: %.0f%%\n", item.Relevance*100)
		}
	}

	b.WriteString(`
Provide a comprehensive fact-check analysis in JSON format:

{
  "status": "true" | "questionable" | "fake",
  "confidence": <number between 0.1 and 1.0>,
  "reasoning": "<detailed analysis explaining your verdict>",
  "sources": [
    {
      "name": "<source name>",
      "url": "<source URL>",
      "credibility": "high" | "medium" | "low",
      "summary": "<how this source relates to the statement>"
    }
  ]
}

Guidelines:
- Use provided sources as primary evidence when available
- If no relevant sources were found, rely on your training knowledge
- Consider source credibility (wire services, public-health and space agencies = high; others vary)
- For statements about date-based cultural or religious events, remember that
  lunar-calendar dates shift against the solar calendar from year to year;
  prefer "questionable" over "fake" for predicted future dates
- Be transparent about evidence quality and provide specific reasoning for your verdict`)

	return b.String()
}
