// cmd/truthguard/scraper.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const duckDuckGoHTMLURL = "https://html.duckduckgo.com/html/"

// Scraper pulls candidate evidence from a search-engine HTML results page,
// scoped to the trusted-domain allow-list. No API key required.
type Scraper struct {
	client    *http.Client
	searchURL string
	userAgent string
	sources   *SourcesConfig
}

// NewScraper creates a scraper from the configuration.
func NewScraper(cfg *Config, sources *SourcesConfig) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: ScrapeTimeout},
		searchURL: duckDuckGoHTMLURL,
		userAgent: cfg.UserAgent,
		sources:   sources,
	}
}

// Search scrapes the results page for the statement scoped to trusted
// domains and returns scored evidence items. Results below the relevance
// threshold or with too-short titles are discarded here.
func (s *Scraper) Search(ctx context.Context, statement string) ([]EvidenceItem, error) {
	siteClauses := make([]string, 0, len(s.sources.TrustedDomains))
	for _, domain := range s.sources.TrustedDomains {
		siteClauses = append(siteClauses, "site:"+domain)
	}
	query := statement + " " + strings.Join(siteClauses, " OR ")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.searchURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	var items []EvidenceItem
	doc.Find(".result").Each(func(i int, sel *goquery.Selection) {
		if i >= 10 {
			return
		}

		titleLink := sel.Find(".result__title a")
		title := strings.TrimSpace(titleLink.Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		href, _ := titleLink.Attr("href")

		if title == "" || href == "" {
			return
		}

		resultURL := unwrapRedirectURL(href)
		relevance := scoreRelevance(statement, title, snippet, s.sources.FactCheckTerms)

		if relevance >= MinEvidenceRelevance && len(title) > MinEvidenceTitleLen {
			items = append(items, EvidenceItem{
				Title:     title,
				URL:       resultURL,
				Snippet:   snippet,
				Source:    sourceNameForURL(resultURL),
				Relevance: relevance,
			})
		}
	})

	return items, nil
}

// unwrapRedirectURL resolves DuckDuckGo's /l/?uddg=... redirect wrapper back
// to the target URL.
func unwrapRedirectURL(href string) string {
	if !strings.Contains(href, "uddg=") {
		return href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// wellKnownSources maps domains to display names for results from the
// allow-list; anything else falls back to its hostname.
var wellKnownSources = map[string]string{
	"reuters.com":    "Reuters",
	"bbc.com":        "BBC",
	"apnews.com":     "AP News",
	"cdc.gov":        "CDC",
	"nasa.gov":       "NASA",
	"snopes.com":     "Snopes",
	"factcheck.org":  "FactCheck.org",
	"politifact.com": "PolitiFact",
}

func sourceNameForURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "Web Search Result"
	}
	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	if name, ok := wellKnownSources[host]; ok {
		return name
	}
	return host
}

// scoreRelevance scores a result against the query: +0.8 for the exact
// phrase in the title, +0.6 in the snippet, +0.2 per query word in the
// title, +0.1 per word in the snippet, +0.3 once if any fact-check term
// appears in either. Capped at 1.0.
func scoreRelevance(query, title, snippet string, factCheckTerms []string) float64 {
	queryLower := strings.ToLower(query)
	titleLower := strings.ToLower(title)
	snippetLower := strings.ToLower(snippet)

	var score float64

	if strings.Contains(titleLower, queryLower) {
		score += 0.8
	}
	if strings.Contains(snippetLower, queryLower) {
		score += 0.6
	}

	for _, word := range strings.Fields(queryLower) {
		if len(word) <= 2 {
			continue
		}
		if strings.Contains(titleLower, word) {
			score += 0.2
		}
		if strings.Contains(snippetLower, word) {
			score += 0.1
		}
	}

	for _, term := range factCheckTerms {
		if strings.Contains(titleLower, term) || strings.Contains(snippetLower, term) {
			score += 0.3
			break
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}
