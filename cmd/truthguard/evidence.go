// cmd/truthguard/evidence.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"
)

const newsAPIBaseURL = "https://newsapi.org/v2/everything"

// EvidenceGatherer collects candidate source snippets to ground the AI's
// answer. Every strategy is best-effort: failures are logged and the request
// proceeds with whatever was found, possibly nothing.
type EvidenceGatherer struct {
	cfg     *Config
	sources *SourcesConfig
	client  *http.Client
	scraper *Scraper
	parser  *gofeed.Parser
	newsURL string
}

// evidenceBatch is the outcome of one gathering strategy.
type evidenceBatch struct {
	strategy string
	items    []EvidenceItem
	err      error
}

// NewEvidenceGatherer creates an evidence gatherer from the configuration.
func NewEvidenceGatherer(cfg *Config, sources *SourcesConfig) *EvidenceGatherer {
	return &EvidenceGatherer{
		cfg:     cfg,
		sources: sources,
		client:  &http.Client{Timeout: EvidenceTimeout},
		scraper: NewScraper(cfg, sources),
		parser:  gofeed.NewParser(),
		newsURL: newsAPIBaseURL,
	}
}

// Gather runs the configured strategies concurrently and returns the merged,
// ranked evidence list. It never returns an error; an empty list is a valid
// outcome.
func (g *EvidenceGatherer) Gather(ctx context.Context, statement string) []EvidenceItem {
	ctx, cancel := context.WithTimeout(ctx, EvidenceTimeout)
	defer cancel()

	type strategy struct {
		name string
		run  func(context.Context, string) ([]EvidenceItem, error)
	}

	var strategies []strategy
	if g.cfg.NewsAPIKey != "" {
		strategies = append(strategies, strategy{"newsapi", g.fetchNewsArticles})
	}
	if g.cfg.EnableScraping {
		strategies = append(strategies, strategy{"scraper", g.scraper.Search})
	}
	if g.cfg.EnableFeeds {
		strategies = append(strategies, strategy{"feeds", g.fetchFactCheckFeeds})
	}
	if len(strategies) == 0 {
		return nil
	}

	results := make(chan evidenceBatch, len(strategies))
	var wg sync.WaitGroup

	for _, s := range strategies {
		wg.Add(1)
		go func(s strategy) {
			defer wg.Done()
			items, err := s.run(ctx, statement)
			results <- evidenceBatch{strategy: s.name, items: items, err: err}
		}(s)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []EvidenceItem
	for batch := range results {
		if batch.err != nil {
			GetLogger().Warning("Evidence strategy %s failed: %v", batch.strategy, batch.err)
			continue
		}
		all = append(all, batch.items...)
	}

	return mergeEvidence(all)
}

// mergeEvidence deduplicates by URL, drops low-relevance and short-title
// results, sorts by relevance and keeps the top MaxEvidenceItems.
func mergeEvidence(items []EvidenceItem) []EvidenceItem {
	seen := make(map[string]bool, len(items))
	merged := make([]EvidenceItem, 0, len(items))

	for _, item := range items {
		if item.Relevance < MinEvidenceRelevance || len(item.Title) <= MinEvidenceTitleLen {
			continue
		}
		if item.URL == "" || seen[item.URL] {
			continue
		}
		seen[item.URL] = true
		merged = append(merged, item)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Relevance > merged[j].Relevance
	})

	if len(merged) > MaxEvidenceItems {
		merged = merged[:MaxEvidenceItems]
	}
	return merged
}

// extractKeywords lowercases the statement, splits on whitespace and drops
// stop-words and tokens of three characters or fewer.
func extractKeywords(statement string, stopWords []string) []string {
	stops := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stops[w] = true
	}

	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(statement)) {
		token = strings.Trim(token, ".,;:!?\"'()[]")
		if len(token) <= 3 || stops[token] {
			continue
		}
		keywords = append(keywords, token)
	}
	return keywords
}

// buildNewsQuery joins the extracted keywords into a NewsAPI OR-query.
func buildNewsQuery(statement string, stopWords []string) string {
	return strings.Join(extractKeywords(statement, stopWords), " OR ")
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// fetchNewsArticles queries the news search API with the keyword OR-query.
func (g *EvidenceGatherer) fetchNewsArticles(ctx context.Context, statement string) ([]EvidenceItem, error) {
	query := buildNewsQuery(statement, g.sources.StopWords)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.newsURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", g.cfg.NewsAPIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	var items []EvidenceItem
	for _, article := range parsed.Articles {
		items = append(items, EvidenceItem{
			Title:     article.Title,
			URL:       article.URL,
			Snippet:   article.Description,
			Source:    article.Source.Name,
			Relevance: scoreRelevance(statement, article.Title, article.Description, g.sources.FactCheckTerms),
		})
	}
	return items, nil
}

// fetchFactCheckFeeds polls the RSS feeds of fact-checking organizations and
// keeps items that score against the statement.
func (g *EvidenceGatherer) fetchFactCheckFeeds(ctx context.Context, statement string) ([]EvidenceItem, error) {
	var items []EvidenceItem
	var errs []string

	for _, feed := range g.sources.FactCheckFeeds {
		parsed, err := g.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", feed.Name, err))
			continue
		}

		count := 0
		for _, item := range parsed.Items {
			if item.Title == "" || item.Link == "" {
				continue
			}
			if count >= MaxItemsPerFeed {
				break
			}
			count++
			items = append(items, EvidenceItem{
				Title:     item.Title,
				URL:       item.Link,
				Snippet:   item.Description,
				Source:    feed.Name,
				Relevance: scoreRelevance(statement, item.Title, item.Description, g.sources.FactCheckTerms),
			})
		}
	}

	if len(items) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all feeds failed: %s", strings.Join(errs, "; "))
	}
	if len(errs) > 0 {
		GetLogger().Debug("Some fact-check feeds failed: %s", strings.Join(errs, "; "))
	}
	return items, nil
}
