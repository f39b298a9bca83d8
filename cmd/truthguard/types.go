// cmd/truthguard/types.go
package main

import "time"

// FactCheckRequest is the inbound body for POST /api/fact-check. Ephemeral,
// never stored as-is.
type FactCheckRequest struct {
	Statement string `json:"statement"`
	UserID    string `json:"userId"`
	Retry     bool   `json:"retry"`
}

// EvidenceItem is a candidate supporting/contradicting snippet gathered from
// news or search sources. It is only folded into the AI prompt, never
// persisted on its own.
type EvidenceItem struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Snippet   string  `json:"snippet"`
	Source    string  `json:"source"`
	Relevance float64 `json:"relevance"`
}

// SourceRef is a citation attached to a verdict by the AI provider.
type SourceRef struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Credibility string `json:"credibility"`
	Summary     string `json:"summary"`
}

// FactCheckResult is the canonical output contract. Status is always one of
// StatusTrue/StatusQuestionable/StatusFake and Confidence is always a finite
// number in [0,1] after normalizeResult has run.
type FactCheckResult struct {
	ID         *string     `json:"id"`
	Status     string      `json:"status"`
	Confidence float64     `json:"confidence"`
	Reasoning  string      `json:"reasoning"`
	Sources    []SourceRef `json:"sources"`
}

// FactCheckRecord is a persisted fact check row, returned by the public
// history endpoint.
type FactCheckRecord struct {
	ID         string    `db:"id" json:"id"`
	Statement  string    `db:"statement" json:"statement"`
	Status     string    `db:"status" json:"status"`
	Confidence float64   `db:"confidence" json:"confidence"`
	Reasoning  string    `db:"reasoning" json:"reasoning"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
