// cmd/truthguard/constants.go
package main

import "time"

// Application constants
const (
	AppName    = "TruthGuard"
	AppVersion = "1.0.0"

	// Timeouts
	ProviderTimeout = 30 * time.Second
	EvidenceTimeout = 10 * time.Second
	ScrapeTimeout   = 10 * time.Second
	QueryTimeout    = 10 * time.Second
	ShutdownTimeout = 15 * time.Second

	// API limits
	MaxPayloadSize       = 1024 * 1024 // 1MB
	MaxRequestsPerMinute = 60
	DefaultHistoryLimit  = 20
	MaxHistoryLimit      = 100

	// Evidence gathering
	MaxEvidenceItems     = 8
	MinEvidenceRelevance = 0.3
	MinEvidenceTitleLen  = 10
	MaxItemsPerFeed      = 10

	// Data retention
	DefaultRetentionDays = 90
)

// Verdict statuses returned to clients. Any other value coming back from a
// provider is coerced to StatusQuestionable.
const (
	StatusTrue         = "true"
	StatusQuestionable = "questionable"
	StatusFake         = "fake"
)

// Source credibility tiers
const (
	CredibilityHigh   = "high"
	CredibilityMedium = "medium"
	CredibilityLow    = "low"
)

// Defaults substituted for missing source fields so the response contract
// is never violated by a partially malformed provider payload.
const (
	DefaultSourceName    = "Unknown Source"
	DefaultSourceURL     = "#"
	DefaultSourceSummary = "No summary available"
)

// DegradedReasoning is the reasoning attached to the deterministic fallback
// result used when a provider response cannot be parsed.
const DegradedReasoning = "The verification service returned a response that could not be fully analyzed. " +
	"Treat this statement with caution and consult the cited fact-checking organizations directly."
