// cmd/truthguard/config.go
package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds application configuration, loaded once at startup and passed
// explicitly into every component that needs it.
type Config struct {
	// Server
	Port               int
	RateLimitPerMinute int

	// AI providers. ProviderOrder names the fallback preference; providers
	// whose key is missing are skipped when the chain is built.
	ProviderOrder []string
	GroqAPIKey    string
	GroqModel     string
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Evidence gathering
	NewsAPIKey     string
	EnableScraping bool
	EnableFeeds    bool
	UserAgent      string
	SourcesPath    string

	// Persistence
	EnableDatabase   bool
	DatabaseHost     string
	DatabasePort     int
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string
	RetentionDays    int
	CleanupCron      string

	// Logging
	LogPath  string
	LogLevel string
}

// LoadConfig builds the configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Port:               GetEnvInt("PORT", 8080),
		RateLimitPerMinute: GetEnvInt("RATE_LIMIT_PER_MINUTE", MaxRequestsPerMinute),

		ProviderOrder: GetEnvStringSlice("AI_PROVIDER_ORDER", []string{"groq", "gemini"}),
		GroqAPIKey:    GetEnvString("GROQ_API_KEY", ""),
		GroqModel:     GetEnvString("GROQ_MODEL", "llama-3.3-70b-versatile"),
		GeminiAPIKey:  GetEnvString("GEMINI_API_KEY", ""),
		GeminiModel:   GetEnvString("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  GetEnvString("OPENAI_API_KEY", ""),
		OpenAIModel:   GetEnvString("OPENAI_MODEL", "gpt-3.5-turbo"),

		NewsAPIKey:     GetEnvString("NEWS_API_KEY", ""),
		EnableScraping: GetEnvBool("ENABLE_SCRAPING", true),
		EnableFeeds:    GetEnvBool("ENABLE_FACT_CHECK_FEEDS", false),
		UserAgent:      GetEnvString("USER_AGENT", "Mozilla/5.0 (compatible; TruthGuard/"+AppVersion+")"),
		SourcesPath:    GetEnvString("SOURCES_CONFIG", "config/sources.yml"),

		EnableDatabase:   GetEnvBool("ENABLE_DATABASE", false),
		DatabaseHost:     GetEnvString("DATABASE_HOST", "localhost"),
		DatabasePort:     GetEnvInt("DATABASE_PORT", 5432),
		DatabaseUser:     GetEnvString("DATABASE_USER", "truthguard"),
		DatabasePassword: GetEnvString("DATABASE_PASSWORD", ""),
		DatabaseName:     GetEnvString("DATABASE_NAME", "truthguard"),
		DatabaseSSLMode:  GetEnvString("DATABASE_SSLMODE", "disable"),
		RetentionDays:    GetEnvInt("RETENTION_DAYS", DefaultRetentionDays),
		CleanupCron:      GetEnvString("CLEANUP_CRON", "0 3 * * *"),

		LogPath:  GetEnvString("LOG_PATH", "logs/truthguard.log"),
		LogLevel: GetEnvString("LOG_LEVEL", "info"),
	}
}

// ValidateConfig ensures the configuration is usable. At least one AI
// provider key must be present; everything else degrades gracefully.
func ValidateConfig(cfg *Config) error {
	if cfg.GroqAPIKey == "" && cfg.GeminiAPIKey == "" && cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("no AI provider configured: set at least one of GROQ_API_KEY, GEMINI_API_KEY, OPENAI_API_KEY")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid PORT: %d", cfg.Port)
	}
	if len(cfg.ProviderOrder) == 0 {
		return fmt.Errorf("AI_PROVIDER_ORDER must name at least one provider")
	}
	return nil
}

// FeedSource is a fact-checking organization feed polled for evidence.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// SourcesConfig is the evidence-source allow-list loaded from sources.yml.
type SourcesConfig struct {
	TrustedDomains []string     `yaml:"trusted_domains"`
	FactCheckTerms []string     `yaml:"fact_check_terms"`
	FactCheckFeeds []FeedSource `yaml:"fact_check_feeds"`
	StopWords      []string     `yaml:"stop_words"`
}

// defaultSourcesConfig mirrors the built-in allow-list used when no
// sources.yml is present.
func defaultSourcesConfig() *SourcesConfig {
	return &SourcesConfig{
		TrustedDomains: []string{
			"reuters.com",
			"bbc.com",
			"apnews.com",
			"cdc.gov",
			"nasa.gov",
			"snopes.com",
			"factcheck.org",
			"politifact.com",
		},
		FactCheckTerms: []string{
			"fact check", "false", "true", "misleading", "verify", "debunk",
		},
		FactCheckFeeds: []FeedSource{
			{Name: "Snopes", URL: "https://www.snopes.com/feed/"},
			{Name: "FullFact", URL: "https://fullfact.org/feed/all/"},
			{Name: "PolitiFact", URL: "https://www.politifact.com/rss/all/"},
		},
		StopWords: defaultStopWords,
	}
}

// LoadSourcesConfig reads the evidence-source configuration, falling back to
// the built-in defaults when the file is absent. Missing sections inherit
// their default values so a partial file is fine.
func LoadSourcesConfig(path string) (*SourcesConfig, error) {
	defaults := defaultSourcesConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, fmt.Errorf("failed to read sources config: %v", err)
	}

	var sc SourcesConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse sources config: %v", err)
	}

	if len(sc.TrustedDomains) == 0 {
		sc.TrustedDomains = defaults.TrustedDomains
	}
	if len(sc.FactCheckTerms) == 0 {
		sc.FactCheckTerms = defaults.FactCheckTerms
	}
	if len(sc.FactCheckFeeds) == 0 {
		sc.FactCheckFeeds = defaults.FactCheckFeeds
	}
	if len(sc.StopWords) == 0 {
		sc.StopWords = defaults.StopWords
	}

	return &sc, nil
}

// defaultStopWords are discarded during keyword extraction along with any
// token of three characters or fewer.
var defaultStopWords = []string{
	"about", "above", "after", "again", "against", "also", "among", "because",
	"been", "before", "being", "below", "between", "both", "could", "does",
	"doing", "down", "during", "each", "every", "from", "further", "have",
	"having", "here", "into", "just", "more", "most", "once", "only", "other",
	"over", "same", "should", "some", "such", "than", "that", "their", "them",
	"then", "there", "these", "they", "this", "those", "through", "under",
	"until", "very", "were", "what", "when", "where", "which", "while", "will",
	"with", "would", "your",
}
