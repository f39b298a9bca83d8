// cmd/truthguard/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := LoadConfig()
	if err := ValidateConfig(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := InitLogger(cfg.LogPath, ParseLogLevel(cfg.LogLevel)); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := GetLogger()
	logger.Info("%s v%s starting up", AppName, AppVersion)

	sources, err := LoadSourcesConfig(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("Failed to load sources config: %v", err)
	}

	// Persistence is optional and best-effort end to end; a failed connection
	// only disables durability and history, never fact checking.
	var store *Store
	if cfg.EnableDatabase {
		store, err = NewStore(cfg)
		if err != nil {
			logger.Warning("Database unavailable, continuing without persistence: %v", err)
			store = nil
		}
	}

	providers := buildProviders(cfg)
	if len(providers) == 0 {
		log.Fatalf("No AI providers could be built from AI_PROVIDER_ORDER=%v", cfg.ProviderOrder)
	}
	for _, p := range providers {
		logger.Info("AI provider configured: %s", p.Name())
	}

	evidence := NewEvidenceGatherer(cfg, sources)

	// A typed-nil *Store must not leak into the interfaces.
	var orchStore resultStore
	var readStore historyStore
	if store != nil {
		orchStore = store
		readStore = store
	}

	orch := NewOrchestrator(providers, evidence, orchStore)
	server := NewServer(cfg, orch, readStore)
	server.Start()

	scheduler := StartScheduler(cfg, store)
	defer scheduler.Stop()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("Database close failed: %v", err)
		}
	}
	logger.Info("Shutdown complete")
	_ = logger.Close()
}

// buildProviders assembles the fallback chain in the configured preference
// order, skipping providers whose key is missing.
func buildProviders(cfg *Config) []Provider {
	var providers []Provider
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "groq":
			if cfg.GroqAPIKey != "" {
				providers = append(providers, NewGroqProvider(cfg.GroqAPIKey, cfg.GroqModel))
			}
		case "gemini":
			if cfg.GeminiAPIKey != "" {
				providers = append(providers, NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel))
			}
		case "openai":
			if cfg.OpenAIAPIKey != "" {
				providers = append(providers, NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel))
			}
		default:
			fmt.Fprintf(os.Stderr, "Unknown provider %q in AI_PROVIDER_ORDER, skipping\n", name)
		}
	}
	return providers
}
