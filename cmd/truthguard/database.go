// cmd/truthguard/database.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Database tables
const (
	createFactChecksTable = `
	CREATE TABLE IF NOT EXISTS fact_checks (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		statement   TEXT NOT NULL,
		status      TEXT NOT NULL,
		confidence  FLOAT NOT NULL,
		reasoning   TEXT,
		user_id     TEXT,
		created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createSourcesTable = `
	CREATE TABLE IF NOT EXISTS sources (
		id             SERIAL PRIMARY KEY,
		fact_check_id  UUID NOT NULL REFERENCES fact_checks(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		url            TEXT NOT NULL,
		credibility    TEXT NOT NULL,
		summary        TEXT,
		created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
)

// Store is the Postgres persistence adapter. It is optional and best-effort:
// the orchestrator swallows every error it returns.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to Postgres and ensures the schema exists.
func NewStore(cfg *Config) (*Store, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}
	return store, nil
}

// initSchema creates the fact_checks and sources tables.
func (s *Store) initSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), QueryTimeout)
	defer cancel()

	for _, query := range []string{createFactChecksTable, createSourcesTable} {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %v", err)
		}
	}
	return nil
}

// SaveFactCheck inserts one fact_checks row plus its sources rows and returns
// the generated id. The inserts are not wrapped in a transaction; a
// fact-check row without its sources is an accepted, non-fatal
// inconsistency.
func (s *Store) SaveFactCheck(ctx context.Context, statement, userID string, result *FactCheckResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	var id string
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO fact_checks (statement, status, confidence, reasoning, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, statement, result.Status, result.Confidence, result.Reasoning, userID)
	if err != nil {
		return "", fmt.Errorf("failed to store fact check: %v", err)
	}

	for _, src := range result.Sources {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO sources (fact_check_id, name, url, credibility, summary)
			VALUES ($1, $2, $3, $4, $5)
		`, id, src.Name, src.URL, src.Credibility, src.Summary)
		if err != nil {
			// Partial write accepted; the fact-check row already exists.
			GetLogger().Warning("Failed to store source for fact check %s: %v", id, err)
			break
		}
	}

	return id, nil
}

// RecentFactChecks returns the most recent persisted fact checks.
func (s *Store) RecentFactChecks(ctx context.Context, limit int) ([]FactCheckRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	records := []FactCheckRecord{}
	err := s.db.SelectContext(ctx, &records, `
		SELECT id, statement, status, confidence, reasoning, created_at
		FROM fact_checks
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent fact checks: %v", err)
	}
	return records, nil
}

// CleanupOldData removes fact checks older than the retention period.
// Sources rows cascade.
func (s *Store) CleanupOldData(ctx context.Context, retention time.Duration) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	cutoff := time.Now().Add(-retention)
	res, err := s.db.ExecContext(ctx, `DELETE FROM fact_checks WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old data: %v", err)
	}

	removed, _ := res.RowsAffected()
	return removed, nil
}

// Ping checks database reachability for the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
