// cmd/truthguard/handlers.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// handleFactCheck validates the request, runs the orchestrator and maps any
// TruthGuardError to its HTTP status. Everything else is a best-effort 200.
func (s *Server) handleFactCheck(w http.ResponseWriter, r *http.Request) {
	IncrementCounter("requests_total")

	r.Body = http.MaxBytesReader(w, r.Body, MaxPayloadSize)

	var req FactCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if strings.TrimSpace(req.Statement) == "" {
		respondWithError(w, http.StatusBadRequest, "Statement is required")
		return
	}

	result, err := s.checker.Check(r.Context(), &req)
	if err != nil {
		if tge, ok := AsTruthGuardError(err); ok {
			RecordError("fact-check", tge)
			respondWithError(w, tge.HTTPStatus(), tge.Message)
			return
		}
		RecordError("fact-check", err)
		respondWithError(w, http.StatusInternalServerError, "Fact-checking failed")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// handleRecentFactChecks serves the public history of persisted checks.
func (s *Server) handleRecentFactChecks(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	if s.store == nil {
		respondWithJSON(w, http.StatusOK, []FactCheckRecord{})
		return
	}

	records, err := s.store.RecentFactChecks(r.Context(), limit)
	if err != nil {
		RecordError("history", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load recent fact checks")
		return
	}

	respondWithJSON(w, http.StatusOK, records)
}

// handleHealth reports service status; degraded when the configured store
// is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.store.Ping(ctx); err != nil {
			status = "degraded"
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": AppVersion,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
	})
}

// handleMetrics exposes system and application metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, collectMetrics())
}

// handleRecentErrors exposes the in-memory error buffer for diagnostics.
func (s *Server) handleRecentErrors(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, errorBuffer.Recent(25))
}
