// cmd/truthguard/server.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// corsAllowHeaders is the fixed preflight allow-list every response carries.
const corsAllowHeaders = "authorization, x-client-info, apikey, content-type"

// factChecker is what the handlers need from the orchestrator; tests
// substitute a stub.
type factChecker interface {
	Check(ctx context.Context, req *FactCheckRequest) (*FactCheckResult, error)
}

// historyStore is the optional read side behind the public history endpoint.
type historyStore interface {
	RecentFactChecks(ctx context.Context, limit int) ([]FactCheckRecord, error)
	Ping(ctx context.Context) error
}

// Server is the HTTP surface of the service.
type Server struct {
	router  *mux.Router
	http    *http.Server
	checker factChecker
	store   historyStore
	limiter *visitorLimiter
}

// NewServer builds the router and middleware chain. store may be nil.
func NewServer(cfg *Config, checker factChecker, store historyStore) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		checker: checker,
		store:   store,
		limiter: newVisitorLimiter(cfg.RateLimitPerMinute),
	}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/fact-check", s.handleFactCheck).Methods("POST")
	api.HandleFunc("/fact-checks/recent", s.handleRecentFactChecks).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")
	api.HandleFunc("/errors", s.handleRecentErrors).Methods("GET")

	handler := s.recoverMiddleware(s.corsMiddleware(s.rateLimitMiddleware(s.router)))

	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start begins serving in the background.
func (s *Server) Start() {
	go func() {
		GetLogger().Info("Starting %s API on %s", AppName, s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			GetLogger().Error("API server failed: %v", err)
		}
	}()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// corsMiddleware attaches the wildcard CORS headers to every response and
// answers preflight requests directly.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware applies the per-client token bucket.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			IncrementCounter("rate_limited")
			respondWithError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware converts handler panics into 500 responses.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 4096)
				stack = stack[:runtime.Stack(stack, false)]
				GetLogger().Error("Panic handling %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				respondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// visitorLimiter keeps one token bucket per client address.
type visitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rpm      int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newVisitorLimiter creates a limiter allowing rpm requests per minute per
// client, with a burst of the same size. Stale entries are pruned in the
// background.
func newVisitorLimiter(rpm int) *visitorLimiter {
	if rpm <= 0 {
		rpm = MaxRequestsPerMinute
	}
	vl := &visitorLimiter{
		visitors: make(map[string]*visitor),
		rpm:      rpm,
	}
	go vl.cleanupLoop()
	return vl
}

// Allow reports whether the client may proceed.
func (vl *visitorLimiter) Allow(ip string) bool {
	vl.mu.Lock()
	defer vl.mu.Unlock()

	v, ok := vl.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(vl.rpm)), vl.rpm),
		}
		vl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter.Allow()
}

// cleanupLoop evicts buckets idle for more than ten minutes.
func (vl *visitorLimiter) cleanupLoop() {
	for range time.Tick(time.Minute) {
		vl.mu.Lock()
		for ip, v := range vl.visitors {
			if time.Since(v.lastSeen) > 10*time.Minute {
				delete(vl.visitors, ip)
			}
		}
		vl.mu.Unlock()
	}
}

// HTTP response helpers

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
