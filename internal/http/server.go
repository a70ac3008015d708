// Package http exposes the capture and aggregation API as JSON over
// stdlib net/http.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"finanze/internal/cache"
	"finanze/internal/core"
	applog "finanze/internal/log"
	"finanze/internal/services"
)

const statsCacheTTL = 5 * time.Minute

type Server struct {
	http.Server
	svc         *services.TransactionService
	rateLimiter *rateLimiter

	// Aggregation responses keyed by window; purged on every write.
	summaryCache  *cache.LRUCache[core.PeriodTotals]
	dailyCache    *cache.LRUCache[[]core.DayBalancePoint]
	categoryCache *cache.LRUCache[[]core.CategoryTotal]
	forecastCache *cache.LRUCache[[]core.ForecastPoint]

	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, svc *services.TransactionService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:           svc,
		rateLimiter:   newRateLimiter(),
		summaryCache:  cache.NewLRUCache[core.PeriodTotals](100, statsCacheTTL),
		dailyCache:    cache.NewLRUCache[[]core.DayBalancePoint](100, statsCacheTTL),
		categoryCache: cache.NewLRUCache[[]core.CategoryTotal](100, statsCacheTTL),
		forecastCache: cache.NewLRUCache[[]core.ForecastPoint](10, statsCacheTTL),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("/api/extract", s.withMiddleware(s.handleExtract))
	mux.HandleFunc("/api/transactions", s.withMiddleware(s.handleTransactions))
	mux.HandleFunc("/api/transactions/", s.withMiddleware(s.handleTransactionByID))
	mux.HandleFunc("/api/references", s.withMiddleware(s.handleReferences))

	mux.HandleFunc("/api/stats/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("/api/stats/daily", s.withMiddleware(s.handleDailyBalance))
	mux.HandleFunc("/api/stats/categories", s.withMiddleware(s.handleCategoryBreakdown))
	mux.HandleFunc("/api/stats/forecast", s.withMiddleware(s.handleForecast))

	return s
}

// withMiddleware adds request IDs, rate limiting, security headers, and
// request logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldClientIP, clientIP)

		// Writes are rate limited per client
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, duration.Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateStats purges every aggregation cache after a write.
func (s *Server) invalidateStats() {
	s.summaryCache.Purge()
	s.dailyCache.Purge()
	s.categoryCache.Purge()
	s.forecastCache.Purge()
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
