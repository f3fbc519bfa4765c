package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/skyburst-games/popmeta/internal/challenge"
	"github.com/skyburst-games/popmeta/internal/database"
	"github.com/skyburst-games/popmeta/internal/handler"
	"github.com/skyburst-games/popmeta/internal/ledger"
	"github.com/skyburst-games/popmeta/internal/logger"
	"github.com/skyburst-games/popmeta/internal/metrics"
	"github.com/skyburst-games/popmeta/internal/sse"
)

type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	ledgerService    ledger.Service
	challengeService challenge.Service
	hub              *sse.Hub
}

// NewServer wires the HTTP surface: middleware stack, health and metrics
// endpoints, and the versioned game API. dbPool may be nil when running on
// in-memory storage.
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, ledgerService ledger.Service, challengeService challenge.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Gameplay event routes
		r.Route("/events", func(r chi.Router) {
			r.Post("/balloon-popped", handler.HandleBalloonPopped(ledgerService))
			r.Post("/shot", handler.HandleShot(ledgerService))
			r.Post("/enemy-spawned", handler.HandleEnemySpawned(ledgerService))
			r.Post("/level-completed", handler.HandleLevelCompleted(ledgerService))
		})

		// Session routes
		r.Route("/session", func(r chi.Router) {
			r.Post("/start", handler.HandleStartSession(ledgerService))
			r.Post("/end", handler.HandleEndSession(ledgerService))
		})

		// Progression routes
		r.Route("/progress", func(r chi.Router) {
			r.Get("/", handler.HandleGetProgress(ledgerService))
			r.Get("/mastery", handler.HandleGetMastery(ledgerService))
		})
		r.Get("/battlepass", handler.HandleGetBattlePass(ledgerService))
		r.Post("/coins/spend", handler.HandleSpendCoins(ledgerService))

		// Daily challenge routes
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", handler.HandleGetChallenges(challengeService))
			r.Post("/claim", handler.HandleClaimChallenge(ledgerService))
		})

		// Achievement routes
		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", handler.HandleGetAchievements(ledgerService))
			r.Post("/ack", handler.HandleAckAchievements(ledgerService))
		})

		// Live event stream
		r.Get("/stream", sse.Handler(hub))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           dbPool,
		ledgerService:    ledgerService,
		challengeService: challengeService,
		hub:              hub,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush forwards flushes so SSE streaming works through the wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
