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
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/PrizeGrid_Go/internal/audit"
	"github.com/osse101/PrizeGrid_Go/internal/auth"
	"github.com/osse101/PrizeGrid_Go/internal/catalog"
	"github.com/osse101/PrizeGrid_Go/internal/database"
	"github.com/osse101/PrizeGrid_Go/internal/handler"
	"github.com/osse101/PrizeGrid_Go/internal/ledger"
	"github.com/osse101/PrizeGrid_Go/internal/logger"
	"github.com/osse101/PrizeGrid_Go/internal/metrics"
	"github.com/osse101/PrizeGrid_Go/internal/round"
)

// Config carries the transport settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Services are the application services the routes call into
type Services struct {
	DBPool   database.Pool
	Verifier *auth.Verifier
	Rounds   round.Service
	Catalog  catalog.Service
	Ledger   ledger.Service
	Audit    audit.Service
}

type Server struct {
	httpServer *http.Server
	limiter    *UserRateLimiter
}

// NewServer creates a new Server instance
func NewServer(cfg Config, svc Services) *Server {
	limiter := NewUserRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(cfg.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBody))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(handler.DatabaseCheck(svc.DBPool)))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	rounds := handler.NewRoundHandler(svc.Rounds)
	catalogHandler := handler.NewCatalogHandler(svc.Catalog)
	admin := handler.NewAdminHandler(svc.Ledger, svc.Audit, svc.Rounds)

	r.Route("/api/v1", func(r chi.Router) {
		// Player routes
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(svc.Verifier, cfg.TrustedProxies, detector))
			r.Use(limiter.Middleware)

			r.Post("/rounds", rounds.HandleStartRound)
			r.Get("/rounds/{id}", rounds.HandleGetRound)
			r.Get("/games/{gameType}/catalog", catalogHandler.HandleGetCatalog)
		})

		// Operator routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(APIKeyMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))

			r.Get("/ledger", admin.HandleLedgerSnapshot)
			r.Post("/audit/run", admin.HandleRunAudit)
			r.Get("/alerts", admin.HandleListAlerts)
			r.Post("/alerts/{id}/resolve", admin.HandleResolveAlert)
			r.Route("/emergency/{gameType}", func(r chi.Router) {
				r.Get("/", admin.HandleEmergencyStatus)
				r.Post("/engage", admin.HandleEngageEmergency)
				r.Post("/clear", admin.HandleClearEmergency)
			})
			r.Get("/rounds/{id}/replay", admin.HandleReplayRound)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		limiter: limiter,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Limiter returns the per-player rate limiter so its sweep can be scheduled
func (s *Server) Limiter() *UserRateLimiter {
	return s.limiter
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
		statusCode:     http.StatusOK,
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

func quietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if quietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
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
			"duration_ms", duration.Milliseconds())
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
