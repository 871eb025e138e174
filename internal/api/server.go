// Package api provides the HTTP API server and handlers for the StyleSync application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stylesyncapp/stylesync-server/internal/config"
	"github.com/stylesyncapp/stylesync-server/internal/ratelimit"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/service"
	"github.com/stylesyncapp/stylesync-server/internal/store"
	"github.com/stylesyncapp/stylesync-server/internal/validation"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Rules      *service.RulesService
	Validation *service.ValidationService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store            *store.Store
	services         *Services
	ruleIndex        *rules.Index
	router           *chi.Mux
	api              huma.API
	logger           *slog.Logger
	validator        *validation.Validator
	adminRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, ruleIndex *rules.Index, services *Services, logger *slog.Logger) *Server {
	s := &Server{
		store:            st,
		services:         services,
		ruleIndex:        ruleIndex,
		router:           chi.NewRouter(),
		logger:           logger,
		validator:        validation.New(),
		adminRateLimiter: ratelimit.New(cfg.Admin.WriteRPS, cfg.Admin.WriteBurst),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("StyleSync API", "1.0.0")
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerValidationRoutes()
	s.registerStyleRuleRoutes()
	s.registerAdminRuleRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Actor-ID"},
		MaxAge:         300,
	}))
	s.router.Use(s.adminWriteRateLimit)
}

// adminWriteRateLimit limits rule mutations per client address. Reads are
// never limited.
func (s *Server) adminWriteRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAdminWrite(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.adminRateLimiter.Allow(key) {
			s.logger.Warn("Admin write rate limit exceeded",
				"ip", key,
				"path", r.URL.Path,
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"Too many rule changes. Please try again later."}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isAdminWrite(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
		return false
	}
	const adminPrefix = "/api/v1/admin/"
	return len(r.URL.Path) >= len(adminPrefix) && r.URL.Path[:len(adminPrefix)] == adminPrefix
}

// getClientIP extracts the client IP from the request.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to RemoteAddr.
func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For (may contain multiple IPs, first is client).
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to RemoteAddr (strip port).
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
