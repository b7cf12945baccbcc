package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rezkam/catalog/internal/application/catalog"
	"github.com/rezkam/catalog/internal/infrastructure/http/handler"
	mw "github.com/rezkam/catalog/internal/infrastructure/http/middleware"
)

// Default configuration values for the HTTP server.
const (
	DefaultHost              = "" // Empty means all interfaces (0.0.0.0)
	DefaultPort              = "8080"
	DefaultReadTimeout       = 15 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 60 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultMaxHeaderBytes    = 1 << 20 // 1MB
	DefaultMaxBodyBytes      = 1 << 20 // 1MB
)

// ServerConfig holds configuration for the HTTP server and router.
type ServerConfig struct {
	Host              string
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	MaxHeaderBytes    int
	MaxBodyBytes      int64

	CORSOrigins []string
	// RateLimit is requests per second per account; zero disables it.
	RateLimit float64
	RateBurst int

	TLSCertFile string
	TLSKeyFile  string
}

// applyDefaults sets default values for any unset (zero) fields.
func (cfg *ServerConfig) applyDefaults() {
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.ReadHeaderTimeout <= 0 {
		cfg.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
	if cfg.MaxHeaderBytes <= 0 {
		cfg.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
}

// APIServer wraps the HTTP server with router and all HTTP concerns.
type APIServer struct {
	server *http.Server
	tls    bool
	cert   string
	key    string
}

// NewAPIServer creates the HTTP server for svc. The catalog routes are
// mounted under /api with authentication and per-account rate limiting.
// Applies defaults for zero or invalid config values.
func NewAPIServer(svc *catalog.Service, authenticator mw.Authenticator, cfg ServerConfig) *APIServer {
	cfg.applyDefaults()

	router := setupRouter(handler.NewRouter(svc, cfg.MaxBodyBytes), authenticator, cfg)
	httpServer := setupHTTPServer(router, cfg)

	return &APIServer{
		server: httpServer,
		tls:    cfg.TLSCertFile != "" && cfg.TLSKeyFile != "",
		cert:   cfg.TLSCertFile,
		key:    cfg.TLSKeyFile,
	}
}

// setupRouter creates and configures the Chi router with all middleware and routes.
func setupRouter(apiHandler http.Handler, authenticator mw.Authenticator, cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSOrigins))
	}

	// Health check endpoint (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.ErrorContext(r.Context(), "Failed to write health check response", "error", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(mw.NewAuth(authenticator).Validate)
		if cfg.RateLimit > 0 {
			r.Use(mw.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
		}
		r.Mount("/", apiHandler)
	})

	return r
}

// setupHTTPServer creates the net/http.Server with the given router and config.
// Every request gets an OpenTelemetry server span.
func setupHTTPServer(router *chi.Mux, cfg ServerConfig) *http.Server {
	return &http.Server{
		Addr:              cfg.Host + ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(router, "catalog-api"),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// Start starts the HTTP server, with TLS when a certificate is configured.
func (s *APIServer) Start() error {
	slog.Info("Starting HTTP server", "addr", s.server.Addr, "tls", s.tls)
	if s.tls {
		return s.server.ListenAndServeTLS(s.cert, s.key)
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
// The provided context controls the timeout for outstanding requests.
func (s *APIServer) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler for testing purposes.
func (s *APIServer) Handler() http.Handler {
	return s.server.Handler
}
