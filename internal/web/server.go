// Package web provides the HTTP server and handlers for the client
// registry: server-rendered pages for the form UI and a JSON API including
// the batch ingestion endpoint.
package web

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pvbarbosa/cadastro/internal/clientes"
	"github.com/pvbarbosa/cadastro/internal/config"
	"github.com/pvbarbosa/cadastro/internal/web/middleware"
)

//go:embed static
var staticFiles embed.FS

// Server is the HTTP server for the client registry.
type Server struct {
	service  *clientes.Service
	ingestor *clientes.Ingestor
	cfg      *config.Config
	metrics  *Metrics
	router   *chi.Mux
	server   *http.Server
}

// NewServer creates a new Server instance, registering its metrics with the
// default Prometheus registry.
func NewServer(service *clientes.Service, cfg *config.Config) *Server {
	return NewServerWithRegistry(service, cfg, prometheus.DefaultRegisterer)
}

// NewServerWithRegistry is NewServer with an explicit metrics registry, so
// tests can build isolated servers.
func NewServerWithRegistry(service *clientes.Service, cfg *config.Config, reg prometheus.Registerer) *Server {
	s := &Server{
		service:  service,
		ingestor: clientes.NewIngestor(service.Store()),
		cfg:      cfg,
		metrics:  NewMetrics(reg),
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)
	s.router.Use(s.metrics.instrument)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.Handle("/metrics", promhttp.Handler())

	// Pages
	s.router.Get("/", s.handleListPage)
	s.router.Get("/clientes/novo", s.handleNewPage)
	s.router.Post("/clientes", s.handleCreateForm)
	s.router.Get("/clientes/{id}/editar", s.handleEditPage)
	s.router.Post("/clientes/{id}", s.handleUpdateForm)
	s.router.Post("/clientes/{id}/excluir", s.handleDeleteForm)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/clientes", s.handleList)
		r.Post("/clientes", s.handleCreate)
		r.Get("/clientes/busca", s.handleSearch)
		r.Get("/clientes/{id}", s.handleGet)
		r.Put("/clientes/{id}", s.handleUpdate)
		r.Delete("/clientes/{id}", s.handleDelete)

		r.Post("/clientes/lote", s.handleBatch)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// rateLimiter implements a simple token bucket rate limiter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int           // requests per window
	window   time.Duration // time window
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter creates a rate limiter with the specified rate per window.
func newRateLimiter(rate int, window time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// cleanup removes stale visitor entries every minute.
func (rl *rateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// allow checks if the request should be allowed and consumes a token if so.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		rl.visitors[ip] = &visitor{
			tokens:    rl.rate - 1,
			lastReset: time.Now(),
		}
		return true
	}

	if time.Since(v.lastReset) > rl.window {
		v.tokens = rl.rate - 1
		v.lastReset = time.Now()
		return true
	}

	if v.tokens <= 0 {
		return false
	}

	v.tokens--
	return true
}

// middleware returns an HTTP middleware that rate limits by IP.
func (rl *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(r.RemoteAddr) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "limite de requisições excedido", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
