package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fabmenu/pkg/cache"
	"github.com/matzehuels/fabmenu/pkg/menu"
	"github.com/matzehuels/fabmenu/pkg/pipeline"
	"github.com/matzehuels/fabmenu/pkg/script"
)

const (
	// DefaultMaxMenus bounds the number of live menu instances.
	DefaultMaxMenus = 1024

	// DefaultMaxTotal bounds the item count of a single request.
	DefaultMaxTotal = 1000

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// DefaultKeyPrefix scopes server cache keys apart from the CLI's when both
// share a backend.
const DefaultKeyPrefix = "serve:"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and menu logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches rendered SVG frames and script transcripts.
func WithCache(c cache.Cache) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithKeyer overrides the cache key scheme.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Server) {
		if k != nil {
			s.keyer = k
		}
	}
}

// WithMaxMenus bounds the number of live menu instances.
func WithMaxMenus(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxMenus = n
		}
	}
}

// WithMaxTotal bounds the item count a request may ask for.
func WithMaxTotal(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxTotal = n
		}
	}
}

// Server hosts menu instances over HTTP.
type Server struct {
	router   chi.Router
	logger   *log.Logger
	cache    cache.Cache
	keyer    cache.Keyer
	runner   *pipeline.Runner
	maxMenus int
	maxTotal int

	mu    sync.RWMutex
	menus map[string]*instance
}

// instance is one hosted menu. Its mutex serialises events.
type instance struct {
	mu    sync.Mutex
	menu  *menu.Menu
	rec   *script.Recorder
	total int
}

// New builds a server with its routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		cache:    cache.NewNullCache(),
		keyer:    cache.NewScopedKeyer(nil, DefaultKeyPrefix),
		maxMenus: DefaultMaxMenus,
		maxTotal: DefaultMaxTotal,
		menus:    make(map[string]*instance),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.runner = pipeline.NewRunner(s.cache, s.keyer, s.logger)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/layout", s.handleLayout)
		r.Post("/simulate", s.handleSimulate)
		r.Route("/menus", func(r chi.Router) {
			r.Post("/", s.handleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Delete("/", s.handleDelete)
				r.Post("/events", s.handleEvent)
				r.Get("/frame.svg", s.handleFrameSVG)
			})
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Len returns the number of live menus.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.menus)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
