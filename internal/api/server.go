package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-cascade/components/regions"
	"github.com/goliatone/go-cascade/internal/config"
	"github.com/goliatone/go-cascade/pkg/render"
	"github.com/goliatone/go-cascade/pkg/renderers/vanilla"
)

// Server is the HTTP server exposing the regions endpoint, its OpenAPI
// description and a server-rendered demo chain.
type Server struct {
	router    chi.Router
	regions   *regions.Component
	tree      *regions.Tree
	renderer  *vanilla.Renderer
	renderers *render.Registry
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(tree *regions.Tree, renderer *vanilla.Renderer, log *slog.Logger, cfg config.Config) (*Server, error) {
	if tree == nil {
		return nil, errors.New("api: regions tree is required")
	}
	if renderer == nil {
		return nil, errors.New("api: renderer is required")
	}
	if log == nil {
		log = slog.Default()
	}
	registry, err := render.NewRegistry(renderer, render.JSON{Indent: "  "})
	if err != nil {
		return nil, fmt.Errorf("api: register renderers: %w", err)
	}
	s := &Server{
		regions: regions.New(
			regions.WithTree(tree),
			regions.WithParam(cfg.Param),
		),
		tree:      tree,
		renderer:  renderer,
		renderers: registry,
		log:       log,
		cfg:       cfg,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegionsPath is the mounted path of the regions endpoint.
func (s *Server) RegionsPath() string {
	return regions.MountPath(s.cfg.BasePath, s.regionOptions())
}

func (s *Server) setupRoutes() error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get(joinPath(s.cfg.BasePath, "/openapi.json"), s.handleOpenAPI)
	r.Get(joinPath(s.cfg.BasePath, "/"), s.handlePage)

	// Data endpoint, guarded when an API key is configured.
	var mountErr error
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(s.requireAPIKey)
		}
		if _, err := s.regions.RegisterRoutes(r, s.cfg.BasePath); err != nil {
			mountErr = fmt.Errorf("api: mount regions: %w", err)
		}
	})
	if mountErr != nil {
		return mountErr
	}

	s.router = r
	return nil
}

func (s *Server) regionOptions() regions.OptionFn {
	opts := s.regions.Options()
	return func(o *regions.Options) { *o = opts }
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := s.regions.OpenAPI(r.Context(), s.cfg.BasePath)
	if err != nil {
		s.log.Error("build openapi document", "error", err)
		writeError(w, http.StatusInternalServerError, "openapi document unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func joinPath(basePath, route string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return route
	}
	if route == "/" {
		return basePath + "/"
	}
	return basePath + route
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// requestContext bounds server-side population of the demo chain.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.cfg.FetchTimeout)
}

func firstValue(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}
