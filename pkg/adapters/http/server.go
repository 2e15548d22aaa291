package http

import (
	_ "embed"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/pictograph"
	"github.com/aretw0/pictograph/pkg/domain"
	"github.com/aretw0/pictograph/pkg/library"
	"github.com/aretw0/pictograph/pkg/ports"
	"github.com/aretw0/pictograph/pkg/registry"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed openapi.yaml
var rawSpec []byte

// Engine defines what the HTTP API needs from a graph engine.
type Engine interface {
	ports.Editor
	Catalog() []registry.Entry
	Load(doc *domain.Document) ([]domain.NodeID, error)
}

// Server exposes an Engine over a JSON API.
type Server struct {
	Engine Engine
	// Store enables the /documents routes when set.
	Store ports.DocumentStore
	// Locker serializes document saves across replicas when set.
	Locker  ports.DistributedLocker
	Streams *StreamManager
	Logger  *slog.Logger

	docs *library.Manager
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables saving and opening named documents.
func WithStore(store ports.DocumentStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLocker guards document saves with a distributed lock.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = locker }
}

// WithStreams publishes engine events on GET /events. Feed the manager by
// adding its Hooks to the engine.
func WithStreams(streams *StreamManager) Option {
	return func(s *Server) { s.Streams = streams }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.Logger = logger }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{Engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.Logger)
	}
	if s.Store != nil {
		s.docs = library.NewManager(s.Store,
			library.WithLocker(s.Locker),
			library.WithLogger(s.Logger),
		)
	}
	return enableCORS(s.Routes())
}

// Routes builds the chi router without middleware that affects headers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/variants", s.ListVariants)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.ListNodes)
		r.Post("/", s.CreateNode)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetNode)
			r.Delete("/", s.DeleteNode)
			r.Post("/process", s.ProcessNode)
			r.Post("/invalidate", s.InvalidateNode)
			r.Put("/parameters/{name}", s.AdjustParameter)
			r.Put("/inputs/{key}", s.ConnectInput)
			r.Delete("/inputs/{key}", s.DisconnectInput)
		})
	})

	r.Get("/graph", s.GetGraph)
	r.Put("/graph", s.PutGraph)
	r.Get("/graph/mermaid", s.GetMermaid)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.ListDocuments)
		r.Put("/{name}", s.SaveDocument)
		r.Post("/{name}/open", s.OpenDocument)
		r.Delete("/{name}", s.DeleteDocument)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Spec parses the embedded OpenAPI document.
func Spec() (*openapi3.T, error) {
	return openapi3.NewLoader().LoadFromData(rawSpec)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if spec, err := Spec(); err == nil && spec.Info != nil {
		apiVersion = spec.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pictograph-http",
		"version":     strings.TrimSpace(pictograph.Version),
		"api_version": apiVersion,
	})
}

// ListVariants handles the GET /variants request.
func (s *Server) ListVariants(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Engine.Catalog())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		s.Logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		return false
	}
	return true
}
