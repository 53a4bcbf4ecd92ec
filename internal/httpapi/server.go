package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"raind/internal/manager"
	"raind/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListModels() []types.ModelDescriptor
	DiscoverModels() ([]types.ModelDescriptor, error)
	EmbeddingModels() []types.ModelDescriptor
	DiscoverEmbeddingModels() ([]types.ModelDescriptor, error)
	LoadBestModel(ctx context.Context) (bool, error)
	LoadModelByID(ctx context.Context, id string) error
	LoadModelByName(ctx context.Context, name string) error
	UnloadCurrentModel() error
	ModelInfo() (types.ModelDescriptor, bool)

	GenerateResponse(ctx context.Context, message string) (string, error)
	Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error)
	GenerationSettings() types.GenerationParams
	UpdateGenerationSettings(p types.GenerationParams)
	ClearConversation()
	ResetContext()

	GetContext(req types.ContextRequest) (types.ContextResponse, error)
	Strategies() map[string]types.ContextStrategy
	CacheContext(id, content string, md types.ContextMetadata) (types.ContextItem, error)
	GetCachedContext(id string) (types.ContextItem, bool)
	ClearCache()
	CacheStats() types.CacheStats

	Status() types.StatusResponse
	Ready() bool
	SanityCheck() manager.SanityReport
}

// NewMux builds the router for svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}

	r.Route("/models", func(r chi.Router) {
		r.Get("/", h.listModels)
		r.Post("/discover", h.discoverModels)
		r.Get("/embedding", h.listEmbeddingModels)
		r.Post("/embedding/discover", h.discoverEmbeddingModels)
		r.Post("/load-best", h.loadBest)
		r.Post("/load-by-name", h.loadByName)
		r.Post("/unload", h.unload)
		r.Get("/current", h.modelInfo)
		r.Post("/{id}/load", h.loadByID)
	})

	r.Post("/generate", h.generate)
	r.Post("/chat", h.chat)
	r.Get("/settings/generation", h.getSettings)
	r.Put("/settings/generation", h.putSettings)
	r.Post("/conversation/clear", h.clearConversation)
	r.Post("/conversation/reset", h.resetContext)

	r.Route("/context", func(r chi.Router) {
		r.Post("/", h.getContext)
		r.Get("/strategies", h.strategies)
		r.Get("/cache", h.cacheStats)
		r.Delete("/cache", h.clearCache)
		r.Put("/cache/{id}", h.cacheContext)
		r.Get("/cache/{id}", h.getCachedContext)
	})

	r.Get("/status", h.status)
	r.Get("/sanity", h.sanity)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("no model loaded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func corsOptions() cors.Options {
	methods := corsAllowedMethods
	if len(methods) == 0 {
		methods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	}
	headers := corsAllowedHeaders
	if len(headers) == 0 {
		headers = []string{"Accept", "Content-Type", "X-Log-Level", "X-Request-Id"}
	}
	return cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: methods,
		AllowedHeaders: headers,
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}
}
