package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"raind/pkg/types"
)

type handlers struct {
	svc Service
}

// decodeJSON enforces a JSON content type and the body size limit. It writes
// the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Oversized bodies also land here; report 400 to avoid leaking the limit.
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func modelsOrEmpty(m []types.ModelDescriptor) types.ModelsResponse {
	if m == nil {
		m = []types.ModelDescriptor{}
	}
	return types.ModelsResponse{Models: m}
}

// listModels godoc
// @Summary      List discovered models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models [get]
func (h *handlers) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelsOrEmpty(h.svc.ListModels()))
}

// discoverModels godoc
// @Summary      Rescan the models directory
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /models/discover [post]
func (h *handlers) discoverModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.DiscoverModels()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modelsOrEmpty(models))
}

// listEmbeddingModels godoc
// @Summary      List discovered embedding models
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Router       /models/embedding [get]
func (h *handlers) listEmbeddingModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, modelsOrEmpty(h.svc.EmbeddingModels()))
}

// discoverEmbeddingModels godoc
// @Summary      Rescan the embedding models directory
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelsResponse
// @Failure      500  {object}  types.ErrorResponse
// @Router       /models/embedding/discover [post]
func (h *handlers) discoverEmbeddingModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.svc.DiscoverEmbeddingModels()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modelsOrEmpty(models))
}

func (h *handlers) loadResponse() types.LoadResponse {
	info, ok := h.svc.ModelInfo()
	return types.LoadResponse{Loaded: ok, ModelID: info.ID}
}

// loadBest godoc
// @Summary      Load the highest-priority model
// @Description  Picks gguf, then huggingface, onnx and ggml; ties broken by id. Loaded is false when nothing is discovered.
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.LoadResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /models/load-best [post]
func (h *handlers) loadBest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := workContext(r)
	defer cancel()
	ok, err := h.svc.LoadBestModel(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, types.LoadResponse{})
		return
	}
	writeJSON(w, http.StatusOK, h.loadResponse())
}

// loadByID godoc
// @Summary      Load a model by id
// @Tags         models
// @Produce      json
// @Param        id   path      string  true  "Model id"
// @Success      200  {object}  types.LoadResponse
// @Failure      404  {object}  types.ErrorResponse
// @Failure      503  {object}  types.ErrorResponse
// @Router       /models/{id}/load [post]
func (h *handlers) loadByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := workContext(r)
	defer cancel()
	if err := h.svc.LoadModelByID(ctx, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.loadResponse())
}

// loadByName godoc
// @Summary      Load a model by display name
// @Tags         models
// @Accept       json
// @Produce      json
// @Param        body  body      types.LoadByNameRequest  true  "Model name"
// @Success      200   {object}  types.LoadResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /models/load-by-name [post]
func (h *handlers) loadByName(w http.ResponseWriter, r *http.Request) {
	var req types.LoadByNameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSONError(w, http.StatusBadRequest, "name is required")
		return
	}
	ctx, cancel := workContext(r)
	defer cancel()
	if err := h.svc.LoadModelByName(ctx, req.Name); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.loadResponse())
}

// unload godoc
// @Summary      Unload the current model
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.LoadResponse
// @Router       /models/unload [post]
func (h *handlers) unload(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.UnloadCurrentModel(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.LoadResponse{})
}

// modelInfo godoc
// @Summary      Describe the loaded model
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.ModelInfoResponse
// @Router       /models/current [get]
func (h *handlers) modelInfo(w http.ResponseWriter, r *http.Request) {
	info, ok := h.svc.ModelInfo()
	if !ok {
		writeJSON(w, http.StatusOK, types.ModelInfoResponse{Status: "none"})
		return
	}
	writeJSON(w, http.StatusOK, types.ModelInfoResponse{Status: "loaded", Model: &info})
}

// generate godoc
// @Summary      Generate a reply
// @Description  Appends the message to the conversation and returns the model's reply.
// @Tags         generation
// @Accept       json
// @Produce      json
// @Param        body  body      types.GenerateRequest  true  "Message"
// @Success      200   {object}  types.GenerateResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      409   {object}  types.ErrorResponse
// @Router       /generate [post]
func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := workContext(r)
	defer cancel()
	out, err := h.svc.GenerateResponse(ctx, req.Message)
	if err != nil {
		// Client went away; nothing left to write.
		if r.Context().Err() != nil {
			return
		}
		writeError(w, err)
		return
	}
	if requestLogLevel(r) >= LevelDebug {
		logger().Debug().Str("request_id", middleware.GetReqID(r.Context())).Int("chars", len(out)).Str("response", out).Msg("generate")
	}
	writeJSON(w, http.StatusOK, types.GenerateResponse{Response: out})
}

// chat godoc
// @Summary      Chat with optional retrieved context
// @Tags         generation
// @Accept       json
// @Produce      json
// @Param        body  body      types.ChatRequest  true  "Chat request"
// @Success      200   {object}  types.ChatResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Failure      409   {object}  types.ErrorResponse
// @Router       /chat [post]
func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req types.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ctx, cancel := workContext(r)
	defer cancel()
	resp, err := h.svc.Chat(ctx, req)
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// getSettings godoc
// @Summary      Read generation settings
// @Tags         generation
// @Produce      json
// @Success      200  {object}  types.GenerationParams
// @Router       /settings/generation [get]
func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GenerationSettings())
}

// putSettings godoc
// @Summary      Replace generation settings
// @Tags         generation
// @Accept       json
// @Produce      json
// @Param        body  body      types.GenerationParams  true  "Settings"
// @Success      200   {object}  types.GenerationParams
// @Failure      400   {object}  types.ErrorResponse
// @Router       /settings/generation [put]
func (h *handlers) putSettings(w http.ResponseWriter, r *http.Request) {
	var p types.GenerationParams
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.StopSequences == nil {
		p.StopSequences = []string{}
	}
	h.svc.UpdateGenerationSettings(p)
	writeJSON(w, http.StatusOK, h.svc.GenerationSettings())
}

// clearConversation godoc
// @Summary      Clear the conversation history
// @Tags         generation
// @Success      204
// @Router       /conversation/clear [post]
func (h *handlers) clearConversation(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearConversation()
	w.WriteHeader(http.StatusNoContent)
}

// resetContext godoc
// @Summary      Reset the conversation context
// @Tags         generation
// @Success      204
// @Router       /conversation/reset [post]
func (h *handlers) resetContext(w http.ResponseWriter, r *http.Request) {
	h.svc.ResetContext()
	w.WriteHeader(http.StatusNoContent)
}

// getContext godoc
// @Summary      Assemble context for a query
// @Tags         context
// @Accept       json
// @Produce      json
// @Param        body  body      types.ContextRequest  true  "Context request"
// @Success      200   {object}  types.ContextResponse
// @Failure      400   {object}  types.ErrorResponse
// @Failure      404   {object}  types.ErrorResponse
// @Router       /context [post]
func (h *handlers) getContext(w http.ResponseWriter, r *http.Request) {
	var req types.ContextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.svc.GetContext(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// strategies godoc
// @Summary      List context strategies
// @Tags         context
// @Produce      json
// @Success      200  {object}  map[string]types.ContextStrategy
// @Router       /context/strategies [get]
func (h *handlers) strategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Strategies())
}

// cacheContext godoc
// @Summary      Store a context fragment
// @Tags         context
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Item id"
// @Param        body  body      types.CacheContextRequest  true  "Fragment"
// @Success      200   {object}  types.ContextItem
// @Failure      400   {object}  types.ErrorResponse
// @Router       /context/cache/{id} [put]
func (h *handlers) cacheContext(w http.ResponseWriter, r *http.Request) {
	var req types.CacheContextRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	it, err := h.svc.CacheContext(chi.URLParam(r, "id"), req.Content, req.Metadata)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// getCachedContext godoc
// @Summary      Fetch a cached context fragment
// @Description  Each read increments access_count.
// @Tags         context
// @Produce      json
// @Param        id   path      string  true  "Item id"
// @Success      200  {object}  types.ContextItem
// @Failure      404  {object}  types.ErrorResponse
// @Router       /context/cache/{id} [get]
func (h *handlers) getCachedContext(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	it, ok := h.svc.GetCachedContext(id)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "context item not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// cacheStats godoc
// @Summary      Context cache statistics
// @Tags         context
// @Produce      json
// @Success      200  {object}  types.CacheStats
// @Router       /context/cache [get]
func (h *handlers) cacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.CacheStats())
}

// clearCache godoc
// @Summary      Empty the context cache
// @Tags         context
// @Success      204
// @Router       /context/cache [delete]
func (h *handlers) clearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}

// status godoc
// @Summary      Daemon status
// @Tags         system
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// sanity godoc
// @Summary      Loadable formats in this build
// @Tags         system
// @Produce      json
// @Success      200  {object}  manager.SanityReport
// @Router       /sanity [get]
func (h *handlers) sanity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.SanityCheck())
}
