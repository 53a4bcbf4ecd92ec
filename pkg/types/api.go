package types

// ModelsResponse wraps a list of model descriptors.
type ModelsResponse struct {
	// List of available models.
	Models []ModelDescriptor `json:"models"`
}

// LoadResponse reports the outcome of a load request.
type LoadResponse struct {
	// Whether a model ended up loaded.
	// example: true
	Loaded bool `json:"loaded" example:"true"`
	// ID of the loaded model, if any.
	// example: tinyllama-q4
	ModelID string `json:"model_id,omitempty" example:"tinyllama-q4"`
}

// LoadByNameRequest selects a model by display name.
type LoadByNameRequest struct {
	// example: tinyllama-q4
	Name string `json:"name" example:"tinyllama-q4"`
}

// GenerateRequest is the payload for POST /generate.
type GenerateRequest struct {
	// User message; must be non-blank and at most 10,000 characters.
	// example: Explain this function
	Message string `json:"message" example:"Explain this function"`
}

// GenerateResponse carries the assistant reply.
type GenerateResponse struct {
	Response string `json:"response"`
}

// ModelInfoResponse is returned by GET /models/current.
type ModelInfoResponse struct {
	// "loaded" or "none".
	// example: loaded
	Status string           `json:"status" example:"loaded"`
	Model  *ModelDescriptor `json:"model,omitempty"`
}

// CacheContextRequest stores a fragment under an id.
type CacheContextRequest struct {
	Content  string          `json:"content"`
	Metadata ContextMetadata `json:"metadata"`
}

// CacheStats summarizes the context cache.
type CacheStats struct {
	// example: 12
	Items int `json:"items" example:"12"`
	// Sum of cached content sizes in bytes.
	// example: 40960
	Bytes int `json:"bytes" example:"40960"`
}

// ChatRequest asks for a reply with optional context assembly.
type ChatRequest struct {
	// example: where is the config loaded
	Message string `json:"message" example:"where is the config loaded"`
	// Attach context assembled by the retriever.
	IncludeContext bool `json:"include_context"`
	// Strategy key; defaults to smart.
	Strategy    string `json:"strategy,omitempty" example:"smart"`
	CurrentFile string `json:"current_file,omitempty"`
	ProjectRoot string `json:"project_root,omitempty"`
	// Context budget in tokens; defaults to 1024.
	MaxContextTokens int     `json:"max_context_tokens,omitempty" example:"1024"`
	Selection        *string `json:"selection,omitempty"`
}

// ChatResponse is the reply to a ChatRequest.
type ChatResponse struct {
	// example: 3f1c7a52-3c55-4a4e-9d1e-2b8f0c1f9a10
	MessageID string `json:"message_id" example:"3f1c7a52-3c55-4a4e-9d1e-2b8f0c1f9a10"`
	Content   string `json:"content"`
	// example: tinyllama-q4
	ModelUsed string `json:"model_used" example:"tinyllama-q4"`
	// IDs of context items that were attached to the prompt.
	ContextFiles []string `json:"context_files"`
	// Estimated tokens of attached context.
	ContextTokens int `json:"context_tokens"`
	// example: 850
	GenerationTimeMS int64 `json:"generation_time_ms" example:"850"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Lifecycle state: unloaded, loading or loaded.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// ID of the loaded model.
	// example: tinyllama-q4
	CurrentModel string `json:"current_model,omitempty" example:"tinyllama-q4"`
	// Last load/generation error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// example: 3
	ModelsTotal int `json:"models_total" example:"3"`
	// example: 1
	EmbeddingModelsTotal int `json:"embedding_models_total" example:"1"`
	// Total number of successful model loads.
	// example: 2
	LoadsTotal uint64 `json:"loads_total" example:"2"`
	// Messages currently held in conversation history.
	// example: 4
	ConversationLength int        `json:"conversation_length" example:"4"`
	Cache              CacheStats `json:"cache"`
	// Uptime of the process in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
