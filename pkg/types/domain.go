package types

import (
	"encoding/json"
	"fmt"
)

// Format identifies the on-disk packaging of a model's weights.
type Format string

const (
	FormatGGUF        Format = "GGUF"
	FormatONNX        Format = "ONNX"
	FormatHuggingFace Format = "HuggingFace"
	FormatGGML        Format = "GGML"
)

// FormatPriority is the order in which formats are preferred when picking a model to load.
var FormatPriority = []Format{FormatGGUF, FormatHuggingFace, FormatONNX, FormatGGML}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatGGUF, FormatONNX, FormatHuggingFace, FormatGGML:
		return true
	}
	return false
}

// UnmarshalText rejects unknown format names.
func (f *Format) UnmarshalText(b []byte) error {
	v := Format(b)
	if !v.Valid() {
		return fmt.Errorf("unknown model format %q", string(b))
	}
	*f = v
	return nil
}

// ModelFile describes one file inside a model directory.
type ModelFile struct {
	// File name relative to the model directory.
	// example: model-q4_k_m.gguf
	Name string `json:"name" example:"model-q4_k_m.gguf"`
	// Size in MB, rounded to two decimals.
	// example: 4368.44
	SizeMB float64 `json:"size_mb" example:"4368.44"`
	// Lowercased extension including the leading dot.
	// example: .gguf
	Extension string `json:"extension" example:".gguf"`
}

// ModelDescriptor represents a discovered model directory on disk.
type ModelDescriptor struct {
	// Stable identifier for the model (the directory name).
	// example: tinyllama-q4
	ID string `json:"id" example:"tinyllama-q4"`
	// Human-friendly name.
	// example: tinyllama-q4
	Name string `json:"name" example:"tinyllama-q4"`
	// Short description of the model's role.
	// example: Local AI model
	Description string `json:"description" example:"Local AI model"`
	// Weight packaging format.
	// example: GGUF
	Format Format `json:"format" example:"GGUF"`
	// Absolute path to the model directory.
	// example: /home/user/models/tinyllama-q4
	Path string `json:"path" example:"/home/user/models/tinyllama-q4"`
	// Aggregate size of all files in whole MB.
	// example: 637
	SizeMB uint64 `json:"size_mb" example:"637"`
	// Capability tags in discovery order.
	Capabilities []string `json:"capabilities"`
	// Files found in the model directory.
	Files []ModelFile `json:"files"`
	// Parsed configuration (config.json, model_config.json or tokenizer_config.json).
	Config json.RawMessage `json:"config,omitempty" swaggertype:"object"`
	// Whether this model is currently loaded.
	// example: false
	Loaded bool `json:"loaded" example:"false"`
}

// HasCapability reports whether the descriptor carries the given tag.
func (d ModelDescriptor) HasCapability(tag string) bool {
	for _, c := range d.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can't mutate registry state through shared slices.
func (d ModelDescriptor) Clone() ModelDescriptor {
	out := d
	out.Capabilities = append([]string(nil), d.Capabilities...)
	out.Files = append([]ModelFile(nil), d.Files...)
	if d.Config != nil {
		out.Config = append(json.RawMessage(nil), d.Config...)
	}
	return out
}

// GenerationParams holds sampling settings applied to every generate call.
type GenerationParams struct {
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature" example:"0.7"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP float64 `json:"top_p" yaml:"top_p" toml:"top_p" example:"0.9"`
	// Top-K sampling: limit candidates to top K tokens.
	// example: 40
	TopK int `json:"top_k" yaml:"top_k" toml:"top_k" example:"40"`
	// Maximum number of new tokens to generate.
	// example: 1024
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" example:"1024"`
	// Generation stops when any sequence is produced.
	StopSequences []string `json:"stop_sequences" yaml:"stop_sequences" toml:"stop_sequences"`
}

// DefaultGenerationParams returns the settings used until a caller replaces them.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		Temperature:   0.7,
		TopP:          0.9,
		TopK:          40,
		MaxTokens:     1024,
		StopSequences: []string{"<|endoftext|>", "<|im_end|>"},
	}
}

// Role is the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleSystem is reserved for higher layers; the conversation store never emits it.
	RoleSystem Role = "system"
)

// ConversationMessage is one turn of the chat history.
type ConversationMessage struct {
	Role    Role   `json:"role" example:"user"`
	Content string `json:"content" example:"What does main() do?"`
}
