package types

import (
	"fmt"
	"time"
)

// SourceType classifies where a context fragment came from.
type SourceType string

const (
	SourceFile          SourceType = "File"
	SourceDirectory     SourceType = "Directory"
	SourceProject       SourceType = "Project"
	SourceSelection     SourceType = "Selection"
	SourceDocumentation SourceType = "Documentation"
	SourceError         SourceType = "Error"
	SourceLog           SourceType = "Log"
)

// Valid reports whether s is a known source type.
func (s SourceType) Valid() bool {
	switch s {
	case SourceFile, SourceDirectory, SourceProject, SourceSelection, SourceDocumentation, SourceError, SourceLog:
		return true
	}
	return false
}

// UnmarshalText rejects unknown source types.
func (s *SourceType) UnmarshalText(b []byte) error {
	v := SourceType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown source type %q", string(b))
	}
	*s = v
	return nil
}

// ContextMetadata describes a context fragment.
type ContextMetadata struct {
	SourceType SourceType `json:"source_type" example:"File"`
	// example: /home/user/project/main.go
	FilePath string `json:"file_path,omitempty" example:"/home/user/project/main.go"`
	// example: go
	Language string `json:"language,omitempty" example:"go"`
	// Content size in bytes.
	// example: 2048
	Size int `json:"size" example:"2048"`
	// Heuristic relevance in [0,1].
	// example: 0.42
	RelevanceScore float64  `json:"relevance_score" example:"0.42"`
	Tags           []string `json:"tags"`
}

// ContextItem is one fragment of assembled prompt context.
type ContextItem struct {
	ID           string          `json:"id" example:"/home/user/project/main.go"`
	Content      string          `json:"content"`
	Metadata     ContextMetadata `json:"metadata"`
	LastAccessed time.Time       `json:"last_accessed"`
	AccessCount  uint32          `json:"access_count" example:"1"`
}

// ContextStrategy is a named policy bundle controlling context selection.
type ContextStrategy struct {
	// example: Smart Context
	Name string `json:"name" example:"Smart Context"`
	// example: Intelligently select the most relevant context
	Description          string  `json:"description"`
	MaxFiles             int     `json:"max_files" example:"10"`
	IncludeDependencies  bool    `json:"include_dependencies"`
	IncludeTests         bool    `json:"include_tests"`
	IncludeDocumentation bool    `json:"include_documentation"`
	RelevanceThreshold   float64 `json:"relevance_threshold" example:"0.5"`
}

// ContextRequest asks the retriever to assemble context for a query.
type ContextRequest struct {
	// example: where is the config loaded
	Query string `json:"query" example:"where is the config loaded"`
	// Optional path of the file open in the editor.
	CurrentFile string `json:"current_file,omitempty"`
	// Optional project root to walk.
	ProjectRoot string `json:"project_root,omitempty"`
	// Strategy key: file, project, smart or selection.
	// example: smart
	Strategy string `json:"strategy" example:"smart"`
	// Token budget for the whole response.
	// example: 2048
	MaxTokens int `json:"max_tokens" example:"2048"`
	// Include SelectionContent as a fragment.
	IncludeSelection bool `json:"include_selection"`
	// Verbatim selection text.
	SelectionContent *string `json:"selection_content,omitempty"`
}

// ContextResponse is the ranked, token-budgeted result of a ContextRequest.
type ContextResponse struct {
	Items       []ContextItem `json:"context_items"`
	TotalTokens int           `json:"total_tokens" example:"512"`
	// example: smart
	StrategyUsed string `json:"strategy_used" example:"smart"`
	// Relevance of every file inspected, keyed by path.
	RelevanceScores map[string]float64 `json:"relevance_scores"`
}
