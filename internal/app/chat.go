package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"raind/internal/manager"
	"raind/pkg/types"
)

// Chat runs one turn, optionally preceded by retrieved context.
//
// Context is assembled only when a model is loaded so a rejected request does
// not touch the cache.
func (a *App) Chat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return types.ChatResponse{}, manager.ErrInvalidInput("message is empty")
	}
	if !a.mgr.Ready() {
		return types.ChatResponse{}, manager.ErrNoModelLoaded
	}

	resp := types.ChatResponse{MessageID: uuid.NewString(), ContextFiles: []string{}}
	var preamble string
	if req.IncludeContext {
		cr, err := a.retr.GetContext(chatContextRequest(req))
		if err != nil {
			return types.ChatResponse{}, err
		}
		for _, it := range cr.Items {
			resp.ContextFiles = append(resp.ContextFiles, it.ID)
		}
		resp.ContextTokens = cr.TotalTokens
		preamble = renderContext(cr.Items)
	}

	start := time.Now()
	out, err := a.mgr.GenerateWithContext(ctx, req.Message, preamble)
	if err != nil {
		return types.ChatResponse{}, err
	}
	resp.Content = out
	resp.GenerationTimeMS = time.Since(start).Milliseconds()
	if info, ok := a.mgr.ModelInfo(); ok {
		resp.ModelUsed = info.ID
	}
	a.log.Debug().
		Str("message_id", resp.MessageID).
		Str("model", resp.ModelUsed).
		Int("context_items", len(resp.ContextFiles)).
		Int64("ms", resp.GenerationTimeMS).
		Msg("chat")
	return resp, nil
}

func chatContextRequest(req types.ChatRequest) types.ContextRequest {
	cr := types.ContextRequest{
		Query:            req.Message,
		CurrentFile:      req.CurrentFile,
		ProjectRoot:      req.ProjectRoot,
		Strategy:         req.Strategy,
		MaxTokens:        req.MaxContextTokens,
		IncludeSelection: req.Selection != nil,
		SelectionContent: req.Selection,
	}
	if cr.Strategy == "" {
		cr.Strategy = DefaultChatStrategy
	}
	if cr.MaxTokens <= 0 {
		cr.MaxTokens = DefaultChatContextTokens
	}
	return cr
}

// renderContext formats items as fenced blocks placed ahead of the question.
func renderContext(items []types.ContextItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Use the following context to answer.\n\n")
	for _, it := range items {
		label := it.Metadata.FilePath
		if label == "" {
			label = it.ID
		}
		fmt.Fprintf(&b, "%s (%s):\n```%s\n%s\n```\n\n", label, it.Metadata.SourceType, it.Metadata.Language, strings.TrimRight(it.Content, "\n"))
	}
	return b.String()
}
