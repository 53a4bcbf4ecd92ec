// Package retrieval assembles token-budgeted prompt context from the user's
// selection, the current file and the surrounding project tree.
package retrieval

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"raind/internal/ctxcache"
	"raind/pkg/types"
)

// SelectionID is the item id used for the editor selection.
const SelectionID = "selection"

// Item tags.
const (
	TagSelection   = "selection"
	TagCurrentFile = "current_file"
	TagProjectFile = "project_file"
)

// Retriever selects and ranks context fragments according to named strategies.
type Retriever struct {
	smu        sync.RWMutex
	strategies map[string]types.ContextStrategy

	cache *ctxcache.Cache
	log   zerolog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithCache sets the cache that receives every included item.
func WithCache(c *ctxcache.Cache) Option {
	return func(r *Retriever) { r.cache = c }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Retriever) { r.log = l }
}

// New returns a retriever with the built-in strategies registered.
func New(opts ...Option) *Retriever {
	r := &Retriever{
		strategies: DefaultStrategies(),
		log:        zerolog.Nop(),
	}
	for _, o := range opts {
		o(r)
	}
	if r.cache == nil {
		r.cache = ctxcache.New()
	}
	return r
}

// Cache returns the cache included items are written to.
func (r *Retriever) Cache() *ctxcache.Cache { return r.cache }

type candidate struct {
	id      string
	content string
	md      types.ContextMetadata
}

// GetContext assembles context for req. Unknown strategies fail before any
// file is read or the cache is touched.
func (r *Retriever) GetContext(req types.ContextRequest) (types.ContextResponse, error) {
	strategy, err := r.Strategy(req.Strategy)
	if err != nil {
		return types.ContextResponse{}, err
	}

	scores := map[string]float64{}
	var cands []candidate

	if req.IncludeSelection && req.SelectionContent != nil {
		sel := *req.SelectionContent
		cands = append(cands, candidate{
			id:      SelectionID,
			content: sel,
			md: types.ContextMetadata{
				SourceType:     types.SourceSelection,
				FilePath:       req.CurrentFile,
				Language:       DetectLanguage(req.CurrentFile),
				Size:           len(sel),
				RelevanceScore: 1.0,
				Tags:           []string{TagSelection},
			},
		})
	}

	if req.CurrentFile != "" {
		if content, ok := readText(req.CurrentFile, 0); ok {
			score := Relevance(content, req.Query)
			scores[req.CurrentFile] = score
			if score >= strategy.RelevanceThreshold {
				cands = append(cands, fileCandidate(req.CurrentFile, content, score, TagCurrentFile))
			}
		} else {
			r.log.Debug().Str("path", req.CurrentFile).Msg("current file not readable as text")
		}
	}

	if strategy.MaxFiles > 1 && req.ProjectRoot != "" {
		found := walkProject(req.ProjectRoot, req.Query, req.CurrentFile, strategy.RelevanceThreshold, strategy.MaxFiles, scores, r.log)
		// Project files only fill the slots left after the selection and
		// the current file.
		room := max(strategy.MaxFiles-len(cands), 0)
		if len(found) > room {
			found = found[:room]
		}
		for _, f := range found {
			cands = append(cands, fileCandidate(f.path, f.content, f.score, TagProjectFile))
		}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].md.RelevanceScore > cands[j].md.RelevanceScore
	})
	// Only reachable when the selection and current file alone exceed
	// max_files (the file strategy); the selection scores 1.0 and stays.
	if len(cands) > strategy.MaxFiles {
		cands = cands[:strategy.MaxFiles]
	}

	resp := types.ContextResponse{
		Items:           []types.ContextItem{},
		StrategyUsed:    req.Strategy,
		RelevanceScores: scores,
	}
	if req.MaxTokens <= 0 {
		return resp, nil
	}
	for _, c := range cands {
		t := EstimateTokens(c.content)
		if resp.TotalTokens+t > req.MaxTokens {
			break
		}
		resp.TotalTokens += t
		resp.Items = append(resp.Items, r.cache.Put(c.id, c.content, c.md))
	}
	r.log.Debug().
		Str("strategy", req.Strategy).
		Int("candidates", len(cands)).
		Int("items", len(resp.Items)).
		Int("tokens", resp.TotalTokens).
		Msg("context assembled")
	return resp, nil
}

func fileCandidate(path, content string, score float64, tag string) candidate {
	return candidate{
		id:      path,
		content: content,
		md: types.ContextMetadata{
			SourceType:     types.SourceFile,
			FilePath:       path,
			Language:       DetectLanguage(path),
			Size:           len(content),
			RelevanceScore: score,
			Tags:           []string{tag},
		},
	}
}
