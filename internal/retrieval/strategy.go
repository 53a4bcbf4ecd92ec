package retrieval

import (
	"sort"
	"strings"

	"raind/pkg/types"
)

// Built-in strategy keys.
const (
	StrategyFile      = "file"
	StrategyProject   = "project"
	StrategySmart     = "smart"
	StrategySelection = "selection"
)

// DefaultStrategies returns the built-in strategy table keyed by name.
func DefaultStrategies() map[string]types.ContextStrategy {
	return map[string]types.ContextStrategy{
		StrategyFile: {
			Name:        "File Context",
			Description: "Include only the current file content",
			MaxFiles:    1,
		},
		StrategyProject: {
			Name:                 "Project Context",
			Description:          "Include relevant files from the entire project",
			MaxFiles:             20,
			IncludeDependencies:  true,
			IncludeTests:         true,
			IncludeDocumentation: true,
			RelevanceThreshold:   0.3,
		},
		StrategySmart: {
			Name:                 "Smart Context",
			Description:          "Intelligently select the most relevant context",
			MaxFiles:             10,
			IncludeDependencies:  true,
			IncludeDocumentation: true,
			RelevanceThreshold:   0.5,
		},
		StrategySelection: {
			Name:        "Selection Context",
			Description: "Include only the selected code and minimal surrounding context",
			MaxFiles:    3,
		},
	}
}

// RegisterStrategy adds a strategy under key. Registered strategies are
// immutable; reusing a key fails.
func (r *Retriever) RegisterStrategy(key string, s types.ContextStrategy) error {
	key = strings.TrimSpace(key)
	switch {
	case key == "":
		return invalidStrategyError{msg: "empty key"}
	case s.MaxFiles < 1:
		return invalidStrategyError{msg: "max_files must be at least 1"}
	case s.RelevanceThreshold < 0 || s.RelevanceThreshold > 1:
		return invalidStrategyError{msg: "relevance_threshold must be within [0,1]"}
	}
	r.smu.Lock()
	defer r.smu.Unlock()
	if _, ok := r.strategies[key]; ok {
		return strategyExistsError{name: key}
	}
	r.strategies[key] = s
	return nil
}

// Strategy looks up a registered strategy.
func (r *Retriever) Strategy(key string) (types.ContextStrategy, error) {
	r.smu.RLock()
	defer r.smu.RUnlock()
	s, ok := r.strategies[key]
	if !ok {
		return types.ContextStrategy{}, ErrStrategyNotFound(key)
	}
	return s, nil
}

// Strategies returns the registered strategy keys in sorted order.
func (r *Retriever) Strategies() []string {
	r.smu.RLock()
	defer r.smu.RUnlock()
	keys := make([]string, 0, len(r.strategies))
	for k := range r.strategies {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
