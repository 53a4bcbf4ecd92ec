package manager

import "raind/pkg/types"

// sampling is what a backend receives for one generation. Sampling knobs are
// passed through as configured, zero included: temperature 0 is greedy
// decoding, not "use the default". Only a non-positive token limit falls back
// to the backend's own default.
type sampling struct {
	tokens      int // 0: backend default
	temperature float32
	topP        float32
	topK        int
	stop        []string
}

func samplingFor(p types.GenerationParams) sampling {
	s := sampling{
		temperature: float32(p.Temperature),
		topP:        float32(p.TopP),
		topK:        p.TopK,
		stop:        p.StopSequences,
	}
	if p.MaxTokens > 0 {
		s.tokens = p.MaxTokens
	}
	return s
}
