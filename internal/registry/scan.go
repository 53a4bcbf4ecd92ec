package registry

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"raind/pkg/types"
)

const (
	bytesPerMB = 1024 * 1024

	embeddingDirName = "embedding"

	modelDescription     = "Local AI model"
	embeddingDescription = "Embedding model for semantic search and similarity"
)

// Extensions recognized as model weights, mapped to the format they imply.
var weightFormats = map[string]types.Format{
	".gguf":        types.FormatGGUF,
	".safetensors": types.FormatHuggingFace,
	".bin":         types.FormatHuggingFace,
	".pth":         types.FormatHuggingFace,
	".onnx":        types.FormatONNX,
	".ggml":        types.FormatGGML,
}

// formatRank orders formats for classification; lower wins.
var formatRank = map[types.Format]int{
	types.FormatGGUF:        0,
	types.FormatHuggingFace: 1,
	types.FormatONNX:        2,
	types.FormatGGML:        3,
}

var configCandidates = []string{"config.json", "model_config.json", "tokenizer_config.json"}

var embeddingExtraCaps = []string{"similarity", "classification", "clustering"}

func capabilitiesFor(f types.Format) []string {
	if f == types.FormatHuggingFace {
		return []string{"text_generation", "chat", "vision"}
	}
	return []string{"text_generation", "chat"}
}

// dirScan accumulates what a single model directory contains.
type dirScan struct {
	desc       types.ModelDescriptor
	totalBytes uint64
	decided    bool
	hasWeights bool
	seenCaps   map[string]struct{}
}

func newDirScan(dir, description string, caps ...string) *dirScan {
	name := filepath.Base(dir)
	s := &dirScan{
		desc: types.ModelDescriptor{
			ID:          name,
			Name:        name,
			Description: description,
			Format:      types.FormatHuggingFace,
			Path:        dir,
			Files:       []types.ModelFile{},
		},
		seenCaps: map[string]struct{}{},
	}
	s.addCaps(caps...)
	return s
}

func (s *dirScan) addCaps(caps ...string) {
	for _, c := range caps {
		if _, ok := s.seenCaps[c]; ok {
			continue
		}
		s.seenCaps[c] = struct{}{}
		s.desc.Capabilities = append(s.desc.Capabilities, c)
	}
}

// classify records a weight file of format f. A format only replaces the
// current one when nothing was decided yet or it ranks higher.
func (s *dirScan) classify(f types.Format) {
	s.hasWeights = true
	if !s.decided || formatRank[f] < formatRank[s.desc.Format] {
		s.desc.Format = f
		s.decided = true
	}
}

// walkFiles lists the regular files of dir and feeds each to fn.
// Entries that cannot be inspected are logged and skipped.
func walkFiles(dir string, log zerolog.Logger, fn func(name string, size int64)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		fi, err := os.Stat(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skip unreadable file")
			continue
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		fn(e.Name(), fi.Size())
	}
	return nil
}

func (s *dirScan) addFile(name string, size int64) string {
	ext := strings.ToLower(filepath.Ext(name))
	s.totalBytes += uint64(size)
	s.desc.Files = append(s.desc.Files, types.ModelFile{
		Name:      name,
		SizeMB:    math.Round(float64(size)/bytesPerMB*100) / 100,
		Extension: ext,
	})
	return ext
}

func (s *dirScan) finish() types.ModelDescriptor {
	s.desc.SizeMB = s.totalBytes / bytesPerMB
	if s.desc.Capabilities == nil {
		s.desc.Capabilities = []string{}
	}
	return s.desc
}

// readJSON returns the file contents when they parse as JSON.
func readJSON(path string) (json.RawMessage, bool) {
	b, err := os.ReadFile(path)
	if err != nil || !json.Valid(b) {
		return nil, false
	}
	return json.RawMessage(b), true
}

// analyzeModelDir builds a descriptor for a chat/generation model directory.
// The boolean is false when the directory holds nothing loadable.
func analyzeModelDir(dir string, log zerolog.Logger) (types.ModelDescriptor, bool, error) {
	s := newDirScan(dir, modelDescription)
	err := walkFiles(dir, log, func(name string, size int64) {
		ext := s.addFile(name, size)
		if f, ok := weightFormats[ext]; ok {
			s.classify(f)
			s.addCaps(capabilitiesFor(f)...)
		}
	})
	if err != nil {
		return types.ModelDescriptor{}, false, err
	}
	for _, c := range configCandidates {
		if raw, ok := readJSON(filepath.Join(dir, c)); ok {
			s.desc.Config = raw
			break
		}
	}
	d := s.finish()
	if s.hasWeights {
		return d, true, nil
	}
	if d.Format == types.FormatHuggingFace && fileExists(filepath.Join(dir, "config.json")) {
		return d, true, nil
	}
	log.Debug().Str("dir", dir).Int("files", len(d.Files)).Msg("no model weights")
	return types.ModelDescriptor{}, false, nil
}

// analyzeEmbeddingDir builds a descriptor for a directory under embedding/.
func analyzeEmbeddingDir(dir string, log zerolog.Logger) (types.ModelDescriptor, bool, error) {
	s := newDirScan(dir, embeddingDescription, "text_embedding", "semantic_search")
	err := walkFiles(dir, log, func(name string, size int64) {
		ext := s.addFile(name, size)
		// Embedding models are always reported as HuggingFace; any weight
		// file only marks the directory as loadable.
		if _, ok := weightFormats[ext]; ok {
			s.hasWeights = true
			s.addCaps(embeddingExtraCaps...)
			return
		}
		if name != "config.json" {
			return
		}
		raw, ok := readJSON(filepath.Join(dir, name))
		if !ok {
			return
		}
		s.desc.Config = raw
		if isEmbeddingArchitecture(raw) {
			s.hasWeights = true
		}
	})
	if err != nil {
		return types.ModelDescriptor{}, false, err
	}
	d := s.finish()
	if s.hasWeights || d.Config != nil {
		return d, true, nil
	}
	log.Debug().Str("dir", dir).Msg("no embedding model files")
	return types.ModelDescriptor{}, false, nil
}

func isEmbeddingArchitecture(raw json.RawMessage) bool {
	var cfg struct {
		Architectures []json.RawMessage `json:"architectures"`
	}
	if err := json.Unmarshal(raw, &cfg); err != nil || len(cfg.Architectures) == 0 {
		return false
	}
	var arch string
	if err := json.Unmarshal(cfg.Architectures[0], &arch); err != nil {
		return false
	}
	return strings.Contains(arch, "SentenceTransformer") || strings.Contains(arch, "Embedding")
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
