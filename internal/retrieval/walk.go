package retrieval

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// maxProjectFileBytes caps the size of files considered during a project walk.
const maxProjectFileBytes = 1024 * 1024

var skipDirs = map[string]bool{
	"node_modules": true,
	"target":       true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

var skipExts = map[string]bool{
	"log":   true,
	"tmp":   true,
	"cache": true,
	"lock":  true,
}

type scoredFile struct {
	path    string
	content string
	score   float64
}

// readText returns the file contents when it is a regular UTF-8 file of at
// most limit bytes (limit <= 0 disables the size check).
func readText(path string, limit int64) (string, bool) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return "", false
	}
	if limit > 0 && fi.Size() > limit {
		return "", false
	}
	b, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

// walkProject scores every eligible file under root. Every score lands in
// scores; files at or above threshold are returned sorted by score (stable
// in walk order) and truncated to maxFiles. The file at skip is ignored.
func walkProject(root, query, skip string, threshold float64, maxFiles int, scores map[string]float64, log zerolog.Logger) []scoredFile {
	var kept []scoredFile
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug().Err(err).Str("path", p).Msg("skip unreadable path")
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(p), ".")
		if skipExts[ext] {
			return nil
		}
		if skip != "" && sameFile(p, skip) {
			return nil
		}
		content, ok := readText(p, maxProjectFileBytes)
		if !ok {
			return nil
		}
		score := Relevance(content, query)
		scores[p] = score
		if score >= threshold {
			kept = append(kept, scoredFile{path: p, content: content, score: score})
		}
		return nil
	})
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })
	if len(kept) > maxFiles {
		kept = kept[:maxFiles]
	}
	return kept
}

func sameFile(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
