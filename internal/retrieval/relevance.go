package retrieval

import (
	"math"
	"path/filepath"
	"regexp"
	"strings"
)

// identifierDecl matches a declaring keyword and the identifier after it.
// Go's \b, \w and \s are ASCII-only, so word and space classes are spelled
// out in Unicode; the leading group stands in for a word boundary.
var identifierDecl = regexp.MustCompile(`(?:^|[^\p{L}\p{M}\p{N}\p{Pc}])(fn|function|def|class|struct|interface)[\s\p{Z}\x{85}]+([\p{L}\p{M}\p{N}\p{Pc}]+)`)

// Relevance scores how well content matches query, in [0,1].
//
// A phrase hit is worth 1.0, each content word containing a query word 0.1,
// and each declared identifier that appears in the query 0.5. The sum is
// divided by ten and capped at one.
func Relevance(content, query string) float64 {
	q := strings.ToLower(query)
	c := strings.ToLower(content)

	score := 0.0
	if strings.Contains(c, q) {
		score += 1.0
	}

	words := strings.Fields(c)
	for _, qw := range strings.Fields(q) {
		n := 0
		for _, w := range words {
			if strings.Contains(w, qw) {
				n++
			}
		}
		score += float64(n) * 0.1
	}

	for _, m := range identifierDecl.FindAllStringSubmatch(content, -1) {
		if strings.Contains(q, strings.ToLower(m[2])) {
			score += 0.5
		}
	}

	return math.Min(score/10.0, 1.0)
}

// EstimateTokens approximates the token count as one token per four bytes.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

var languages = map[string]string{
	"rs":   "rust",
	"js":   "javascript",
	"jsx":  "javascript",
	"ts":   "typescript",
	"tsx":  "typescript",
	"py":   "python",
	"go":   "go",
	"html": "html",
	"css":  "css",
	"json": "json",
	"toml": "toml",
	"yaml": "yaml",
	"yml":  "yaml",
	"md":   "markdown",
}

// DetectLanguage maps a file extension to a language name. Paths without an
// extension yield "" and unknown extensions yield "text".
func DetectLanguage(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return ""
	}
	if lang, ok := languages[ext]; ok {
		return lang
	}
	return "text"
}
