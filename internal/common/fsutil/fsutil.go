package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/llm
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists checks if the given path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// DefaultModelsDir is used when no candidate directory exists.
const DefaultModelsDir = "./models"

// ModelsDirCandidates lists the locations probed by ResolveModelsDir, in order:
// ./models under cwd, ../models, ~/Documents/raind/models.
func ModelsDirCandidates() []string {
	var out []string
	if cwd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(cwd, "models"), filepath.Join(filepath.Dir(cwd), "models"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, "Documents", "raind", "models"))
	}
	return out
}

// ResolveModelsDir returns the first existing candidate, else DefaultModelsDir.
func ResolveModelsDir(candidates []string) string {
	for _, c := range candidates {
		if c != "" && PathExists(c) {
			return c
		}
	}
	return DefaultModelsDir
}
