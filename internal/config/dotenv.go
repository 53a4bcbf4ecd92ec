package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultDotEnvFile is read from the working directory when present.
const DefaultDotEnvFile = ".env"

// LoadDotEnv exports the variables in path into the process environment so
// ApplyEnv sees them. Variables already set in the environment win. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
