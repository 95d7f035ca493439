package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"trip-planner-go/pkg/logger"
)

const dotenvFilename = ".env"

// loadDotEnv loads the nearest .env at or above the working directory.
// godotenv.Load never overrides variables already set in the process.
func loadDotEnv(log logger.Logger) error {
	path, err := FindUp(dotenvFilename, false)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	log.Info("config: dotenv loaded", "path", path)
	return nil
}

// FindUp returns the first entry called name in the working directory or
// one of its parents. wantDir selects between directories and regular files.
func FindUp(name string, wantDir bool) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for ; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() == wantDir {
			return candidate, nil
		}
		if filepath.Dir(dir) == dir {
			return "", os.ErrNotExist
		}
	}
}
