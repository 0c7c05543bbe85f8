package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DetectProjectRoot walks up from the current working directory looking for a
// directory that contains config.json. Returns the absolute path or an error
// if not found.
func DetectProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return findRoot(dir)
}

func findRoot(dir string) (string, error) {
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found in any parent directory", FileName)
		}
		dir = parent
	}
}

// ProjectRoot is DetectProjectRoot falling back to the working directory, so
// commands work before `init` has written a config.
func ProjectRoot() string {
	if root, err := DetectProjectRoot(); err == nil {
		return root
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// DefaultPath is where `init` writes the config when --config is not given.
func DefaultPath() string {
	return filepath.Join(ProjectRoot(), FileName)
}
