package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFiles are the config file names looked up, in order of preference.
var ConfigFiles = []string{"errdocs.yaml", "errdocs.yml", "errdocs.toml"}

// ErrConfigNotFound is returned by FindConfig when no config file exists in
// startDir or any of its parents.
var ErrConfigNotFound = errors.New("config file not found")

// FindConfig recursively looks upwards for a config file.
// If found, returns its absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigFiles {
			if hasFile(dir, name) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrConfigNotFound
}

func hasFile(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}
