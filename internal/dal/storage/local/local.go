package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Storage writes uploads to a directory on the local disk and serves them
// under a configured base URL.
type Storage struct {
	uploadDir string
	baseURL   string
}

// NewStorage creates a local disk storage from configuration.
func NewStorage() *Storage {
	uploadDir := viper.GetString("storage.local.dir")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	baseURL := viper.GetString("storage.local.base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return &Storage{
		uploadDir: uploadDir,
		baseURL:   baseURL,
	}
}

// Upload stores the file under a timestamped name and returns its URL.
func (s *Storage) Upload(_ context.Context, data []byte, filename, _ string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(filename))
	path := filepath.Join(s.uploadDir, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}
