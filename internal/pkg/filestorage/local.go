package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prepsphere/backend/internal/pkg/logger"
)

// LocalStorage saves files under a directory on the server's filesystem.
// It is the fallback when no object store is configured.
type LocalStorage struct {
	basePath string // root directory where files are stored
	baseURL  string // prepended to returned paths when set
}

// NewLocalStorage creates a LocalStorage rooted at basePath, creating the
// directory if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Save writes the content to basePath/key, creating parent directories as needed.
func (ls *LocalStorage) Save(_ context.Context, key string, content io.Reader, _ int64, _ string) (string, error) {
	key = filepath.ToSlash(filepath.Clean(key))
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		return "", fmt.Errorf("invalid object key: %q", key)
	}

	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, content); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("key", key).Msg("File saved to local storage")
	return key, nil
}

// URL returns the access path for a stored key. With a baseURL configured the
// result is a full URL, otherwise a server-relative path under /uploads.
func (ls *LocalStorage) URL(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + strings.TrimLeft(key, "/"), nil
	}
	return "/uploads/" + strings.TrimLeft(key, "/"), nil
}

// Delete removes the file for the given key. Missing files are ignored so the
// operation stays idempotent.
func (ls *LocalStorage) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(key))
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
