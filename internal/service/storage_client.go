package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"namavruksha/internal/config"
	"namavruksha/pkg/logger"

	"go.uber.org/zap"
)

// StorageClient fetches library objects from the hosted object store over
// its REST surface, authenticated with the anon key.
type StorageClient struct {
	config     *config.Config
	httpClient *http.Client
	logger     *logger.Logger
}

// NewStorageClient creates a new object storage client
func NewStorageClient(cfg *config.Config, logger *logger.Logger) *StorageClient {
	return &StorageClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // scanned volumes can run tens of megabytes
		},
		logger: logger,
	}
}

// Fetch downloads the object stored at path inside the configured bucket.
// Any transport failure or non-success status is reported as a single
// wrapped error; callers treat it as terminal for the reading session.
func (s *StorageClient) Fetch(ctx context.Context, path string) ([]byte, error) {
	objectURL := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		s.config.SupabaseURL, s.config.StorageBucket, url.PathEscape(path))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, objectURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.config.SupabaseAnonKey))

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object %q: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.WithFields(map[string]interface{}{
			"path":        path,
			"status_code": resp.StatusCode,
		}).Error("Object storage returned non-success status")
		return nil, fmt.Errorf("object storage returned status %d for %q: %s", resp.StatusCode, path, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}

	s.logger.Logger.Debug("Fetched library object",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))

	return data, nil
}
