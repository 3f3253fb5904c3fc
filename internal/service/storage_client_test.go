package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"namavruksha/internal/config"
	"namavruksha/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorageClient(t *testing.T, baseURL string) *StorageClient {
	log, err := logger.New("error")
	require.NoError(t, err)

	cfg := &config.Config{
		SupabaseURL:     baseURL,
		SupabaseAnonKey: "anon-test-key",
		StorageBucket:   "library",
	}

	return NewStorageClient(cfg, log)
}

func TestStorageClient_Fetch(t *testing.T) {
	payload := []byte("%PDF-1.4 fake bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/library/bhajans.pdf", r.URL.Path)
		assert.Equal(t, "Bearer anon-test-key", r.Header.Get("Authorization"))
		w.Write(payload)
	}))
	defer server.Close()

	client := newTestStorageClient(t, server.URL)

	data, err := client.Fetch(context.Background(), "bhajans.pdf")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestStorageClient_FetchNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestStorageClient(t, server.URL)

	_, err := client.Fetch(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestStorageClient_FetchConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // shut down immediately to force a transport error

	client := newTestStorageClient(t, server.URL)

	_, err := client.Fetch(context.Background(), "bhajans.pdf")
	assert.Error(t, err)
}
