package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{
			name:        "invalid URL",
			url:         "invalid://url",
			expectError: true,
		},
		{
			name:        "empty URL",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", zap.NewNop())
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			}
		})
	}
}

func TestClient_SetGet(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyUserStats("dev-1")
	require.NoError(t, client.Set(ctx, key, "42", TTLStats))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestClient_GetMissingKey(t *testing.T) {
	_, client := setupTestRedis(t)

	_, err := client.Get(context.Background(), "staging:missing")
	assert.True(t, IsNil(err))
}

func TestClient_PersistentKeySurvivesTTLExpiry(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	progressKey := client.KeyBuilder.KeyReadingProgress("dev-1", "book-1")
	statsKey := client.KeyBuilder.KeyUserStats("dev-1")

	require.NoError(t, client.Set(ctx, progressKey, `{"last_page":3}`, TTLPersistent))
	require.NoError(t, client.Set(ctx, statsKey, "7", TTLStats))

	mr.FastForward(time.Minute)

	val, err := client.Get(ctx, progressKey)
	require.NoError(t, err)
	assert.Equal(t, `{"last_page":3}`, val)

	_, err = client.Get(ctx, statsKey)
	assert.True(t, IsNil(err))
}

func TestClient_SetNX(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "staging:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "staging:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClient_Delete(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "staging:gone", "1", time.Minute))
	require.NoError(t, client.Delete(ctx, "staging:gone"))

	n, err := client.Exists(ctx, "staging:gone")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestKeyBuilder_EnvironmentPrefix(t *testing.T) {
	tests := []struct {
		environment string
		want        string
	}{
		{"production", "prod"},
		{"development", "staging"},
		{"staging", "staging"},
		{"test", "staging"},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			assert.Equal(t, tt.want, kb.GetPrefix())
		})
	}
}

func TestKeyBuilder_ReadingProgressKey(t *testing.T) {
	kb := NewKeyBuilder("production")
	assert.Equal(t, "prod:reader:progress:dev-1:book-9", kb.KeyReadingProgress("dev-1", "book-9"))
}
