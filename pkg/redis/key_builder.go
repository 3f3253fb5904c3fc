package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Stats key builders

func (kb *KeyBuilder) KeyUserStats(userID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyUserStats, userID))
}

func (kb *KeyBuilder) KeySankalpaStats(sankalpaID string) string {
	return kb.BuildKey(fmt.Sprintf(KeySankalpaStats, sankalpaID))
}

func (kb *KeyBuilder) KeyCommunity() string {
	return kb.BuildKey(KeyCommunity)
}

// Sankalpa key builders

func (kb *KeyBuilder) KeySankalpasAll() string {
	return kb.BuildKey(KeySankalpasAll)
}

// Quote key builders

func (kb *KeyBuilder) KeyDailyQuote(day string) string {
	return kb.BuildKey(fmt.Sprintf(KeyDailyQuote, day))
}

// Reading progress key builders

func (kb *KeyBuilder) KeyReadingProgress(userID, documentID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyReadingProgress, userID, documentID))
}

// KeyCustom builds a custom key with the environment prefix
func (kb *KeyBuilder) KeyCustom(format string, args ...interface{}) string {
	return kb.BuildKey(fmt.Sprintf(format, args...))
}
