package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"namavruksha/internal/config"
	"namavruksha/internal/domain"
	"namavruksha/pkg/logger"
	"namavruksha/pkg/redis"
)

// QuoteService serves the daily devotional quote. Quotes live in a separate
// hosted document database shared with the sibling display apps; the day's
// quote is cached in Redis so the upstream is hit at most once per day.
type QuoteService struct {
	config     *config.Config
	httpClient *http.Client
	redis      *redis.Client
	logger     *logger.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(cfg *config.Config, redisClient *redis.Client, logger *logger.Logger) *QuoteService {
	return &QuoteService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		redis:  redisClient,
		logger: logger,
	}
}

// TodayQuote returns the quote assigned to the current calendar day
func (s *QuoteService) TodayQuote(ctx context.Context) (*domain.Quote, error) {
	day := time.Now().Format(domain.EntryDateLayout)

	cacheKey := s.redis.KeyBuilder.KeyDailyQuote(day)
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var quote domain.Quote
		if err := json.Unmarshal([]byte(cached), &quote); err == nil {
			return &quote, nil
		}
	}

	quote, err := s.fetchQuote(ctx, day)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(quote); err == nil {
		if err := s.redis.Set(ctx, cacheKey, string(data), redis.TTLQuote); err != nil {
			s.logger.WithError(err).Warn("Failed to cache daily quote")
		}
	}

	return quote, nil
}

// fetchQuote queries the quote document database for one day's record
func (s *QuoteService) fetchQuote(ctx context.Context, day string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/quotes?day=%s", s.config.QuoteDBURL, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.config.QuoteDBAPIKey))
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call quote database: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read quote response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrQuoteNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote database returned status %d: %s", resp.StatusCode, string(body))
	}

	// The document database returns a list filtered by day; the first
	// record wins. An empty list means no quote was assigned.
	var quotes []domain.Quote
	if err := json.Unmarshal(body, &quotes); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"response_body": string(body),
			"status_code":   resp.StatusCode,
		}).Error("Failed to parse quote database response")
		return nil, fmt.Errorf("failed to parse quote response: %w", err)
	}
	if len(quotes) == 0 {
		return nil, domain.ErrQuoteNotFound
	}

	quote := quotes[0]
	quote.Day = day
	return &quote, nil
}
