package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"
	"namavruksha/pkg/redis"

	"go.uber.org/zap"
)

// StatsService computes devotion statistics over count entries. The bucket
// math lives in pure functions; the service scopes entries through the
// repositories and caches assembled responses in Redis.
type StatsService struct {
	entryRepo    repository.EntryRepository
	sankalpaRepo repository.SankalpaRepository
	redis        *redis.Client
	logger       *zap.Logger
}

func NewStatsService(entryRepo repository.EntryRepository, sankalpaRepo repository.SankalpaRepository, redisClient *redis.Client, logger *zap.Logger) *StatsService {
	return &StatsService{
		entryRepo:    entryRepo,
		sankalpaRepo: sankalpaRepo,
		redis:        redisClient,
		logger:       logger,
	}
}

// ComputeStats buckets entries by calendar windows relative to now and sums
// counts per bucket. The week runs Monday through Sunday; month and year are
// calendar boundaries in now's location. Empty input yields the zero bucket.
func ComputeStats(entries []domain.CountEntry, now time.Time) domain.StatsBucket {
	var bucket domain.StatsBucket

	weekStart, weekEnd := weekWindow(now)

	for _, entry := range entries {
		day := utcDay(entry.EntryDate)

		bucket.Overall += entry.Count

		if domain.SameDay(entry.EntryDate, now) {
			bucket.Today += entry.Count
		}
		if !day.Before(weekStart) && !day.After(weekEnd) {
			bucket.ThisWeek += entry.Count
		}
		if entry.EntryDate.Year() == now.Year() {
			bucket.ThisYear += entry.Count
			if entry.EntryDate.Month() == now.Month() {
				bucket.ThisMonth += entry.Count
			}
		}
		if entry.EntryDate.Year() == now.Year()-1 {
			bucket.PreviousYear += entry.Count
		}
	}

	return bucket
}

// SumByDateRange sums counts of entries whose entry date falls within
// [start, end] inclusive, compared as calendar days. An inverted range
// (start after end) matches nothing and returns 0.
func SumByDateRange(entries []domain.CountEntry, start, end time.Time) int {
	from, to := utcDay(start), utcDay(end)

	total := 0
	for _, entry := range entries {
		day := utcDay(entry.EntryDate)
		if !day.Before(from) && !day.After(to) {
			total += entry.Count
		}
	}
	return total
}

// DevoteeAdjustedTotal counts how many devotees the entries stand for.
// Every entry contributes at least 1, so group offerings with a recorded
// devotee_count weigh more but a lone devotee is never counted as zero.
func DevoteeAdjustedTotal(entries []domain.CountEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.Devotees()
	}
	return total
}

// weekWindow returns the Monday and Sunday of the week containing now,
// normalized to UTC days.
func weekWindow(now time.Time) (time.Time, time.Time) {
	offset := int(now.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started the previous Monday
	}
	monday := utcDay(now).AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// utcDay projects a timestamp onto its calendar day, dropping the location.
// Entries and window bounds may carry different zones; comparing projected
// days keeps the bucketing purely calendar-based.
func utcDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetUserStats returns bucketed totals for one devotee (with caching)
func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*domain.UserStatsResponse, error) {
	cacheKey := s.redis.KeyBuilder.KeyUserStats(userID)
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var resp domain.UserStatsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	resp := &domain.UserStatsResponse{
		UserID:     userID,
		Buckets:    ComputeStats(entries, time.Now()),
		EntryCount: len(entries),
		ComputedAt: time.Now(),
	}

	s.cache(ctx, cacheKey, resp)
	return resp, nil
}

// GetSankalpaStats returns bucketed totals and the devotee-adjusted
// participant count for one campaign (with caching)
func (s *StatsService) GetSankalpaStats(ctx context.Context, sankalpaID string) (*domain.SankalpaStatsResponse, error) {
	cacheKey := s.redis.KeyBuilder.KeySankalpaStats(sankalpaID)
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var resp domain.SankalpaStatsResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	sankalpa, err := s.sankalpaRepo.GetByID(ctx, sankalpaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sankalpa: %w", err)
	}
	if sankalpa == nil {
		return nil, domain.ErrSankalpaNotFound
	}

	entries, err := s.entryRepo.ListBySankalpa(ctx, sankalpaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	resp := &domain.SankalpaStatsResponse{
		SankalpaID:   sankalpa.ID,
		SankalpaName: sankalpa.Name,
		Buckets:      ComputeStats(entries, time.Now()),
		Participants: DevoteeAdjustedTotal(entries),
		Target:       sankalpa.Target,
		ComputedAt:   time.Now(),
	}

	s.cache(ctx, cacheKey, resp)
	return resp, nil
}

// GetRangeReport sums a devotee's entries inside an inclusive calendar-day
// range. An inverted range reports zero rather than an error.
func (s *StatsService) GetRangeReport(ctx context.Context, userID string, start, end time.Time) (*domain.RangeReportResponse, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	inRange := make([]domain.CountEntry, 0, len(entries))
	from, to := utcDay(start), utcDay(end)
	for _, entry := range entries {
		day := utcDay(entry.EntryDate)
		if !day.Before(from) && !day.After(to) {
			inRange = append(inRange, entry)
		}
	}

	return &domain.RangeReportResponse{
		StartDate:    start.Format(domain.EntryDateLayout),
		EndDate:      end.Format(domain.EntryDateLayout),
		Total:        SumByDateRange(entries, start, end),
		Participants: DevoteeAdjustedTotal(inRange),
		EntryCount:   len(inRange),
	}, nil
}

// GetCommunityReport assembles per-sankalpa totals across all active
// campaigns (with caching)
func (s *StatsService) GetCommunityReport(ctx context.Context) (*domain.CommunityReportResponse, error) {
	cacheKey := s.redis.KeyBuilder.KeyCommunity()
	if cached, err := s.redis.Get(ctx, cacheKey); err == nil && cached != "" {
		var resp domain.CommunityReportResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return &resp, nil
		}
	}

	sankalpas, err := s.sankalpaRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sankalpas: %w", err)
	}

	now := time.Now()
	resp := &domain.CommunityReportResponse{
		Sankalpas:  make([]domain.CommunityReportRow, 0, len(sankalpas)),
		ComputedAt: now,
	}

	for _, sankalpa := range sankalpas {
		entries, err := s.entryRepo.ListBySankalpa(ctx, sankalpa.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries for sankalpa %s: %w", sankalpa.ID, err)
		}

		buckets := ComputeStats(entries, now)
		resp.Sankalpas = append(resp.Sankalpas, domain.CommunityReportRow{
			SankalpaID:   sankalpa.ID,
			SankalpaName: sankalpa.Name,
			Overall:      buckets.Overall,
			ThisMonth:    buckets.ThisMonth,
			Participants: DevoteeAdjustedTotal(entries),
		})
		resp.Total += buckets.Overall
	}

	s.cache(ctx, cacheKey, resp)
	return resp, nil
}

// InvalidateFor drops cached stats touched by a new entry
func (s *StatsService) InvalidateFor(ctx context.Context, userID, sankalpaID string) {
	keys := []string{
		s.redis.KeyBuilder.KeyUserStats(userID),
		s.redis.KeyBuilder.KeySankalpaStats(sankalpaID),
		s.redis.KeyBuilder.KeyCommunity(),
	}
	if err := s.redis.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Failed to invalidate stats caches",
			zap.String("user_id", userID),
			zap.String("sankalpa_id", sankalpaID),
			zap.Error(err))
	}
}

func (s *StatsService) cache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, string(data), redis.TTLStats); err != nil {
		s.logger.Warn("Failed to cache stats response",
			zap.String("key", key),
			zap.Error(err))
	}
}
