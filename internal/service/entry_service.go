package service

import (
	"context"
	"fmt"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"

	"go.uber.org/zap"
)

// EntryService records Nama count submissions against Sankalpa campaigns
type EntryService struct {
	entryRepo    repository.EntryRepository
	sankalpaRepo repository.SankalpaRepository
	stats        *StatsService
	logger       *zap.Logger
}

func NewEntryService(entryRepo repository.EntryRepository, sankalpaRepo repository.SankalpaRepository, stats *StatsService, logger *zap.Logger) *EntryService {
	return &EntryService{
		entryRepo:    entryRepo,
		sankalpaRepo: sankalpaRepo,
		stats:        stats,
		logger:       logger,
	}
}

// SubmitEntry validates and stores one count submission. The campaign must
// exist and be open on the entry date. Negative counts are rejected at the
// handler; a zero count is allowed (it still marks participation).
func (s *EntryService) SubmitEntry(ctx context.Context, userID string, req *domain.SubmitEntryRequest) (*domain.SubmitEntryResponse, error) {
	sankalpa, err := s.sankalpaRepo.GetByID(ctx, req.SankalpaID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sankalpa: %w", err)
	}
	if sankalpa == nil {
		return nil, domain.ErrSankalpaNotFound
	}

	entryDate := domain.DayOf(time.Now())
	if req.EntryDate != "" {
		parsed, err := time.Parse(domain.EntryDateLayout, req.EntryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid entry date %q: %w", req.EntryDate, err)
		}
		entryDate = parsed
	}

	if !sankalpa.IsOpenOn(entryDate) {
		return nil, domain.ErrSankalpaClosed
	}

	entry := &domain.CountEntry{
		UserID:     userID,
		SankalpaID: sankalpa.ID,
		Count:      req.Count,
		EntryDate:  entryDate,
		Source:     domain.SourceManual,
	}
	if domain.EntrySource(req.Source) == domain.SourceAudio {
		entry.Source = domain.SourceAudio
	}

	// Retroactive batched offerings carry an explicit period
	if req.PeriodStart != "" && req.PeriodEnd != "" {
		start, err := time.Parse(domain.EntryDateLayout, req.PeriodStart)
		if err != nil {
			return nil, fmt.Errorf("invalid period start %q: %w", req.PeriodStart, err)
		}
		end, err := time.Parse(domain.EntryDateLayout, req.PeriodEnd)
		if err != nil {
			return nil, fmt.Errorf("invalid period end %q: %w", req.PeriodEnd, err)
		}
		if start.After(end) {
			return nil, fmt.Errorf("period start %s is after period end %s", req.PeriodStart, req.PeriodEnd)
		}
		entry.PeriodStart = &start
		entry.PeriodEnd = &end
	}

	entry.DevoteeCount = req.DevoteeCount
	if entry.DevoteeCount <= 0 {
		entry.DevoteeCount = 1
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	// Drop stale cached stats so the next read reflects this submission
	s.stats.InvalidateFor(ctx, userID, sankalpa.ID)

	s.logger.Info("Count entry recorded",
		zap.String("user_id", userID),
		zap.String("sankalpa_id", sankalpa.ID),
		zap.Int("count", entry.Count),
		zap.String("source", string(entry.Source)))

	return &domain.SubmitEntryResponse{
		EntryID:   entry.ID,
		Count:     entry.Count,
		EntryDate: entry.EntryDate.Format(domain.EntryDateLayout),
		Message:   "Nama count recorded",
		CreatedAt: entry.CreatedAt,
	}, nil
}

// ListUserEntries returns all of a devotee's submissions, newest first
func (s *EntryService) ListUserEntries(ctx context.Context, userID string) ([]domain.CountEntry, error) {
	entries, err := s.entryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	return entries, nil
}
