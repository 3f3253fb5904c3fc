package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"
	"namavruksha/pkg/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SankalpaService manages community campaigns. The active-campaign list
// sits on every devotee's home screen, so it is served from a short
// Redis cache.
type SankalpaService struct {
	sankalpaRepo repository.SankalpaRepository
	redis        *redis.Client
	logger       *zap.Logger
}

func NewSankalpaService(sankalpaRepo repository.SankalpaRepository, redisClient *redis.Client, logger *zap.Logger) *SankalpaService {
	return &SankalpaService{
		sankalpaRepo: sankalpaRepo,
		redis:        redisClient,
		logger:       logger,
	}
}

// ListActive returns the campaigns currently open for submissions
func (s *SankalpaService) ListActive(ctx context.Context) ([]domain.Sankalpa, error) {
	cacheKey := s.redis.KeyBuilder.KeySankalpasAll()

	if cached, err := s.redis.Get(ctx, cacheKey); err == nil {
		var sankalpas []domain.Sankalpa
		if err := json.Unmarshal([]byte(cached), &sankalpas); err == nil {
			return sankalpas, nil
		}
	}

	sankalpas, err := s.sankalpaRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sankalpas: %w", err)
	}

	if data, err := json.Marshal(sankalpas); err == nil {
		if err := s.redis.Set(ctx, cacheKey, string(data), redis.TTLSankalpas); err != nil {
			s.logger.Warn("Failed to cache sankalpa list", zap.Error(err))
		}
	}
	return sankalpas, nil
}

// ListAll returns every campaign, including closed ones. Admin view, no
// caching.
func (s *SankalpaService) ListAll(ctx context.Context) ([]domain.Sankalpa, error) {
	return s.sankalpaRepo.ListAll(ctx)
}

// Get returns a single campaign
func (s *SankalpaService) Get(ctx context.Context, id string) (*domain.Sankalpa, error) {
	sankalpa, err := s.sankalpaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sankalpa == nil {
		return nil, domain.ErrSankalpaNotFound
	}
	return sankalpa, nil
}

// Create registers a new campaign
func (s *SankalpaService) Create(ctx context.Context, createdBy string, req *domain.CreateSankalpaRequest) (*domain.Sankalpa, error) {
	sankalpa := &domain.Sankalpa{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Deity:       req.Deity,
		Target:      req.Target,
		Active:      true,
		CreatedBy:   createdBy,
	}

	if req.StartDate != "" {
		start, err := time.Parse(domain.EntryDateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start_date: %w", err)
		}
		sankalpa.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(domain.EntryDateLayout, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end_date: %w", err)
		}
		sankalpa.EndDate = &end
	}

	if err := s.sankalpaRepo.Create(ctx, sankalpa); err != nil {
		return nil, fmt.Errorf("failed to create sankalpa: %w", err)
	}

	s.invalidateList(ctx)
	s.logger.Info("Sankalpa created",
		zap.String("sankalpa_id", sankalpa.ID),
		zap.String("name", sankalpa.Name),
		zap.String("created_by", createdBy))
	return sankalpa, nil
}

// Update applies partial changes to a campaign
func (s *SankalpaService) Update(ctx context.Context, id string, req *domain.UpdateSankalpaRequest) (*domain.Sankalpa, error) {
	sankalpa, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		sankalpa.Name = *req.Name
	}
	if req.Description != nil {
		sankalpa.Description = *req.Description
	}
	if req.Target != nil {
		sankalpa.Target = *req.Target
	}
	if req.Active != nil {
		sankalpa.Active = *req.Active
	}

	if err := s.sankalpaRepo.Update(ctx, sankalpa); err != nil {
		return nil, fmt.Errorf("failed to update sankalpa: %w", err)
	}

	s.invalidateList(ctx)
	s.logger.Info("Sankalpa updated", zap.String("sankalpa_id", id))
	return sankalpa, nil
}

func (s *SankalpaService) invalidateList(ctx context.Context) {
	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeySankalpasAll()); err != nil {
		s.logger.Warn("Failed to invalidate sankalpa list cache", zap.Error(err))
	}
}
