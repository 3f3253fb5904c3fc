package service

import (
	"context"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"

	"go.uber.org/zap"
)

// FeedbackService records devotee feedback and alerts the moderators
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	mailer       Mailer
	adminTo      string
	logger       *zap.Logger
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, mailer Mailer, adminTo string, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		mailer:       mailer,
		adminTo:      adminTo,
		logger:       logger,
	}
}

// Submit stores a feedback message and notifies the admin best-effort
func (s *FeedbackService) Submit(ctx context.Context, userID string, req *domain.SubmitFeedbackRequest) (*domain.Feedback, error) {
	feedback := &domain.Feedback{
		UserID:  userID,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	s.mailer.Send(ctx, s.adminTo,
		fmt.Sprintf("Feedback: %s", feedback.Subject),
		feedback.Message)

	s.logger.Info("Feedback recorded",
		zap.String("user_id", userID),
		zap.String("feedback_id", feedback.ID))

	return feedback, nil
}

// List returns feedback for the moderation screen
func (s *FeedbackService) List(ctx context.Context, includeResolved bool) ([]domain.Feedback, error) {
	items, err := s.feedbackRepo.List(ctx, includeResolved)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
