package service

import (
	"context"
	"fmt"

	"namavruksha/internal/domain"
	"namavruksha/internal/repository"

	"go.uber.org/zap"
)

// UserService manages devotee registration and privilege tiers
type UserService struct {
	userRepo repository.UserRepository
	mailer   Mailer
	adminTo  string
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, mailer Mailer, adminTo string, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		mailer:   mailer,
		adminTo:  adminTo,
		logger:   logger,
	}
}

// EnsureUser returns the devotee record for an authenticated profile,
// registering one on first sign-in. The admin is notified of registrations
// best-effort.
func (s *UserService) EnsureUser(ctx context.Context, profile *domain.UserProfile) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, profile.Sub)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user = &domain.User{
		ID:    profile.Sub,
		Email: profile.Email,
		Name:  profile.Name,
		Role:  domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("New devotee registered",
		zap.String("user_id", user.ID))

	s.mailer.Send(ctx, s.adminTo,
		"New devotee registration",
		fmt.Sprintf("%s (%s) joined Namavruksha.", user.Name, user.Email))

	return user, nil
}

// ListUsers returns registered devotees for the moderation screen
func (s *UserService) ListUsers(ctx context.Context, limit int) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRole changes a devotee's privilege tier
func (s *UserService) SetRole(ctx context.Context, userID string, role domain.Role) error {
	switch role {
	case domain.RoleUser, domain.RoleModerator, domain.RoleAdmin:
	default:
		return fmt.Errorf("unknown role %q", role)
	}

	if err := s.userRepo.SetRole(ctx, userID, role); err != nil {
		return err
	}

	s.logger.Info("User role updated",
		zap.String("user_id", userID),
		zap.String("role", string(role)))

	return nil
}
