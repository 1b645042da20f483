package usecase

import (
	"context"
	"fmt"
	"time"

	"arena-hub/internal/data/repository"
	"arena-hub/internal/dto/request"
	"arena-hub/internal/dto/response"
	"arena-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update profile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	if req.Phone != nil {
		user.Phone = req.Phone
	}

	// 2. Ganti password kalau diminta, verifikasi password lama dulu
	passwordChanged := false
	if req.NewPassword != "" {
		if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
			return nil, fmt.Errorf("invalid credentials")
		}

		hashed, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			s.log.Error("Failed to hash password", zap.Error(err))
			return nil, fmt.Errorf("failed to process password")
		}
		user.PasswordHash = hashed
		passwordChanged = true
	}

	user.UpdatedAt = time.Now()
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("update user %s: %w", userID, err)
	}

	// 3. Password baru berarti semua session lama harus login ulang
	if passwordChanged {
		if err := s.repo.Session.RevokeAllUserSessions(ctx, id); err != nil {
			s.log.Error("Failed to revoke sessions after password change",
				zap.Error(err), zap.String("user_id", userID))
		}
	}

	s.log.Info("Profile updated",
		zap.String("user_id", userID),
		zap.Bool("password_changed", passwordChanged),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}
