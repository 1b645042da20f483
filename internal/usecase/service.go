package usecase

import (
	"arena-hub/internal/data/repository"
	"arena-hub/pkg/mailer"
	"arena-hub/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Booking BookingService
	Event   EventService
}

func NewService(repo *repository.Repository, config *utils.Config, mail *mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		User:    NewUserService(repo, log),
		Booking: NewBookingService(repo, config, mail, log),
		Event:   NewEventService(repo, config, mail, log),
	}
}
