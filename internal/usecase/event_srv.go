package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"arena-hub/internal/data/entity"
	"arena-hub/internal/data/repository"
	"arena-hub/internal/dto/request"
	"arena-hub/internal/dto/response"
	"arena-hub/pkg/mailer"
	"arena-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	ListEvents(ctx context.Context) ([]response.EventResponse, error)
	GetAvailability(ctx context.Context, eventID string) (*response.AvailabilityResponse, error)

	// Register alloc kursi all-or-nothing. Event berbayar jadi pending dengan
	// hold; event gratis langsung confirmed.
	Register(ctx context.Context, eventID string, req *request.RegisterEventRequest) (*response.RegistrationResponse, error)
	ConfirmRegistration(ctx context.Context, registrationID string, req *request.ConfirmRegistrationRequest) (*response.RegistrationResponse, error)

	// Admin
	ListRegistrations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RegistrationResponse], error)

	// Hold expiry sweep
	ReleaseExpiredHolds(ctx context.Context) (int, error)
	StartHoldSweeper(ctx context.Context)
}

type eventService struct {
	repo      *repository.Repository
	allocator *seatAllocator
	config    *utils.Config
	mail      *mailer.Mailer
	log       *zap.Logger
}

func NewEventService(repo *repository.Repository, config *utils.Config, mail *mailer.Mailer, log *zap.Logger) EventService {
	return &eventService{
		repo:      repo,
		allocator: newSeatAllocator(repo.SeatPool, log),
		config:    config,
		mail:      mail,
		log:       log.With(zap.String("service", "event")),
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]response.EventResponse, error) {
	events, err := s.repo.Event.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list events", zap.Error(err))
		return nil, fmt.Errorf("list events: %w", err)
	}

	result := make([]response.EventResponse, len(events))
	for i, event := range events {
		taken := 0
		pool, err := s.repo.SeatPool.FindByEventID(ctx, event.ID)
		if err != nil {
			s.log.Error("Failed to read seat pool for event listing",
				zap.Error(err),
				zap.String("event_id", event.ID.String()),
			)
		}
		if pool != nil {
			taken = pool.TakenCount
		}
		result[i] = response.EventToResponse(event, taken)
	}

	return result, nil
}

func (s *eventService) GetAvailability(ctx context.Context, eventID string) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, ErrUnknownEvent
	}

	taken := 0
	pool, err := s.repo.SeatPool.FindByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find seat pool: %w", err)
	}
	if pool != nil {
		taken = pool.TakenCount
	}

	remaining := event.Capacity - taken
	if remaining < 0 {
		remaining = 0
	}

	return &response.AvailabilityResponse{
		EventID:        eventID,
		Capacity:       event.Capacity,
		SeatsTaken:     taken,
		SeatsRemaining: remaining,
	}, nil
}

func (s *eventService) Register(ctx context.Context, eventID string, req *request.RegisterEventRequest) (*response.RegistrationResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Event registration validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	// 2. Cek event ada dan masih buka
	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, ErrUnknownEvent
	}
	if !event.RegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	// 3. Reserve kursi. All-or-nothing: gagal kapasitas berarti pool
	// tidak berubah sama sekali.
	seats, err := s.allocator.Reserve(ctx, event.ID, event.Capacity, req.Participants)
	if err != nil {
		return nil, err
	}

	amount := event.FeePerParticipant * int64(req.Participants)
	now := time.Now()

	registration := &entity.Registration{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RegistrationID:   utils.GenerateRegistrationID(),
		EventID:          event.ID,
		ParticipantName:  req.ParticipantName,
		Email:            req.Email,
		Phone:            req.Phone,
		ParticipantCount: req.Participants,
		AssignedSeats:    seats,
		Amount:           amount,
	}

	if amount > 0 {
		// Event berbayar: kursi di-hold sampai payment dikonfirmasi
		holdMinutes := s.config.Hold.ExpiryMinutes
		if holdMinutes <= 0 {
			holdMinutes = 10
		}
		expiresAt := now.Add(time.Duration(holdMinutes) * time.Minute)
		registration.Status = entity.RegistrationStatusPending
		registration.HoldExpiresAt = &expiresAt
	} else {
		registration.Status = entity.RegistrationStatusConfirmed
		registration.ConfirmedAt = &now
	}

	// 4. Persist registration; kalau gagal kembalikan kursi ke pool
	if err := s.repo.Registration.Create(ctx, registration); err != nil {
		if releaseErr := s.allocator.Release(ctx, event.ID, seats); releaseErr != nil {
			// Release langsung gagal: simpan baris expired dengan
			// seats_released FALSE supaya sweeper yang mengembalikan kursi
			s.log.Error("Failed to release seats after create failure, handing off to sweeper",
				zap.Error(releaseErr),
				zap.String("event_id", eventID),
				zap.Ints("seats", seats),
			)
			registration.Status = entity.RegistrationStatusExpired
			registration.HoldExpiresAt = nil
			registration.ConfirmedAt = nil
			registration.SeatsReleased = false
			if tombErr := s.repo.Registration.Create(ctx, registration); tombErr != nil {
				s.log.Error("Failed to record unreleased seats, pool may leak",
					zap.Error(tombErr),
					zap.String("event_id", eventID),
					zap.Ints("seats", seats),
				)
			}
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// 5. Event gratis langsung permanen: tulis seat assignments dan kirim email
	if registration.Status == entity.RegistrationStatusConfirmed {
		if err := s.persistSeatAssignments(ctx, registration); err != nil {
			return nil, err
		}
		s.sendConfirmationAsync(registration, event.Title)
	}

	s.log.Info("Event registration created",
		zap.String("registration_id", registration.RegistrationID),
		zap.String("event_id", eventID),
		zap.Int("participants", req.Participants),
		zap.Ints("seats", seats),
		zap.String("status", string(registration.Status)),
	)

	resp := response.RegistrationToResponse(registration, event.Title)
	return &resp, nil
}

func (s *eventService) ConfirmRegistration(ctx context.Context, registrationID string, req *request.ConfirmRegistrationRequest) (*response.RegistrationResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm registration validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	registration, err := s.repo.Registration.FindByRegistrationID(ctx, registrationID)
	if err != nil {
		return nil, fmt.Errorf("find registration: %w", err)
	}
	if registration == nil {
		return nil, ErrRegistrationNotFound
	}

	event, err := s.repo.Event.FindByID(ctx, registration.EventID)
	if err != nil || event == nil {
		return nil, fmt.Errorf("find event for registration %s: %w", registrationID, err)
	}

	// 2. Confirm dua kali tidak error, balas state yang sudah ada
	if registration.Status == entity.RegistrationStatusConfirmed {
		resp := response.RegistrationToResponse(registration, event.Title)
		return &resp, nil
	}
	if registration.Status == entity.RegistrationStatusExpired {
		return nil, ErrHoldExpired
	}

	// Sweep mungkin belum jalan; hold yang sudah lewat tetap ditolak
	if registration.HoldExpiresAt != nil && registration.HoldExpiresAt.Before(time.Now()) {
		return nil, ErrHoldExpired
	}

	// 3. Simulasi gateway
	if err := simulateGateway(ctx, s.config.Payment); err != nil {
		s.log.Warn("Registration payment declined",
			zap.String("registration_id", registrationID),
			zap.String("method", req.Method),
		)
		return nil, err
	}

	// 4. Confirm. WHERE status='pending' di query menjaga race dengan sweep:
	// kalau sweep keburu expire, update ini kena 0 rows (ErrNotPending).
	// Error infrastruktur bukan hold expired dan harus naik apa adanya.
	now := time.Now()
	if err := s.repo.Registration.MarkConfirmed(ctx, registration.ID, now); err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			s.log.Warn("Registration no longer pending at confirm",
				zap.String("registration_id", registrationID),
			)
			return nil, ErrHoldExpired
		}
		s.log.Error("Failed to confirm registration",
			zap.Error(err),
			zap.String("registration_id", registrationID),
		)
		return nil, fmt.Errorf("confirm registration %s: %w", registrationID, err)
	}

	registration.Status = entity.RegistrationStatusConfirmed
	registration.ConfirmedAt = &now
	registration.HoldExpiresAt = nil

	if err := s.persistSeatAssignments(ctx, registration); err != nil {
		return nil, err
	}

	s.log.Info("Registration confirmed",
		zap.String("registration_id", registrationID),
		zap.String("event_id", registration.EventID.String()),
		zap.Ints("seats", registration.AssignedSeats),
	)

	s.sendConfirmationAsync(registration, event.Title)

	resp := response.RegistrationToResponse(registration, event.Title)
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *eventService) ListRegistrations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RegistrationResponse], error) {
	registrations, err := s.repo.Registration.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list registrations", zap.Error(err))
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	total, err := s.repo.Registration.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count registrations", zap.Error(err))
		return nil, fmt.Errorf("count registrations: %w", err)
	}

	// Cache judul event supaya tidak query berulang per baris
	titles := make(map[uuid.UUID]string)
	result := make([]response.RegistrationResponse, len(registrations))
	for i, registration := range registrations {
		title, ok := titles[registration.EventID]
		if !ok {
			event, _ := s.repo.Event.FindByID(ctx, registration.EventID)
			if event != nil {
				title = event.Title
			}
			titles[registration.EventID] = title
		}
		result[i] = response.RegistrationToResponse(registration, title)
	}

	return response.NewPaginatedResponse(result, req.Page, req.PerPage, total), nil
}

// ==================== HOLD EXPIRY ====================

// ReleaseExpiredHolds mengembalikan kursi dari registrasi pending yang
// hold-nya sudah lewat, plus baris expired yang release-nya gagal di sweep
// sebelumnya (seats_released masih FALSE). Return jumlah yang di-release.
func (s *eventService) ReleaseExpiredHolds(ctx context.Context) (int, error) {
	candidates, err := s.repo.Registration.FindReleasable(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("find releasable holds: %w", err)
	}

	released := 0
	for _, registration := range candidates {
		// MarkExpired dulu; WHERE status='pending' menjaga race dengan
		// confirm yang masuk bersamaan - yang kalah tidak menyentuh pool.
		// Baris yang sudah expired (sisa sweep sebelumnya) langsung lanjut.
		if registration.Status == entity.RegistrationStatusPending {
			if err := s.repo.Registration.MarkExpired(ctx, registration.ID); err != nil {
				if errors.Is(err, repository.ErrNotPending) {
					s.log.Warn("Skipping hold release, registration no longer pending",
						zap.String("registration_id", registration.RegistrationID),
					)
				} else {
					s.log.Error("Failed to expire registration",
						zap.Error(err),
						zap.String("registration_id", registration.RegistrationID),
					)
				}
				continue
			}
		}

		// Release gagal bukan kursi hilang: baris tetap expired dengan
		// seats_released FALSE dan muncul lagi di sweep berikutnya.
		if err := s.allocator.Release(ctx, registration.EventID, registration.AssignedSeats); err != nil {
			s.log.Error("Failed to release expired hold seats, will retry next sweep",
				zap.Error(err),
				zap.String("registration_id", registration.RegistrationID),
				zap.Ints("seats", registration.AssignedSeats),
			)
			continue
		}

		if err := s.repo.Registration.MarkSeatsReleased(ctx, registration.ID); err != nil {
			// Release idempotent terhadap pool state yang sama, jadi
			// pengulangan di sweep berikutnya aman.
			s.log.Error("Failed to mark seats released",
				zap.Error(err),
				zap.String("registration_id", registration.RegistrationID),
			)
			continue
		}

		released++
		s.log.Info("Expired hold released",
			zap.String("registration_id", registration.RegistrationID),
			zap.Ints("seats", registration.AssignedSeats),
		)
	}

	return released, nil
}

// StartHoldSweeper menjalankan sweep periodik sampai ctx selesai
func (s *eventService) StartHoldSweeper(ctx context.Context) {
	sweepSeconds := s.config.Hold.SweepSeconds
	if sweepSeconds <= 0 {
		sweepSeconds = 60
	}

	ticker := time.NewTicker(time.Duration(sweepSeconds) * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ReleaseExpiredHolds(ctx); err != nil {
					s.log.Error("Hold sweep failed", zap.Error(err))
				}
			}
		}
	}()
}

// ==================== HELPER METHODS ====================

func (s *eventService) persistSeatAssignments(ctx context.Context, registration *entity.Registration) error {
	now := time.Now()
	assignments := make([]*entity.SeatAssignment, len(registration.AssignedSeats))
	for i, seat := range registration.AssignedSeats {
		assignments[i] = &entity.SeatAssignment{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			EventID:        registration.EventID,
			SeatNumber:     seat,
			RegistrationID: registration.ID,
		}
	}

	if err := s.repo.SeatAssignment.CreateBatch(ctx, assignments); err != nil {
		if errors.Is(err, repository.ErrSeatConflict) {
			// Unique constraint kena berarti ada race yang lolos optimistic
			// lock. Seharusnya tidak terjadi; log keras supaya keliatan.
			s.log.Error("Seat assignment conflict past optimistic lock",
				zap.String("registration_id", registration.RegistrationID),
				zap.Ints("seats", registration.AssignedSeats),
			)
		}
		return fmt.Errorf("persist seat assignments for %s: %w", registration.RegistrationID, err)
	}

	return nil
}

func (s *eventService) sendConfirmationAsync(registration *entity.Registration, eventTitle string) {
	go s.mail.SendRegistrationConfirmation(
		registration.Email,
		registration.ParticipantName,
		eventTitle,
		registration.RegistrationID,
		registration.AssignedSeats,
	)
}
