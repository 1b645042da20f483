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
	"arena-hub/internal/pricing"
	"arena-hub/pkg/mailer"
	"arena-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Katalog, public tanpa auth
	GetActivities(ctx context.Context) []response.ActivityResponse
	GetVenues(ctx context.Context) []response.VenueResponse
	Quote(ctx context.Context, req *request.QuoteRequest) (*pricing.Quote, error)

	// Booking flow (butuh auth)
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ProcessPayment(ctx context.Context, userID string, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByRef(ctx context.Context, userID, bookingRef string) (*response.BookingResponse, error)

	// Admin endpoints
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) error
}

type bookingService struct {
	repo   *repository.Repository // grouping semua booking-related repos
	config *utils.Config
	mail   *mailer.Mailer
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, config *utils.Config, mail *mailer.Mailer, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) GetActivities(ctx context.Context) []response.ActivityResponse {
	activities := pricing.Activities()
	result := make([]response.ActivityResponse, len(activities))
	for i, a := range activities {
		result[i] = response.ActivityToResponse(a)
	}
	return result
}

func (s *bookingService) GetVenues(ctx context.Context) []response.VenueResponse {
	venues := pricing.Venues()
	result := make([]response.VenueResponse, len(venues))
	for i, v := range venues {
		result[i] = response.VenueToResponse(v)
	}
	return result
}

// Quote menghitung harga live. Input yang belum lengkap (party size / duration
// nol) bukan error - balas zero quote supaya UI bisa render "Rp 0" sambil user
// masih mengetik. Unknown activity tetap error supaya handler bisa balas 404.
func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*pricing.Quote, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	quote, err := pricing.Compute(
		pricing.ActivityID(req.Activity),
		pricing.TariffMode(req.TariffMode),
		req.PartySize,
		req.Duration,
	)

	if errors.Is(err, pricing.ErrNoQuote) {
		return &quote, nil
	}
	if err != nil {
		return &quote, err
	}

	return &quote, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	// 2. Cek venue menawarkan activity ini
	activityID := pricing.ActivityID(req.Activity)
	venueID := pricing.VenueID(req.Venue)

	activity, ok := pricing.Lookup(activityID)
	if !ok {
		return nil, pricing.ErrUnknownActivity
	}
	if _, ok := pricing.LookupVenue(venueID); !ok {
		return nil, fmt.Errorf("venue %s not found", req.Venue)
	}
	if !pricing.VenueOffers(venueID, activityID) {
		return nil, ErrVenueNotOffering
	}

	// 3. Cek batas pemain untuk activity
	if req.PartySize < activity.MinPlayers || req.PartySize > activity.MaxPlayers {
		return nil, fmt.Errorf("validation failed: %s requires %d-%d players, got %d",
			activity.Name, activity.MinPlayers, activity.MaxPlayers, req.PartySize)
	}

	// 4. Booking date harus valid dan bukan masa lalu
	bookingDate, err := time.Parse("2006-01-02", req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("validation failed: invalid booking date %s", req.BookingDate)
	}
	if bookingDate.Before(time.Now().Truncate(24 * time.Hour)) {
		return nil, fmt.Errorf("validation failed: cannot book for past date")
	}

	// 5. Hitung harga. Amount disimpan di booking supaya payment nanti
	// dicocokkan terhadap angka quote saat submit, bukan quote ulang.
	quote, err := pricing.Compute(activityID, pricing.TariffMode(req.TariffMode), req.PartySize, req.Duration)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 6. Create booking entity
	now := time.Now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:    utils.GenerateBookingRef(),
		UserID:        userUUID,
		Venue:         req.Venue,
		Activity:      req.Activity,
		TariffMode:    req.TariffMode,
		PartySize:     req.PartySize,
		DurationHours: req.Duration,
		BookingDate:   bookingDate,
		StartTime:     req.StartTime,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Amount:        quote.Total,
		Status:        entity.BookingStatusPending,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("booking_ref", booking.BookingRef),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("user_id", userID),
		zap.String("activity", req.Activity),
		zap.Int64("amount", booking.Amount),
	)

	resp := response.BookingToResponse(booking, nil)
	return &resp, nil
}

func (s *bookingService) ProcessPayment(ctx context.Context, userID string, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error) {
	// 1. Validasi input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Process payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", req.BookingID, err)
	}

	// 2. Get booking
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.UserID != userUUID {
		return nil, ErrNotBookingOwner
	}

	if booking.Status != entity.BookingStatusPending {
		return nil, fmt.Errorf("booking status is %s, cannot process payment", booking.Status)
	}

	if req.Amount != booking.Amount {
		return nil, ErrAmountMismatch
	}

	// 3. Simulasi gateway
	now := time.Now()
	payment := &entity.Payment{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     bookingID,
		Method:        entity.PaymentMethod(req.Method),
		Amount:        req.Amount,
		Status:        entity.PaymentStatusPending,
		TransactionID: req.TransactionID,
	}

	if err := simulateGateway(ctx, s.config.Payment); err != nil {
		payment.Status = entity.PaymentStatusFailed
		if saveErr := s.repo.Payment.Create(ctx, payment); saveErr != nil {
			s.log.Error("Failed to record declined payment", zap.Error(saveErr))
		}
		s.log.Warn("Payment declined",
			zap.String("booking_id", req.BookingID),
			zap.String("method", req.Method),
		)
		return nil, err
	}

	payment.Status = entity.PaymentStatusCompleted

	// 4. Save payment dan confirm booking
	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		s.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, bookingID, entity.BookingStatusConfirmed); err != nil {
		s.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
		)
		// Continue anyway, payment sudah tercatat
	}

	s.log.Info("Payment processed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("booking_id", req.BookingID),
		zap.String("method", req.Method),
		zap.Int64("amount", req.Amount),
	)

	// 5. Kirim receipt async
	go func(to, name, ref, activity string, amount int64) {
		s.mail.SendBookingReceipt(to, name, ref, activity, amount)
	}(booking.ContactEmail, booking.ContactName, booking.BookingRef, booking.Activity, booking.Amount)

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		bookingResponses[i] = response.BookingToResponse(booking, s.paymentResponse(ctx, booking.ID))
	}

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

// GetBookingByRef mencari booking via reference di receipt. Hanya pemilik
// yang boleh lihat.
func (s *bookingService) GetBookingByRef(ctx context.Context, userID, bookingRef string) (*response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.repo.Booking.FindByRef(ctx, bookingRef)
	if err != nil {
		return nil, fmt.Errorf("find booking by ref: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.UserID != userUUID {
		return nil, ErrNotBookingOwner
	}

	resp := response.BookingToResponse(booking, s.paymentResponse(ctx, booking.ID))
	return &resp, nil
}

// ==================== ADMIN METHODS ====================

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	resp := response.BookingToResponse(booking, s.paymentResponse(ctx, booking.ID))
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) error {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	if booking.Status == entity.BookingStatusCancelled {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, id, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
	)

	return nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) paymentResponse(ctx context.Context, bookingID uuid.UUID) *response.PaymentResponse {
	payment, _ := s.repo.Payment.FindByBookingID(ctx, bookingID)
	if payment == nil {
		return nil
	}
	resp := response.PaymentToResponse(payment)
	return &resp
}
