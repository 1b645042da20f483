package repository

import (
	"context"
	"fmt"
	"time"

	"arena-hub/internal/data/entity"
	"arena-hub/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *entity.Registration) error
	FindByRegistrationID(ctx context.Context, registrationID string) (*entity.Registration, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Registration, error)
	Count(ctx context.Context) (int64, error)
	MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedAt time.Time) error
	MarkExpired(ctx context.Context, id uuid.UUID) error
	MarkSeatsReleased(ctx context.Context, id uuid.UUID) error

	// FindReleasable mengembalikan registrasi pending yang hold-nya sudah lewat,
	// plus baris expired yang kursinya belum kembali ke pool (release gagal di
	// sweep sebelumnya).
	FindReleasable(ctx context.Context, now time.Time) ([]*entity.Registration, error)
}

type registrationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRegistrationRepository(db database.PgxIface, log *zap.Logger) RegistrationRepository {
	return &registrationRepository{
		db:  db,
		log: log.With(zap.String("repository", "registration")),
	}
}

const registrationColumns = `id, registration_id, event_id, participant_name, email, phone,
	participant_count, assigned_seats, amount, status, hold_expires_at, confirmed_at,
	seats_released, created_at, updated_at`

func (r *registrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	query := `
		INSERT INTO registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		registration.ID,
		registration.RegistrationID,
		registration.EventID,
		registration.ParticipantName,
		registration.Email,
		registration.Phone,
		registration.ParticipantCount,
		toInt32Slice(registration.AssignedSeats),
		registration.Amount,
		registration.Status,
		registration.HoldExpiresAt,
		registration.ConfirmedAt,
		registration.SeatsReleased,
		registration.CreatedAt,
		registration.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create registration",
			zap.Error(err),
			zap.String("registration_id", registration.RegistrationID),
		)
		return fmt.Errorf("create registration %s: %w", registration.RegistrationID, err)
	}

	return nil
}

func scanRegistration(row pgx.Row) (*entity.Registration, error) {
	var registration entity.Registration
	var seats []int32
	err := row.Scan(
		&registration.ID,
		&registration.RegistrationID,
		&registration.EventID,
		&registration.ParticipantName,
		&registration.Email,
		&registration.Phone,
		&registration.ParticipantCount,
		&seats,
		&registration.Amount,
		&registration.Status,
		&registration.HoldExpiresAt,
		&registration.ConfirmedAt,
		&registration.SeatsReleased,
		&registration.CreatedAt,
		&registration.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	registration.AssignedSeats = toIntSlice(seats)
	return &registration, nil
}

func (r *registrationRepository) FindByRegistrationID(ctx context.Context, registrationID string) (*entity.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE registration_id = $1`

	registration, err := scanRegistration(r.db.QueryRow(ctx, query, registrationID))
	if err != nil {
		r.log.Error("Failed to find registration",
			zap.Error(err),
			zap.String("registration_id", registrationID),
		)
		return nil, fmt.Errorf("find registration %s: %w", registrationID, err)
	}

	return registration, nil
}

func (r *registrationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find registrations", zap.Error(err))
		return nil, fmt.Errorf("find registrations: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows, r.log)
}

func (r *registrationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count registrations", zap.Error(err))
		return 0, fmt.Errorf("count registrations: %w", err)
	}

	return count, nil
}

func (r *registrationRepository) MarkConfirmed(ctx context.Context, id uuid.UUID, confirmedAt time.Time) error {
	query := `
		UPDATE registrations
		SET status = 'confirmed', confirmed_at = $2, hold_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, confirmedAt)
	if err != nil {
		r.log.Error("Failed to confirm registration",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("confirm registration %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("confirm registration %s: %w", id.String(), ErrNotPending)
	}

	return nil
}

func (r *registrationRepository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE registrations
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to expire registration",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("expire registration %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("expire registration %s: %w", id.String(), ErrNotPending)
	}

	return nil
}

func (r *registrationRepository) MarkSeatsReleased(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE registrations
		SET seats_released = TRUE, updated_at = NOW()
		WHERE id = $1 AND status = 'expired' AND seats_released = FALSE
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark seats released",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("mark seats released %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("registration %s not expired or already released", id.String())
	}

	return nil
}

func (r *registrationRepository) FindReleasable(ctx context.Context, now time.Time) ([]*entity.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM registrations
		WHERE (status = 'pending' AND hold_expires_at IS NOT NULL AND hold_expires_at < $1)
		   OR (status = 'expired' AND seats_released = FALSE)
		ORDER BY updated_at
	`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		r.log.Error("Failed to find releasable registrations", zap.Error(err))
		return nil, fmt.Errorf("find releasable registrations: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows, r.log)
}

func collectRegistrations(rows pgx.Rows, log *zap.Logger) ([]*entity.Registration, error) {
	var registrations []*entity.Registration
	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			log.Error("Failed to scan registration row", zap.Error(err))
			return nil, fmt.Errorf("scan registration row: %w", err)
		}
		registrations = append(registrations, registration)
	}

	return registrations, nil
}
