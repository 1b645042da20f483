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

// SeatPoolRepository adalah persistence untuk seat pool per event.
// Semua write lewat UpdateCAS: compare-and-swap terhadap version kolom.
// Write yang kalah race mengembalikan ErrVersionConflict, bukan silent
// lost-update seperti implementasi lama.
type SeatPoolRepository interface {
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.SeatPool, error)
	Create(ctx context.Context, pool *entity.SeatPool) error
	UpdateCAS(ctx context.Context, eventID uuid.UUID, assignedSeats []int, takenCount int, expectedVersion int64) error
}

type seatPoolRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatPoolRepository(db database.PgxIface, log *zap.Logger) SeatPoolRepository {
	return &seatPoolRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_pool")),
	}
}

func toInt32Slice(seats []int) []int32 {
	result := make([]int32, len(seats))
	for i, s := range seats {
		result[i] = int32(s)
	}
	return result
}

func toIntSlice(seats []int32) []int {
	result := make([]int, len(seats))
	for i, s := range seats {
		result[i] = int(s)
	}
	return result
}

func (r *seatPoolRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.SeatPool, error) {
	query := `
		SELECT event_id, assigned_seats, taken_count, version, updated_at
		FROM seat_pools
		WHERE event_id = $1
	`

	var pool entity.SeatPool
	var seats []int32
	err := r.db.QueryRow(ctx, query, eventID).Scan(
		&pool.EventID,
		&seats,
		&pool.TakenCount,
		&pool.Version,
		&pool.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat pool",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find seat pool for event %s: %w", eventID.String(), err)
	}

	pool.AssignedSeats = toIntSlice(seats)
	return &pool, nil
}

func (r *seatPoolRepository) Create(ctx context.Context, pool *entity.SeatPool) error {
	query := `
		INSERT INTO seat_pools (event_id, assigned_seats, taken_count, version, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query,
		pool.EventID,
		toInt32Slice(pool.AssignedSeats),
		pool.TakenCount,
		pool.Version,
		time.Now(),
	)

	if err != nil {
		r.log.Error("Failed to create seat pool",
			zap.Error(err),
			zap.String("event_id", pool.EventID.String()),
		)
		return fmt.Errorf("create seat pool for event %s: %w", pool.EventID.String(), err)
	}

	return nil
}

// UpdateCAS menulis pool hanya jika version belum bergeser sejak dibaca.
// RowsAffected 0 berarti writer lain menang - caller re-read lalu retry.
func (r *seatPoolRepository) UpdateCAS(ctx context.Context, eventID uuid.UUID, assignedSeats []int, takenCount int, expectedVersion int64) error {
	query := `
		UPDATE seat_pools
		SET assigned_seats = $2, taken_count = $3, version = version + 1, updated_at = NOW()
		WHERE event_id = $1 AND version = $4
	`

	result, err := r.db.Exec(ctx, query, eventID, toInt32Slice(assignedSeats), takenCount, expectedVersion)
	if err != nil {
		r.log.Error("Failed to update seat pool",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return fmt.Errorf("update seat pool for event %s: %w", eventID.String(), err)
	}

	if result.RowsAffected() == 0 {
		r.log.Warn("Seat pool version conflict",
			zap.String("event_id", eventID.String()),
			zap.Int64("expected_version", expectedVersion),
		)
		return ErrVersionConflict
	}

	return nil
}
