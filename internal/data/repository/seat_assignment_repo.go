package repository

import (
	"context"
	"errors"
	"fmt"

	"arena-hub/internal/data/entity"
	"arena-hub/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type SeatAssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.SeatAssignment) error
	CreateBatch(ctx context.Context, assignments []*entity.SeatAssignment) error
}

type seatAssignmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatAssignmentRepository(db database.PgxIface, log *zap.Logger) SeatAssignmentRepository {
	return &seatAssignmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_assignment")),
	}
}

const uniqueViolation = "23505"

func (r *seatAssignmentRepository) Create(ctx context.Context, assignment *entity.SeatAssignment) error {
	query := `
		INSERT INTO seat_assignments (id, event_id, seat_number, registration_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		assignment.ID,
		assignment.EventID,
		assignment.SeatNumber,
		assignment.RegistrationID,
		assignment.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.log.Warn("Seat already assigned",
				zap.String("event_id", assignment.EventID.String()),
				zap.Int("seat_number", assignment.SeatNumber),
			)
			return ErrSeatConflict
		}

		r.log.Error("Failed to create seat assignment",
			zap.Error(err),
			zap.String("event_id", assignment.EventID.String()),
			zap.Int("seat_number", assignment.SeatNumber),
		)
		return fmt.Errorf("create seat assignment event %s seat %d: %w",
			assignment.EventID.String(), assignment.SeatNumber, err)
	}

	return nil
}

func (r *seatAssignmentRepository) CreateBatch(ctx context.Context, assignments []*entity.SeatAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	for _, a := range assignments {
		if err := r.Create(ctx, a); err != nil {
			return err
		}
	}

	return nil
}
