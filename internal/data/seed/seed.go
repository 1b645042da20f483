package seed

import (
	"context"
	"fmt"
	"time"

	"arena-hub/internal/data/entity"
	"arena-hub/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kapasitas kursi default per event
const eventCapacity = 50

// Events adalah katalog event awal. Insert pakai ON CONFLICT DO NOTHING,
// jadi seed aman dijalankan berulang.
func Events() []*entity.Event {
	now := time.Now()
	base := func() entity.BaseNoDelete {
		return entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return []*entity.Event{
		{
			BaseNoDelete:      base(),
			Title:             "Chennai Corporate Cricket League",
			EventDate:         "June 15-20, 2025",
			Location:          "Chennai Central Cricket Ground",
			Capacity:          eventCapacity,
			FeePerParticipant: 100,
			RegistrationOpen:  true,
		},
		{
			BaseNoDelete:      base(),
			Title:             "Badminton Masterclass",
			EventDate:         "July 8, 2025",
			Location:          "Jubilee Hills Badminton Arena, Hyderabad",
			Capacity:          eventCapacity,
			FeePerParticipant: 100,
			RegistrationOpen:  true,
		},
		{
			BaseNoDelete:      base(),
			Title:             "Weekend Football Tournament",
			EventDate:         "May 20-21, 2025",
			Location:          "Chennai Central Football Turf",
			Capacity:          eventCapacity,
			FeePerParticipant: 100,
			RegistrationOpen:  true,
		},
		{
			BaseNoDelete:      base(),
			Title:             "Tennis Open Day",
			EventDate:         "June 5, 2025",
			Location:          "Hyderabad Tennis Complex",
			Capacity:          eventCapacity,
			FeePerParticipant: 100,
			RegistrationOpen:  true,
		},
		{
			BaseNoDelete:      base(),
			Title:             "Basketball Training Camp",
			EventDate:         "July 15-18, 2025",
			Location:          "Chennai Indoor Basketball Court",
			Capacity:          eventCapacity,
			FeePerParticipant: 100,
			RegistrationOpen:  false,
		},
		{
			BaseNoDelete:      base(),
			Title:             "Charity Run for Education",
			EventDate:         "August 12, 2025",
			Location:          "Hyderabad City Park",
			Capacity:          eventCapacity,
			FeePerParticipant: 0,
			RegistrationOpen:  true,
		},
	}
}

// Run insert katalog event plus seat pool kosong per event. Event yang sudah
// ada di-skip (ON CONFLICT title), pool juga (ON CONFLICT event_id).
func Run(ctx context.Context, repo *repository.Repository, log *zap.Logger) error {
	for _, event := range Events() {
		if err := repo.Event.Create(ctx, event); err != nil {
			return fmt.Errorf("seed event %q: %w", event.Title, err)
		}

		// Create skip duplikat, jadi cari row yang benar-benar tersimpan
		stored, err := repo.Event.FindByTitle(ctx, event.Title)
		if err != nil {
			return fmt.Errorf("find seeded event %q: %w", event.Title, err)
		}
		if stored == nil {
			return fmt.Errorf("seeded event %q not found after insert", event.Title)
		}

		pool := &entity.SeatPool{
			EventID:       stored.ID,
			AssignedSeats: nil,
			TakenCount:    0,
			Version:       0,
		}
		if err := repo.SeatPool.Create(ctx, pool); err != nil {
			return fmt.Errorf("seed seat pool for %q: %w", event.Title, err)
		}

		log.Info("Seeded event",
			zap.String("title", stored.Title),
			zap.String("event_id", stored.ID.String()),
			zap.Bool("registration_open", stored.RegistrationOpen),
		)
	}

	return nil
}
