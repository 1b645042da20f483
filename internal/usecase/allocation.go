package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"arena-hub/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Batas retry saat optimistic lock di seat pool kalah race. Dengan traffic
// normal satu-dua retry sudah cukup; lewat dari ini berarti contention berat
// dan lebih baik client yang mengulang.
const maxAllocationAttempts = 5

// seatAllocator membagikan kursi dari pool per event secara all-or-nothing.
// Setiap attempt: read pool, pilih random dari kursi yang masih kosong, lalu
// compare-and-swap terhadap version yang dibaca. Kalah CAS berarti writer lain
// sudah menulis duluan - re-read dan ulangi, sehingga dua registrasi paralel
// tidak pernah memegang kursi yang sama.
type seatAllocator struct {
	pools repository.SeatPoolRepository
	log   *zap.Logger
}

func newSeatAllocator(pools repository.SeatPoolRepository, log *zap.Logger) *seatAllocator {
	return &seatAllocator{
		pools: pools,
		log:   log.With(zap.String("component", "seat_allocator")),
	}
}

// Reserve mengambil count kursi acak dari pool event. Semua kursi diberikan
// sekaligus atau tidak sama sekali: kalau sisa kursi kurang dari count,
// ErrCapacityExceeded dan pool tidak berubah.
func (a *seatAllocator) Reserve(ctx context.Context, eventID uuid.UUID, capacity, count int) ([]int, error) {
	if count < 1 {
		return nil, fmt.Errorf("seat count must be positive, got %d", count)
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		pool, err := a.pools.FindByEventID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("read seat pool: %w", err)
		}
		if pool == nil {
			return nil, fmt.Errorf("seat pool missing for event %s", eventID.String())
		}

		free := pool.FreeSeats(capacity)
		if len(free) < count {
			a.log.Warn("Seat pool exhausted",
				zap.String("event_id", eventID.String()),
				zap.Int("requested", count),
				zap.Int("free", len(free)),
			)
			return nil, ErrCapacityExceeded
		}

		rand.Shuffle(len(free), func(i, j int) {
			free[i], free[j] = free[j], free[i]
		})
		picked := append([]int(nil), free[:count]...)
		sort.Ints(picked)

		assigned := append(append([]int(nil), pool.AssignedSeats...), picked...)
		sort.Ints(assigned)

		err = a.pools.UpdateCAS(ctx, eventID, assigned, pool.TakenCount+count, pool.Version)
		if err == nil {
			a.log.Info("Seats reserved",
				zap.String("event_id", eventID.String()),
				zap.Ints("seats", picked),
				zap.Int("attempt", attempt),
			)
			return picked, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, fmt.Errorf("write seat pool: %w", err)
		}

		// Kalah race, re-read dengan jeda kecil supaya tidak hammering
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt*10) * time.Millisecond):
		}
	}

	a.log.Warn("Seat allocation gave up after max attempts",
		zap.String("event_id", eventID.String()),
		zap.Int("requested", count),
	)
	return nil, ErrAllocationContention
}

// Release mengembalikan kursi ke pool, dipakai saat hold expired atau saat
// create registrasi gagal setelah kursi sudah terlanjur diambil. Kursi yang
// tidak ada di assigned set diabaikan, jadi aman dipanggil dua kali.
func (a *seatAllocator) Release(ctx context.Context, eventID uuid.UUID, seats []int) error {
	if len(seats) == 0 {
		return nil
	}

	releasing := make(map[int]bool, len(seats))
	for _, s := range seats {
		releasing[s] = true
	}

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		pool, err := a.pools.FindByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("read seat pool: %w", err)
		}
		if pool == nil {
			return fmt.Errorf("seat pool missing for event %s", eventID.String())
		}

		var kept []int
		released := 0
		for _, s := range pool.AssignedSeats {
			if releasing[s] {
				released++
				continue
			}
			kept = append(kept, s)
		}

		if released == 0 {
			return nil
		}

		err = a.pools.UpdateCAS(ctx, eventID, kept, pool.TakenCount-released, pool.Version)
		if err == nil {
			a.log.Info("Seats released",
				zap.String("event_id", eventID.String()),
				zap.Ints("seats", seats),
			)
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return fmt.Errorf("write seat pool: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*10) * time.Millisecond):
		}
	}

	return ErrAllocationContention
}
