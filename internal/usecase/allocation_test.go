package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"arena-hub/internal/data/entity"
	"arena-hub/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakePoolRepo meniru seat_pools dengan semantik CAS yang sama dengan
// implementasi pgx: write hanya sukses kalau expectedVersion cocok.
// forceConflicts menyuntik kekalahan CAS, findErr menyuntik read failure.
type fakePoolRepo struct {
	mu             sync.Mutex
	pool           entity.SeatPool
	forceConflicts int
	// seperti forceConflicts tapi hanya untuk write yang mengurangi
	// taken count, supaya reserve bisa lolos sementara release digagalkan
	releaseConflicts int
	casAttempts      int
	findErr          error
}

func newFakePoolRepo(eventID uuid.UUID) *fakePoolRepo {
	return &fakePoolRepo{
		pool: entity.SeatPool{EventID: eventID},
	}
}

func (f *fakePoolRepo) FindByEventID(ctx context.Context, eventID uuid.UUID) (*entity.SeatPool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findErr != nil {
		return nil, f.findErr
	}
	if eventID != f.pool.EventID {
		return nil, nil
	}

	snapshot := f.pool
	snapshot.AssignedSeats = append([]int(nil), f.pool.AssignedSeats...)
	return &snapshot, nil
}

func (f *fakePoolRepo) Create(ctx context.Context, pool *entity.SeatPool) error {
	return nil
}

func (f *fakePoolRepo) UpdateCAS(ctx context.Context, eventID uuid.UUID, assignedSeats []int, takenCount int, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.casAttempts++

	if f.forceConflicts > 0 {
		f.forceConflicts--
		return repository.ErrVersionConflict
	}
	if f.releaseConflicts > 0 && takenCount < f.pool.TakenCount {
		f.releaseConflicts--
		return repository.ErrVersionConflict
	}

	if expectedVersion != f.pool.Version {
		return repository.ErrVersionConflict
	}

	f.pool.AssignedSeats = append([]int(nil), assignedSeats...)
	f.pool.TakenCount = takenCount
	f.pool.Version++
	return nil
}

func TestReserveAssignsDistinctSeatsInRange(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	allocator := newSeatAllocator(repo, zap.NewNop())

	seats, err := allocator.Reserve(context.Background(), eventID, 50, 5)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}
	if len(seats) != 5 {
		t.Fatalf("got %d seats, want 5", len(seats))
	}

	seen := make(map[int]bool)
	for _, s := range seats {
		if s < 1 || s > 50 {
			t.Errorf("seat %d out of range [1,50]", s)
		}
		if seen[s] {
			t.Errorf("seat %d assigned twice", s)
		}
		seen[s] = true
	}
}

func TestReserveSequentialAllocationsAreDisjoint(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	allocator := newSeatAllocator(repo, zap.NewNop())

	seen := make(map[int]bool)
	for i := 0; i < 10; i++ {
		seats, err := allocator.Reserve(context.Background(), eventID, 50, 5)
		if err != nil {
			t.Fatalf("Reserve %d: %v", i, err)
		}
		for _, s := range seats {
			if seen[s] {
				t.Fatalf("seat %d handed out twice", s)
			}
			seen[s] = true
		}
	}

	if len(seen) != 50 {
		t.Fatalf("expected all 50 seats assigned, got %d", len(seen))
	}
}

func TestReserveAllOrNothingOnShortfall(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	allocator := newSeatAllocator(repo, zap.NewNop())

	if _, err := allocator.Reserve(context.Background(), eventID, 50, 47); err != nil {
		t.Fatalf("Reserve 47: %v", err)
	}

	// 3 kursi sisa, minta 4: harus gagal tanpa mengubah pool
	before, _ := repo.FindByEventID(context.Background(), eventID)
	_, err := allocator.Reserve(context.Background(), eventID, 50, 4)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}

	after, _ := repo.FindByEventID(context.Background(), eventID)
	if after.TakenCount != before.TakenCount || after.Version != before.Version {
		t.Fatalf("failed reservation mutated the pool: before=%+v after=%+v", before, after)
	}

	// 3 kursi persis masih bisa
	seats, err := allocator.Reserve(context.Background(), eventID, 50, 3)
	if err != nil {
		t.Fatalf("Reserve remaining 3: %v", err)
	}
	if len(seats) != 3 {
		t.Fatalf("got %d seats, want 3", len(seats))
	}
}

func TestReserveRetriesOnVersionConflict(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	repo.forceConflicts = 2
	allocator := newSeatAllocator(repo, zap.NewNop())

	seats, err := allocator.Reserve(context.Background(), eventID, 50, 2)
	if err != nil {
		t.Fatalf("Reserve should survive 2 conflicts: %v", err)
	}
	if len(seats) != 2 {
		t.Fatalf("got %d seats, want 2", len(seats))
	}
	if repo.casAttempts != 3 {
		t.Errorf("cas attempts = %d, want 3", repo.casAttempts)
	}
}

func TestReserveGivesUpUnderSustainedContention(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	repo.forceConflicts = maxAllocationAttempts + 1
	allocator := newSeatAllocator(repo, zap.NewNop())

	_, err := allocator.Reserve(context.Background(), eventID, 50, 1)
	if !errors.Is(err, ErrAllocationContention) {
		t.Fatalf("err = %v, want ErrAllocationContention", err)
	}
}

func TestConcurrentReservesNeverOverlap(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	allocator := newSeatAllocator(repo, zap.NewNop())

	const workers = 10
	results := make(chan []int, workers)
	errCh := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seats, err := allocator.Reserve(context.Background(), eventID, 50, 5)
			if err != nil {
				errCh <- err
				return
			}
			results <- seats
		}()
	}
	wg.Wait()
	close(results)
	close(errCh)

	// Dengan retry, contention antar 10 worker boleh bikin sebagian gagal
	// transient, tapi yang sukses tidak boleh saling tumpang tindih
	seen := make(map[int]bool)
	succeeded := 0
	for seats := range results {
		succeeded++
		for _, s := range seats {
			if seen[s] {
				t.Fatalf("seat %d handed to two workers", s)
			}
			seen[s] = true
		}
	}

	for err := range errCh {
		if !errors.Is(err, ErrAllocationContention) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	pool, _ := repo.FindByEventID(context.Background(), eventID)
	if pool.TakenCount != succeeded*5 {
		t.Fatalf("taken count %d does not match %d successful reservations", pool.TakenCount, succeeded)
	}
}

func TestReleaseReturnsSeatsToPool(t *testing.T) {
	eventID := uuid.New()
	repo := newFakePoolRepo(eventID)
	allocator := newSeatAllocator(repo, zap.NewNop())

	seats, err := allocator.Reserve(context.Background(), eventID, 50, 10)
	if err != nil {
		t.Fatalf("Reserve: %v", err)
	}

	if err := allocator.Release(context.Background(), eventID, seats); err != nil {
		t.Fatalf("Release: %v", err)
	}

	pool, _ := repo.FindByEventID(context.Background(), eventID)
	if pool.TakenCount != 0 {
		t.Fatalf("taken count = %d after release, want 0", pool.TakenCount)
	}
	if len(pool.AssignedSeats) != 0 {
		t.Fatalf("assigned seats not empty after release: %v", pool.AssignedSeats)
	}

	// Release kedua kali no-op, bukan error
	if err := allocator.Release(context.Background(), eventID, seats); err != nil {
		t.Fatalf("second Release: %v", err)
	}
	pool, _ = repo.FindByEventID(context.Background(), eventID)
	if pool.TakenCount != 0 {
		t.Fatalf("double release corrupted taken count: %d", pool.TakenCount)
	}
}
