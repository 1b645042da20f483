package entity

import (
	"time"

	"github.com/google/uuid"
)

// SeatPool adalah state kursi per event: set seat number [1..capacity] yang
// sudah assigned plus running count. Version dipakai untuk optimistic locking -
// setiap write harus compare-and-swap terhadap version yang dibaca, kalau
// version sudah bergeser berarti ada writer lain dan caller harus re-read.
type SeatPool struct {
	EventID       uuid.UUID `db:"event_id"`
	AssignedSeats []int     `db:"assigned_seats"`
	TakenCount    int       `db:"taken_count"`
	Version       int64     `db:"version"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Assigned cek apakah seat sudah terpakai
func (p *SeatPool) Assigned(seat int) bool {
	for _, s := range p.AssignedSeats {
		if s == seat {
			return true
		}
	}
	return false
}

// FreeSeats menghitung complement dari assigned set dalam [1, capacity]
func (p *SeatPool) FreeSeats(capacity int) []int {
	taken := make(map[int]bool, len(p.AssignedSeats))
	for _, s := range p.AssignedSeats {
		taken[s] = true
	}

	var free []int
	for n := 1; n <= capacity; n++ {
		if !taken[n] {
			free = append(free, n)
		}
	}
	return free
}
