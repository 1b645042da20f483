package database

import (
	"context"
	"fmt"
)

// Migrate membuat schema jika belum ada. Idempotent, dijalankan saat startup.
func Migrate(ctx context.Context, db PgxIface) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			role VARCHAR(20) NOT NULL DEFAULT 'customer',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			deleted_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			token UUID NOT NULL UNIQUE,
			user_agent TEXT,
			ip_address VARCHAR(45),
			expires_at TIMESTAMPTZ NOT NULL,
			revoked_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			booking_ref VARCHAR(40) NOT NULL UNIQUE,
			user_id UUID NOT NULL REFERENCES users(id),
			venue VARCHAR(30) NOT NULL,
			activity VARCHAR(30) NOT NULL,
			tariff_mode VARCHAR(20) NOT NULL,
			party_size INT NOT NULL,
			duration_hours DOUBLE PRECISION NOT NULL,
			booking_date DATE NOT NULL,
			start_time VARCHAR(10) NOT NULL,
			contact_name VARCHAR(100) NOT NULL,
			contact_email VARCHAR(255) NOT NULL,
			contact_phone VARCHAR(20) NOT NULL,
			amount BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings (user_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY,
			booking_id UUID NOT NULL REFERENCES bookings(id),
			method VARCHAR(20) NOT NULL,
			amount BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			transaction_id VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title VARCHAR(120) NOT NULL UNIQUE,
			event_date VARCHAR(60) NOT NULL,
			location VARCHAR(120) NOT NULL,
			capacity INT NOT NULL,
			fee_per_participant BIGINT NOT NULL,
			registration_open BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS seat_pools (
			event_id UUID PRIMARY KEY REFERENCES events(id),
			assigned_seats INT[] NOT NULL DEFAULT '{}',
			taken_count INT NOT NULL DEFAULT 0,
			version BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS registrations (
			id UUID PRIMARY KEY,
			registration_id VARCHAR(30) NOT NULL UNIQUE,
			event_id UUID NOT NULL REFERENCES events(id),
			participant_name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			participant_count INT NOT NULL,
			assigned_seats INT[] NOT NULL,
			amount BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL,
			hold_expires_at TIMESTAMPTZ,
			confirmed_at TIMESTAMPTZ,
			seats_released BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_event_id ON registrations (event_id)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_hold_expiry
			ON registrations (hold_expires_at) WHERE status = 'pending'`,
		// Baris expired yang kursinya belum kembali ke pool, diulang oleh sweeper
		`CREATE INDEX IF NOT EXISTS idx_registrations_unreleased
			ON registrations (updated_at) WHERE status = 'expired' AND seats_released = FALSE`,
		// Unique constraint mencegah double-assignment seat untuk event yang sama.
		// Backstop kalau optimistic locking di seat_pools kecolongan race.
		`CREATE TABLE IF NOT EXISTS seat_assignments (
			id UUID PRIMARY KEY,
			event_id UUID NOT NULL REFERENCES events(id),
			seat_number INT NOT NULL,
			registration_id UUID NOT NULL REFERENCES registrations(id),
			created_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT unique_seat_per_event UNIQUE (event_id, seat_number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seat_assignments_registration
			ON seat_assignments (registration_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}

	return nil
}
