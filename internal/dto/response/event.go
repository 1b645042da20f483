package response

import (
	"time"

	"arena-hub/internal/data/entity"
)

type EventResponse struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	EventDate         string `json:"event_date"`
	Location          string `json:"location"`
	Capacity          int    `json:"capacity"`
	SeatsRemaining    int    `json:"seats_remaining"`
	FeePerParticipant int64  `json:"fee_per_participant"`
	RegistrationOpen  bool   `json:"registration_open"`
}

type RegistrationResponse struct {
	RegistrationID   string                    `json:"registration_id"`
	EventID          string                    `json:"event_id"`
	EventTitle       string                    `json:"event_title"`
	ParticipantName  string                    `json:"participant_name"`
	ParticipantCount int                       `json:"participant_count"`
	AssignedSeats    []int                     `json:"assigned_seats"`
	Amount           int64                     `json:"amount"`
	Currency         string                    `json:"currency"`
	Status           entity.RegistrationStatus `json:"status"`
	HoldExpiresAt    *time.Time                `json:"hold_expires_at,omitempty"`
	ConfirmedAt      *time.Time                `json:"confirmed_at,omitempty"`
	Ticket           *TicketPayload            `json:"ticket,omitempty"`
}

// TicketPayload adalah isi QR/receipt yang dikirim setelah registrasi confirmed.
type TicketPayload struct {
	RegistrationID   string `json:"registrationId"`
	ParticipantName  string `json:"participantName"`
	EventTitle       string `json:"eventTitle"`
	ParticipantCount int    `json:"participantCount"`
	Timestamp        string `json:"timestamp"`
	AssignedSeats    []int  `json:"assignedSeats"`
}

type AvailabilityResponse struct {
	EventID        string `json:"event_id"`
	Capacity       int    `json:"capacity"`
	SeatsTaken     int    `json:"seats_taken"`
	SeatsRemaining int    `json:"seats_remaining"`
}

func EventToResponse(event *entity.Event, seatsTaken int) EventResponse {
	remaining := event.Capacity - seatsTaken
	if remaining < 0 {
		remaining = 0
	}
	return EventResponse{
		ID:                event.ID.String(),
		Title:             event.Title,
		EventDate:         event.EventDate,
		Location:          event.Location,
		Capacity:          event.Capacity,
		SeatsRemaining:    remaining,
		FeePerParticipant: event.FeePerParticipant,
		RegistrationOpen:  event.RegistrationOpen,
	}
}

func RegistrationToResponse(reg *entity.Registration, eventTitle string) RegistrationResponse {
	resp := RegistrationResponse{
		RegistrationID:   reg.RegistrationID,
		EventID:          reg.EventID.String(),
		EventTitle:       eventTitle,
		ParticipantName:  reg.ParticipantName,
		ParticipantCount: reg.ParticipantCount,
		AssignedSeats:    reg.AssignedSeats,
		Amount:           reg.Amount,
		Currency:         "INR",
		Status:           reg.Status,
		HoldExpiresAt:    reg.HoldExpiresAt,
		ConfirmedAt:      reg.ConfirmedAt,
	}
	if reg.Status == entity.RegistrationStatusConfirmed {
		ts := reg.CreatedAt
		if reg.ConfirmedAt != nil {
			ts = *reg.ConfirmedAt
		}
		ticket := TicketPayload{
			RegistrationID:   reg.RegistrationID,
			ParticipantName:  reg.ParticipantName,
			EventTitle:       eventTitle,
			ParticipantCount: reg.ParticipantCount,
			Timestamp:        ts.Format(time.RFC3339),
			AssignedSeats:    reg.AssignedSeats,
		}
		resp.Ticket = &ticket
	}
	return resp
}
