package kafka

import (
	"time"

	"github.com/Domenick1991/flightdesk/internal/domain"
)

const EventBookingConfirmed = "booking_confirmed"

type BookingEvent struct {
	Type            string    `json:"type"`
	BookingID       string    `json:"booking_id"`
	UserID          string    `json:"user_id"`
	FlightID        string    `json:"flight_id"`
	FlightNumber    string    `json:"flight_number"`
	Passengers      int       `json:"passengers"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	Recipients      []string  `json:"recipients"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBookingEvent describes booking b on flight f. Recipients are the
// distinct non-empty passenger emails in passenger order.
func NewBookingEvent(eventType string, b *domain.Booking, f *domain.Flight) BookingEvent {
	recipients := make([]string, 0, len(b.PassengerDetails))
	seen := make(map[string]struct{}, len(b.PassengerDetails))
	for _, p := range b.PassengerDetails {
		if p.Email == "" {
			continue
		}
		if _, ok := seen[p.Email]; ok {
			continue
		}
		seen[p.Email] = struct{}{}
		recipients = append(recipients, p.Email)
	}

	event := BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		UserID:          b.UserID,
		FlightID:        b.FlightID,
		Passengers:      b.Passengers,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		Recipients:      recipients,
		CreatedAt:       b.CreatedAt,
	}
	if f != nil {
		event.FlightNumber = f.FlightNumber
	}
	return event
}
