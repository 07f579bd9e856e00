// Package events publishes booking domain events to a message broker
package events

import (
	"context"
	"time"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// RoutingKeyBookingCreated is the routing key of BookingCreatedEvent messages
const RoutingKeyBookingCreated = "booking.created"

// BookingCreatedEvent is published after a booking has been added to the store.
// It carries the whole booking so consumers never need to query the service.
type BookingCreatedEvent struct {
	BookingID  string `json:"booking_id"`
	Room       string `json:"room"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	OccurredAt string `json:"occurred_at"`
}

// NewBookingCreatedEvent builds the event payload for a booking
func NewBookingCreatedEvent(b models.Booking, at time.Time) BookingCreatedEvent {
	return BookingCreatedEvent{
		BookingID:  b.ID,
		Room:       b.Room,
		Title:      b.Title,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}

// Publisher delivers booking events
type Publisher interface {
	PublishBookingCreated(ctx context.Context, b models.Booking) error
	Close() error
}

// Nop is the Publisher used when no broker is configured
type Nop struct{}

// PublishBookingCreated discards the event
func (Nop) PublishBookingCreated(ctx context.Context, b models.Booking) error { return nil }

// Close does nothing
func (Nop) Close() error { return nil }
