// Package repository defines interfaces for booking storage
package repository

import (
	"context"
	"errors"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// ErrUnavailable is returned when the storage backend cannot be reached
var ErrUnavailable = errors.New("storage unavailable")

// Repository is the append-only booking collection.
// Implementations own identifier generation and keep insertion order.
type Repository interface {
	// AppendBooking assigns a fresh unique id to the request and stores it
	AppendBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error)
	// ListBookings returns every booking in insertion order
	ListBookings(ctx context.Context) ([]models.Booking, error)
	CountBookings(ctx context.Context) (int, error)
	// Ping reports whether the backend is usable
	Ping(ctx context.Context) error
	Close() error
}
