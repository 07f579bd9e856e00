// Package memory provides an in-memory implementation of the repository interface
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// Repository implements the repository interface with in-memory storage.
// Bookings live for the lifetime of the process.
type Repository struct {
	bookings []models.Booking
	lastID   uint64
	mu       sync.RWMutex
}

// NewRepository creates a new in-memory repository
func NewRepository() *Repository {
	return &Repository{
		bookings: make([]models.Booking, 0),
	}
}

// AppendBooking stores the request under the next counter value
func (r *Repository) AppendBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	booking := req.Booking(strconv.FormatUint(r.lastID, 10))
	r.bookings = append(r.bookings, booking)

	return booking, nil
}

// ListBookings returns a copy of all bookings in insertion order
func (r *Repository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out, nil
}

// CountBookings returns the number of stored bookings
func (r *Repository) CountBookings(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.bookings), nil
}

// Ping always succeeds for the in-memory store
func (r *Repository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op; the data is dropped with the process
func (r *Repository) Close() error {
	return nil
}
