package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
	"github.com/rsukotabanjar/jadwalrapat/internal/repository"
	"github.com/rsukotabanjar/jadwalrapat/internal/utils"
)

// BookingUpdateCallback is a function type for booking update callbacks
type BookingUpdateCallback func(models.Booking)

// BookingStore owns the booking collection and derives the room views from it.
// Callers validate input before calling Add.
type BookingStore struct {
	repo            repository.Repository
	catalog         *models.RoomCatalog
	callbacksMu     sync.RWMutex
	updateCallbacks []BookingUpdateCallback
}

// NewBookingStore creates a new BookingStore over the given repository and room catalog
func NewBookingStore(repo repository.Repository, catalog *models.RoomCatalog) *BookingStore {
	return &BookingStore{
		repo:            repo,
		catalog:         catalog,
		updateCallbacks: make([]BookingUpdateCallback, 0),
	}
}

// Catalog returns the room catalog of the store
func (s *BookingStore) Catalog() *models.RoomCatalog {
	return s.catalog
}

// RegisterUpdateCallback registers a callback function to be called after every Add
func (s *BookingStore) RegisterUpdateCallback(callback BookingUpdateCallback) {
	s.callbacksMu.Lock()
	defer s.callbacksMu.Unlock()

	s.updateCallbacks = append(s.updateCallbacks, callback)
}

// notifyUpdate calls all registered callbacks with the new booking
func (s *BookingStore) notifyUpdate(booking models.Booking) {
	s.callbacksMu.RLock()
	callbacks := slices.Clone(s.updateCallbacks)
	s.callbacksMu.RUnlock()

	for _, callback := range callbacks {
		callback(booking)
	}
}

// Add appends a new booking with a freshly generated id and notifies listeners
func (s *BookingStore) Add(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	booking, err := s.repo.AppendBooking(ctx, req)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to add booking: %w", err)
	}

	zap.L().Info("booking added",
		zap.String("id", booking.ID),
		utils.SafeString("room", booking.Room),
		utils.SafeString("title", booking.Title),
		zap.String("date", booking.Date),
		zap.String("start_time", booking.StartTime),
		zap.String("end_time", booking.EndTime),
	)

	s.notifyUpdate(booking)
	return booking, nil
}

// SortedView returns all bookings ordered by date and start time.
// Bookings starting at the same instant keep their insertion order.
func (s *BookingStore) SortedView(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.repo.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	slices.SortStableFunc(bookings, compareStart)
	return bookings, nil
}

// ViewByRoom returns the chronologically ordered bookings of a single room.
// Rooms without bookings, including rooms outside the catalog, yield an empty slice.
func (s *BookingStore) ViewByRoom(ctx context.Context, room string) ([]models.Booking, error) {
	sorted, err := s.SortedView(ctx)
	if err != nil {
		return nil, err
	}
	return filterByRoom(sorted, room), nil
}

// RoomSchedules returns one schedule per catalog room, in catalog order,
// all derived from the same sorted snapshot
func (s *BookingStore) RoomSchedules(ctx context.Context) ([]models.RoomSchedule, error) {
	sorted, err := s.SortedView(ctx)
	if err != nil {
		return nil, err
	}

	rooms := s.catalog.Names()
	schedules := make([]models.RoomSchedule, 0, len(rooms))
	for _, room := range rooms {
		schedules = append(schedules, models.RoomSchedule{
			Room:     room,
			Bookings: filterByRoom(sorted, room),
		})
	}
	return schedules, nil
}

// Count returns the number of bookings in the store
func (s *BookingStore) Count(ctx context.Context) (int, error) {
	n, err := s.repo.CountBookings(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

// Ready reports whether the underlying storage is reachable
func (s *BookingStore) Ready(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
	}
	return nil
}

// Seed appends the given requests when the store is still empty.
// It returns the number of bookings added.
func (s *BookingStore) Seed(ctx context.Context, requests []models.BookingRequest) (int, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	for i, req := range requests {
		if _, err := s.repo.AppendBooking(ctx, req); err != nil {
			return i, fmt.Errorf("failed to seed booking: %w", err)
		}
	}
	return len(requests), nil
}

func compareStart(a, b models.Booking) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

func filterByRoom(bookings []models.Booking, room string) []models.Booking {
	out := make([]models.Booking, 0)
	for _, b := range bookings {
		if b.Room == room {
			out = append(out, b)
		}
	}
	return out
}
