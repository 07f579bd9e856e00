package web

import (
	"context"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// BookingStorer defines the contract for the booking store used by web handlers
type BookingStorer interface {
	Add(ctx context.Context, req models.BookingRequest) (models.Booking, error)
	RoomSchedules(ctx context.Context) ([]models.RoomSchedule, error)
	Catalog() *models.RoomCatalog
}
