package api

import (
	"context"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// BookingStorer defines the booking store operations needed by API handlers
type BookingStorer interface {
	Add(ctx context.Context, req models.BookingRequest) (models.Booking, error)
	SortedView(ctx context.Context) ([]models.Booking, error)
	ViewByRoom(ctx context.Context, room string) ([]models.Booking, error)
	Catalog() *models.RoomCatalog
}

// ReadinessChecker reports whether the service can take traffic
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}
