package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// publishTimeout bounds how long a booking request may wait on the broker
const publishTimeout = 5 * time.Second

// Callback adapts a Publisher to the booking store's update callback.
// Failures are logged and never reach the user who made the booking.
func Callback(p Publisher) func(models.Booking) {
	return func(b models.Booking) {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := p.PublishBookingCreated(ctx, b); err != nil {
			zap.L().Warn("failed to publish booking event",
				zap.String("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}
}
