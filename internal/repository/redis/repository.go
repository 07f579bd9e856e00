// Package redis provides a Redis/Valkey implementation of the repository interface
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/config"
	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// Repository implements the repository interface with Redis storage.
// Bookings are kept as JSON entries of a single list, ids come from INCR.
type Repository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRepository creates a new Redis repository
func NewRepository(cfg config.RedisConfig) (*Repository, error) {
	var client *redis.Client

	// Use URI if provided, otherwise build connection from individual parameters
	if cfg.URI != "" {
		opt, err := redis.ParseURL(cfg.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URI: %w", err)
		}

		// Use DB from config if not specified in the URI
		if opt.DB == 0 {
			opt.DB = cfg.DB
		}

		if opt.Password == "" && cfg.Password != "" {
			opt.Password = cfg.Password
		}

		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Repository{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.SessionTTL,
	}, nil
}

// Close closes the Redis connection
func (r *Repository) Close() error {
	return r.client.Close()
}

// bookingsKey returns the Redis key of the booking list
func (r *Repository) bookingsKey() string {
	return fmt.Sprintf("%sbookings", r.keyPrefix)
}

// sequenceKey returns the Redis key of the id counter
func (r *Repository) sequenceKey() string {
	return fmt.Sprintf("%sbookings:seq", r.keyPrefix)
}

// AppendBooking assigns the next sequence value and pushes the booking
func (r *Repository) AppendBooking(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	id, err := r.client.Incr(ctx, r.sequenceKey()).Result()
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to allocate booking id: %w", err)
	}

	booking := req.Booking(strconv.FormatInt(id, 10))

	data, err := json.Marshal(&booking)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to marshal booking: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.bookingsKey(), data)
		if r.ttl > 0 {
			pipe.Expire(ctx, r.bookingsKey(), r.ttl)
			pipe.Expire(ctx, r.sequenceKey(), r.ttl)
		}
		return nil
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to save booking: %w", err)
	}

	return booking, nil
}

// ListBookings returns all bookings in insertion order.
// Entries that cannot be decoded are logged and skipped.
func (r *Repository) ListBookings(ctx context.Context) ([]models.Booking, error) {
	values, err := r.client.LRange(ctx, r.bookingsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(values))
	for i, v := range values {
		var b models.Booking
		if err := json.Unmarshal([]byte(v), &b); err != nil {
			zap.L().Warn("skipping undecodable booking entry",
				zap.String("key", r.bookingsKey()),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		bookings = append(bookings, b)
	}

	return bookings, nil
}

// CountBookings returns the length of the booking list
func (r *Repository) CountBookings(ctx context.Context) (int, error) {
	n, err := r.client.LLen(ctx, r.bookingsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return int(n), nil
}

// Ping checks the connection to Redis
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
