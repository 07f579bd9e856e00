// Package redis_test provides tests for the Redis repository
package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rsukotabanjar/jadwalrapat/internal/config"
	"github.com/rsukotabanjar/jadwalrapat/internal/models"
	"github.com/rsukotabanjar/jadwalrapat/internal/repository/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupTestRedis(t *testing.T, ttl time.Duration) (*redis.Repository, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	cfg := config.RedisConfig{
		Enabled:    true,
		Host:       mr.Host(),
		Port:       mr.Port(),
		KeyPrefix:  "test:",
		SessionTTL: ttl,
	}

	repo, err := redis.NewRepository(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo, mr
}

func sampleRequest(title, date, start string) models.BookingRequest {
	return models.BookingRequest{
		Room:      "Aula Edelweiss",
		Title:     title,
		Date:      date,
		StartTime: start,
		EndTime:   "23:00",
	}
}

// TestRedisWithURI tests connection with URI format
func TestRedisWithURI(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.RedisConfig{
		Enabled:   true,
		URI:       fmt.Sprintf("redis://%s:%s", mr.Host(), mr.Port()),
		KeyPrefix: "test:",
	}

	repo, err := redis.NewRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	booking, err := repo.AppendBooking(ctx, sampleRequest("URI Test", "2025-07-20", "09:00"))
	require.NoError(t, err)

	bookings, err := repo.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, booking, bookings[0])
}

func TestRedisConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	port := mr.Port()
	mr.Close()

	_, err := redis.NewRepository(config.RedisConfig{Host: "127.0.0.1", Port: port})
	assert.Error(t, err)
}

func TestBookingRepository(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	ctx := context.Background()

	t.Run("EmptyRepository", func(t *testing.T) {
		bookings, err := repo.ListBookings(ctx)
		assert.NoError(t, err)
		assert.Empty(t, bookings)

		count, err := repo.CountBookings(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("AppendAssignsSequentialIDs", func(t *testing.T) {
		first, err := repo.AppendBooking(ctx, sampleRequest("First", "2025-07-21", "10:00"))
		require.NoError(t, err)
		second, err := repo.AppendBooking(ctx, sampleRequest("Second", "2025-07-19", "08:00"))
		require.NoError(t, err)

		assert.Equal(t, "1", first.ID)
		assert.Equal(t, "2", second.ID)
	})

	t.Run("ListKeepsInsertionOrder", func(t *testing.T) {
		bookings, err := repo.ListBookings(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, "First", bookings[0].Title)
		assert.Equal(t, "Second", bookings[1].Title)
		assert.Equal(t, "2025-07-19", bookings[1].Date)
	})

	t.Run("CountBookings", func(t *testing.T) {
		count, err := repo.CountBookings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("KeysUsePrefix", func(t *testing.T) {
		assert.True(t, mr.Exists("test:bookings"))
		assert.True(t, mr.Exists("test:bookings:seq"))
		assert.Equal(t, time.Duration(0), mr.TTL("test:bookings"), "no expiry without a session TTL")
	})

	t.Run("CorruptEntriesAreSkipped", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		restore := zap.ReplaceGlobals(zap.New(core))
		defer restore()

		_, err := mr.Push("test:bookings", "{not json")
		require.NoError(t, err)

		bookings, err := repo.ListBookings(ctx)
		require.NoError(t, err)
		assert.Len(t, bookings, 2)

		entries := logs.FilterMessage("skipping undecodable booking entry").AllUntimed()
		require.Len(t, entries, 1)
		assert.Equal(t, "test:bookings", entries[0].ContextMap()["key"])
		assert.Equal(t, int64(2), entries[0].ContextMap()["index"])
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

func TestSessionTTL(t *testing.T) {
	repo, mr := setupTestRedis(t, time.Hour)
	ctx := context.Background()

	_, err := repo.AppendBooking(ctx, sampleRequest("Expiring", "2025-07-20", "09:00"))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, mr.TTL("test:bookings"))
	assert.Equal(t, time.Hour, mr.TTL("test:bookings:seq"))

	mr.FastForward(2 * time.Hour)

	count, err := repo.CountBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestPingAfterServerStops(t *testing.T) {
	repo, mr := setupTestRedis(t, 0)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, repo.Ping(ctx))
}
