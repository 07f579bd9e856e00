// Package config provides configuration management for the application
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/rsukotabanjar/jadwalrapat/internal/models"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "JADWAL"

// Config holds the runtime configuration of the service
type Config struct {
	ListenAddress      string       `envconfig:"LISTEN_ADDRESS" default:":8080"`
	Rooms              []string     `envconfig:"ROOMS"`
	SeedSampleBookings bool         `envconfig:"SEED_SAMPLE_BOOKINGS" default:"true"`
	Redis              RedisConfig  `envconfig:"REDIS"`
	Events             EventsConfig `envconfig:"EVENTS"`
}

// RedisConfig holds Redis/Valkey configuration
type RedisConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"false"`
	// URI is prioritized if provided, otherwise individual connection parameters are used
	URI       string `envconfig:"URI"`
	Host      string `envconfig:"HOST" default:"localhost"`
	Port      string `envconfig:"PORT" default:"6379"`
	Username  string `envconfig:"USERNAME"`
	Password  string `envconfig:"PASSWORD"`
	DB        int    `envconfig:"DB" default:"0"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"jadwal:"`
	// TTL applied to the booking keys (0 means no expiration)
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"0s"`
}

// EventsConfig holds the message broker settings for booking events
type EventsConfig struct {
	AMQPURL  string `envconfig:"AMQP_URL"`
	Exchange string `envconfig:"EXCHANGE" default:"jadwal.bookings"`
}

// Enabled reports whether a broker is configured
func (c EventsConfig) Enabled() bool {
	return c.AMQPURL != ""
}

// Load reads the configuration from JADWAL_* environment variables
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(cfg.Rooms) == 0 {
		cfg.Rooms = models.DefaultRooms
	}
	return cfg, nil
}

// LoadEnvFile loads variables from a dotenv file without overriding ones
// that are already set. A missing default file is not an error.
func LoadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Catalog builds the room catalog from the configured room names
func (c Config) Catalog() *models.RoomCatalog {
	return models.NewRoomCatalog(c.Rooms)
}
