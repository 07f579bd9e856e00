package repository

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rsukotabanjar/jadwalrapat/internal/config"
	"github.com/rsukotabanjar/jadwalrapat/internal/repository/memory"
	"github.com/rsukotabanjar/jadwalrapat/internal/repository/redis"
)

var (
	_ Repository = (*memory.Repository)(nil)
	_ Repository = (*redis.Repository)(nil)
)

// NewRepository returns the Redis repository when it is enabled in the
// configuration and the memory repository otherwise
func NewRepository(cfg config.RedisConfig) (Repository, error) {
	if cfg.Enabled {
		repo, err := redis.NewRepository(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis repository: %w", err)
		}
		zap.L().Info("using redis booking repository", zap.String("key_prefix", cfg.KeyPrefix))
		return repo, nil
	}

	zap.L().Info("using in-memory booking repository")
	return memory.NewRepository(), nil
}
