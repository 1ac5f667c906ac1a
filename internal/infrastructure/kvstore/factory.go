package kvstore

import (
	"context"
	"fmt"

	"github.com/safeeat/backend/internal/domain"
)

// Backend types accepted by Open
const (
	TypeBolt   = "bolt"
	TypeRedis  = "redis"
	TypeMemory = "memory"
)

// Config selects and configures a backend
type Config struct {
	Type      string
	Path      string
	RedisURL  string
	KeyPrefix string
}

// Open creates the backend named by cfg.Type
func Open(ctx context.Context, cfg Config) (domain.KeyValueStore, error) {
	switch cfg.Type {
	case TypeBolt, "":
		store, err := NewBoltStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case TypeRedis:
		store, err := NewRedisStore(ctx, cfg.RedisURL, cfg.KeyPrefix)
		if err != nil {
			return nil, err
		}
		return store, nil
	case TypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
