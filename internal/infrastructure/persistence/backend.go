package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"uav-roster/internal/application/club"
	"uav-roster/internal/infra/memory"
	"uav-roster/internal/infrastructure/config"
	"uav-roster/internal/infrastructure/persistence/postgres"
	"uav-roster/internal/infrastructure/persistence/redisstore"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Pinger 為可做健康檢查的儲存層。
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend 為選定的文件儲存；Pinger 在記憶體模式下為 nil。
type Backend struct {
	Name   string
	Repo   club.Repository
	Pinger Pinger
	closer func() error
}

// Close 釋放底層連線。
func (b *Backend) Close() error {
	if b == nil || b.closer == nil {
		return nil
	}
	return b.closer()
}

// Memory 回傳僅存在於行程內的儲存。
func Memory() *Backend {
	return &Backend{Name: BackendMemory, Repo: memory.NewStore()}
}

// Open 依設定選擇儲存：有 DSN 用 Postgres，否則有 Redis 位址用 Redis，都沒有則用記憶體。
func Open(ctx context.Context, cfg config.Config) (*Backend, error) {
	switch {
	case cfg.DB.DSN != "":
		db, err := postgres.Open(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return postgresBackend(db, cfg.DB.DocumentKey), nil
	case cfg.Redis.Addr != "":
		store := redisstore.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Key)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return &Backend{Name: BackendRedis, Repo: store, Pinger: store, closer: store.Close}, nil
	default:
		return Memory(), nil
	}
}

func postgresBackend(db *sql.DB, key string) *Backend {
	if db == nil {
		return Memory()
	}
	store := postgres.NewDocumentStore(db, key)
	return &Backend{Name: BackendPostgres, Repo: store, Pinger: store, closer: db.Close}
}

// ErrNoBackend 在需要持久化儲存卻只剩記憶體時回傳。
var ErrNoBackend = errors.New("no persistent storage configured")

// RequirePersistent 拒絕記憶體儲存（一次性指令需要真正的儲存層）。
func (b *Backend) RequirePersistent() error {
	if b == nil || b.Name == BackendMemory {
		return ErrNoBackend
	}
	return nil
}
