package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"uav-roster/internal/domain/member"

	"github.com/redis/go-redis/v9"
)

// DefaultKey 為名單文件的 Redis key。
const DefaultKey = "uav-roster:data"

// Store 將整份名單以 JSON 字串存在單一 Redis key。
type Store struct {
	rdb *redis.Client
	key string
}

// NewStore 以位址與密碼建立 Redis 儲存。
func NewStore(addr, password string, db int, key string) *Store {
	s, _ := NewStoreWithRedis(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}), key)
	return s
}

// NewStoreWithRedis 從既有的 redis.Client 建立儲存。
func NewStoreWithRedis(rdb *redis.Client, key string) (*Store, error) {
	if rdb == nil {
		return nil, errors.New("redis client is nil")
	}
	if key == "" {
		key = DefaultKey
	}
	return &Store{rdb: rdb, key: key}, nil
}

// Ping 檢查連線。
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close 關閉底層連線。
func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Load(ctx context.Context) (member.AppData, error) {
	raw, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return member.AppData{Members: []member.Member{}}, nil
		}
		return member.AppData{}, fmt.Errorf("redis get %s: %w", s.key, err)
	}

	var data member.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return member.AppData{}, fmt.Errorf("decode document: %w", err)
	}
	if data.Members == nil {
		data.Members = []member.Member{}
	}
	return data, nil
}

func (s *Store) Save(ctx context.Context, members []member.Member) error {
	if members == nil {
		members = []member.Member{}
	}
	raw, err := json.Marshal(member.AppData{Members: members})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
