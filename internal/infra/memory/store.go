package memory

import (
	"context"
	"sync"

	"uav-roster/internal/domain/member"
)

// Store 為記憶體版文件儲存，未設定資料庫時使用；讀寫皆做深拷貝。
type Store struct {
	mu      sync.RWMutex
	members []member.Member
	saves   int
}

// NewStore 建立空白文件。
func NewStore() *Store {
	return &Store{}
}

// Load 回傳整份文件；尚未寫入過時為空名單。
func (s *Store) Load(ctx context.Context) (member.AppData, error) {
	if err := ctx.Err(); err != nil {
		return member.AppData{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return member.AppData{Members: copyMembers(s.members)}, nil
}

// Save 整批取代名單。
func (s *Store) Save(ctx context.Context, members []member.Member) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = copyMembers(members)
	s.saves++
	return nil
}

// Saves 回傳成功寫入的次數（測試使用）。
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func copyMembers(in []member.Member) []member.Member {
	out := make([]member.Member, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
