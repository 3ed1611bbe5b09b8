package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"uav-roster/internal/domain/member"
)

// DefaultDocumentKey 為名單文件在 club_documents 的主鍵。
const DefaultDocumentKey = "roster"

// DocumentStore 將整份名單以單一 JSONB 列保存，寫入一律整列取代。
type DocumentStore struct {
	db  *sql.DB
	key string
}

// NewDocumentStore 建立 Postgres 文件儲存；key 為空時使用 DefaultDocumentKey。
func NewDocumentStore(db *sql.DB, key string) *DocumentStore {
	if key == "" {
		key = DefaultDocumentKey
	}
	return &DocumentStore{db: db, key: key}
}

// Load 讀取文件；尚無資料列時回傳空名單。
func (s *DocumentStore) Load(ctx context.Context) (member.AppData, error) {
	const q = `
SELECT body FROM club_documents WHERE doc_key = $1 LIMIT 1;
`
	var body []byte
	if err := s.db.QueryRowContext(ctx, q, s.key).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.AppData{Members: []member.Member{}}, nil
		}
		return member.AppData{}, fmt.Errorf("select document: %w", err)
	}

	var data member.AppData
	if len(body) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			return member.AppData{}, fmt.Errorf("decode document: %w", err)
		}
	}
	if data.Members == nil {
		data.Members = []member.Member{}
	}
	return data, nil
}

// Save 以 upsert 整份取代名單。
func (s *DocumentStore) Save(ctx context.Context, members []member.Member) error {
	if members == nil {
		members = []member.Member{}
	}
	body, err := json.Marshal(member.AppData{Members: members})
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	const q = `
INSERT INTO club_documents (doc_key, body, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (doc_key) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW();
`
	if _, err := s.db.ExecContext(ctx, q, s.key, body); err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Ping 檢查資料庫連線（健康檢查使用）。
func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
