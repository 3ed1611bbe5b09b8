package ledger

import (
	"fmt"
	"strings"
	"time"

	"uav-roster/internal/domain/member"

	"github.com/google/uuid"
)

// Adjustment 為一次積分異動的輸入。
type Adjustment struct {
	Delta    int
	Reason   string
	Recorder string
}

// Engine 套用積分異動並維持 score 與 scoreHistory 一致；不接觸儲存層。
type Engine struct {
	now   func() time.Time
	newID func() string
}

// NewEngine 建立積分引擎，紀錄 id 為時間排序的 UUIDv7；now 為 nil 時使用 time.Now。
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		now:   now,
		newID: newRecordID,
	}
}

func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RecordScoreChange 對 target 加上 delta 分並回傳新的成員值。
func (e *Engine) RecordScoreChange(target member.Member, delta int, reason string) (member.Member, error) {
	return e.Record(target, Adjustment{Delta: delta, Reason: reason})
}

// Record 產生新的 ScoreRecord 並置於歷史最前端；delta 為 0 時不做任何變更。
func (e *Engine) Record(target member.Member, adj Adjustment) (member.Member, error) {
	if adj.Delta == 0 {
		return target, fmt.Errorf("%w: score change must be a non-zero integer", member.ErrValidation)
	}
	reason := strings.TrimSpace(adj.Reason)
	if reason == "" {
		reason = member.DefaultScoreReason
	}
	rec := member.ScoreRecord{
		ID:       e.newID(),
		Date:     e.now().UTC(),
		Change:   adj.Delta,
		Reason:   reason,
		Recorder: strings.TrimSpace(adj.Recorder),
	}

	out := target.Clone()
	out.Score = target.Score + adj.Delta
	out.ScoreHistory = append([]member.ScoreRecord{rec}, target.ScoreHistory...)
	return out, nil
}

// Verify 檢查 score 是否等於 scoreHistory 的總和。
func Verify(m member.Member) error {
	sum := 0
	for _, r := range m.ScoreHistory {
		sum += r.Change
	}
	if sum != m.Score {
		return fmt.Errorf("%w: member %s score %d does not match history total %d", member.ErrValidation, m.ID, m.Score, sum)
	}
	return nil
}
