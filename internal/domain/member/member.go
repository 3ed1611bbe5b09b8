package member

import (
	"fmt"
	"strings"
	"time"
)

// 預設值。
const (
	DefaultGroup       = "結構設計"
	DefaultTaskTitle   = "New Task"
	DefaultScoreReason = "No reason provided"
	DefaultMemberName  = "Unnamed Member"
)

// 組別標籤；未列出的文字仍會原樣保留。
const (
	GroupElectrical = "電裝控制"
	GroupStructure  = "結構設計"
	GroupPR         = "公關相關"
	GroupTeaching   = "教學相關"
)

// Groups 回傳已知的組別標籤（依畫面顯示順序）。
func Groups() []string {
	return []string{GroupElectrical, GroupStructure, GroupPR, GroupTeaching}
}

// Outcome 為任務結案結果。
type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "Success"
	OutcomeFailed  Outcome = "Failed"
)

// Valid 檢查結果值是否合法（空字串代表尚未結案）。
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeNone, OutcomeSuccess, OutcomeFailed:
		return true
	}
	return false
}

// Task 為成員的任務。
type Task struct {
	Title    string  `json:"title"`
	Deadline Date    `json:"deadline"`
	Group    string  `json:"group"`
	Progress int     `json:"progress"` // 0-100
	Outcome  Outcome `json:"outcome,omitempty"`
}

// Validate 檢查任務欄位。
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title is required", ErrValidation)
	}
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: progress must be within 0-100, got %d", ErrValidation, t.Progress)
	}
	if t.Deadline.IsZero() {
		return fmt.Errorf("%w: task deadline is required", ErrValidation)
	}
	if !t.Outcome.Valid() {
		return fmt.Errorf("%w: unsupported outcome %q", ErrValidation, t.Outcome)
	}
	return nil
}

// Done 任務進度是否已達 100%。
func (t Task) Done() bool {
	return t.Progress >= 100
}

// PlaceholderTask 建立新成員預設的任務。
func PlaceholderTask(today Date, group string) Task {
	return Task{
		Title:    DefaultTaskTitle,
		Deadline: today,
		Group:    group,
		Progress: 0,
	}
}

// Stats 為歷史任務成敗統計。
type Stats struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// ScoreRecord 為一筆積分異動，建立後不可修改。
type ScoreRecord struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Change   int       `json:"change"`
	Reason   string    `json:"reason"`
	Recorder string    `json:"recorder,omitempty"`
}

// Member 社員資料、任務與積分。
type Member struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId,omitempty"`
	Name      string `json:"name"`

	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Account string `json:"account"`
	Group   string `json:"group"`
	Remarks string `json:"remarks"`

	CurrentTask Task   `json:"currentTask"`
	Stats       Stats  `json:"stats"`
	History     []Task `json:"history"`

	Score        int           `json:"score"`
	ScoreHistory []ScoreRecord `json:"scoreHistory"` // 新到舊
}

// Validate 基本欄位檢查。
func (m Member) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: member id is required", ErrValidation)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: member name is required", ErrValidation)
	}
	return nil
}

// Clone 深拷貝，避免呼叫端共用切片。
func (m Member) Clone() Member {
	out := m
	out.History = append([]Task{}, m.History...)
	out.ScoreHistory = append([]ScoreRecord{}, m.ScoreHistory...)
	return out
}

// AppData 為整份文件的根，members 的順序即任務表的手動排序。
type AppData struct {
	Members []Member `json:"members"`
}

// Clone 深拷貝整份文件。
func (d AppData) Clone() AppData {
	out := AppData{Members: make([]Member, len(d.Members))}
	for i, m := range d.Members {
		out.Members[i] = m.Clone()
	}
	return out
}

// Find 依 id 找出成員位置，找不到回傳 -1。
func (d AppData) Find(id string) int {
	for i, m := range d.Members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Validate 檢查整份文件：每位成員合法且 id 不重複。
func (d AppData) Validate() error {
	seen := make(map[string]struct{}, len(d.Members))
	for i, m := range d.Members {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("members[%d]: %w", i, err)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member id %q", ErrValidation, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
