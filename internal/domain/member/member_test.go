package member

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMember_Validate(t *testing.T) {
	tests := []struct {
		name    string
		member  Member
		wantErr bool
	}{
		{name: "Valid Member", member: Member{ID: "m-1", Name: "Alice"}},
		{name: "Missing ID", member: Member{Name: "Alice"}, wantErr: true},
		{name: "Blank Name", member: Member{ID: "m-1", Name: "  "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestTask_Validate(t *testing.T) {
	base := Task{Title: "Wing spar", Deadline: MustParseDate("2026-03-01"), Progress: 50}
	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr bool
	}{
		{name: "Valid", mutate: func(*Task) {}},
		{name: "Progress 100", mutate: func(t *Task) { t.Progress = 100 }},
		{name: "Progress Over", mutate: func(t *Task) { t.Progress = 101 }, wantErr: true},
		{name: "Progress Negative", mutate: func(t *Task) { t.Progress = -1 }, wantErr: true},
		{name: "Blank Title", mutate: func(t *Task) { t.Title = "" }, wantErr: true},
		{name: "No Deadline", mutate: func(t *Task) { t.Deadline = Date{} }, wantErr: true},
		{name: "Bad Outcome", mutate: func(t *Task) { t.Outcome = "Maybe" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := base
			tt.mutate(&task)
			if err := task.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppData_Validate_DuplicateID(t *testing.T) {
	d := AppData{Members: []Member{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}}
	if err := d.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected duplicate id validation error, got %v", err)
	}
	if d.Find("a") != 0 || d.Find("zzz") != -1 {
		t.Error("Find returned unexpected index")
	}
}

func TestMember_CloneIsIndependent(t *testing.T) {
	m := Member{ID: "a", Name: "A", ScoreHistory: []ScoreRecord{{ID: "r1", Change: 1}}}
	c := m.Clone()
	c.ScoreHistory[0].Change = 99
	if m.ScoreHistory[0].Change != 1 {
		t.Error("clone shares score history with original")
	}
}

func TestDate_JSON(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"title":"x","deadline":"2025-12-31","progress":10}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.Deadline.String() != "2025-12-31" {
		t.Errorf("unexpected deadline: %s", task.Deadline)
	}
	out, _ := json.Marshal(task)
	var raw map[string]interface{}
	_ = json.Unmarshal(out, &raw)
	if raw["deadline"] != "2025-12-31" {
		t.Errorf("expected deadline round trip, got %v", raw["deadline"])
	}
	if _, ok := raw["outcome"]; ok {
		t.Error("empty outcome should be omitted")
	}

	if err := json.Unmarshal([]byte(`{"deadline":"2025-12-31T10:00:00Z"}`), &task); err != nil {
		t.Fatalf("RFC 3339 deadline should be accepted: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"deadline":"tomorrow"}`), &task); err == nil {
		t.Error("expected error for invalid deadline")
	}
}

func TestDate_Before(t *testing.T) {
	today := DateOf(time.Date(2026, 1, 10, 23, 59, 0, 0, time.UTC))
	if !today.AddDays(-1).Before(today) {
		t.Error("yesterday should be before today")
	}
	if today.Before(today) {
		t.Error("a date is not strictly before itself")
	}
	if today.AddDays(1).Before(today) {
		t.Error("tomorrow is not before today")
	}
	if got := today.AddDays(-10).String(); got != "2025-12-31" {
		t.Errorf("AddDays across year boundary = %s", got)
	}
}
