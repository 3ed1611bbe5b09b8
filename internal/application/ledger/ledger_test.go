package ledger

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"uav-roster/internal/domain/member"
)

func newTestEngine() *Engine {
	n := 0
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return &Engine{
		now: func() time.Time {
			return base.Add(time.Duration(n) * time.Minute)
		},
		newID: func() string {
			n++
			return fmt.Sprintf("rec-%d", n)
		},
	}
}

func TestEngine_RecordScoreChange_Sequence(t *testing.T) {
	e := newTestEngine()
	m := member.Member{ID: "m-1", Name: "Alice", ScoreHistory: []member.ScoreRecord{}}

	deltas := []int{5, -2, 10, -1}
	sum := 0
	var err error
	for _, d := range deltas {
		m, err = e.RecordScoreChange(m, d, "meeting")
		if err != nil {
			t.Fatalf("RecordScoreChange(%d) failed: %v", d, err)
		}
		sum += d
	}

	if m.Score != sum {
		t.Errorf("expected score %d, got %d", sum, m.Score)
	}
	if len(m.ScoreHistory) != len(deltas) {
		t.Fatalf("expected %d records, got %d", len(deltas), len(m.ScoreHistory))
	}
	if m.ScoreHistory[0].Change != -1 || m.ScoreHistory[0].ID != "rec-4" {
		t.Errorf("newest record should be first, got %+v", m.ScoreHistory[0])
	}
	if err := Verify(m); err != nil {
		t.Errorf("ledger invariant broken: %v", err)
	}
}

func TestEngine_RecordScoreChange_ZeroDelta(t *testing.T) {
	e := newTestEngine()
	orig := member.Member{
		ID:           "m-1",
		Name:         "Alice",
		Score:        3,
		History:      []member.Task{},
		ScoreHistory: []member.ScoreRecord{{ID: "r", Change: 3, Reason: "x"}},
	}
	snapshot := orig.Clone()

	got, err := e.RecordScoreChange(orig, 0, "nothing")
	if !errors.Is(err, member.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !reflect.DeepEqual(got, snapshot) || !reflect.DeepEqual(orig, snapshot) {
		t.Error("member changed on rejected submission")
	}
}

func TestEngine_Record_ReasonDefaultAndImmutability(t *testing.T) {
	e := newTestEngine()
	orig := member.Member{ID: "m-1", Name: "Bob", ScoreHistory: []member.ScoreRecord{}}

	got, err := e.Record(orig, Adjustment{Delta: -3, Reason: "   ", Recorder: " 幹部 "})
	if err != nil {
		t.Fatal(err)
	}
	rec := got.ScoreHistory[0]
	if rec.Reason != member.DefaultScoreReason {
		t.Errorf("expected placeholder reason, got %q", rec.Reason)
	}
	if rec.Recorder != "幹部" {
		t.Errorf("expected trimmed recorder, got %q", rec.Recorder)
	}
	if got.Score != -3 {
		t.Errorf("score may go negative, got %d", got.Score)
	}
	if len(orig.ScoreHistory) != 0 || orig.Score != 0 {
		t.Error("input member must not be modified")
	}
}

func TestNewEngine_UniqueIDs(t *testing.T) {
	e := NewEngine(nil)
	m := member.Member{ID: "m", Name: "M"}
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		var err error
		m, err = e.RecordScoreChange(m, 1, "")
		if err != nil {
			t.Fatal(err)
		}
		id := m.ScoreHistory[0].ID
		if seen[id] {
			t.Fatalf("duplicate record id %s", id)
		}
		seen[id] = true
	}
}

func TestVerify_Mismatch(t *testing.T) {
	m := member.Member{ID: "m", Score: 10, ScoreHistory: []member.ScoreRecord{{Change: 4}}}
	if err := Verify(m); err == nil {
		t.Error("expected mismatch error")
	}
}
