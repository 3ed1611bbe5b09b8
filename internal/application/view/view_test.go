package view

import (
	"testing"

	"uav-roster/internal/domain/member"
)

func TestRanked_StableOrder(t *testing.T) {
	members := []member.Member{
		{ID: "a", Name: "Alpha", Score: 5},
		{ID: "b", Name: "Bravo", Score: -2},
		{ID: "c", Name: "Charlie", Score: 5},
		{ID: "d", Name: "Delta", Score: 0},
	}
	got := Ranked(members, "")
	want := []string{"a", "c", "d", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].Member.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].Member.ID)
		}
		if got[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, got[i].Rank)
		}
	}
	if members[1].ID != "b" {
		t.Error("input slice was re-sorted")
	}
}

func TestRanked_Search(t *testing.T) {
	members := []member.Member{
		{ID: "a", Name: "Alice", Score: 1},
		{ID: "b", Name: "alan", Score: 9},
		{ID: "c", Name: "Bob", Score: 4},
		{ID: "d", Name: "王小明", Score: 2},
		{ID: "e", Name: "Mary Jane", Score: 3},
	}
	tests := []struct {
		search string
		want   []string
	}{
		{search: "AL", want: []string{"b", "a"}},
		{search: "bob", want: []string{"c"}},
		{search: " ", want: []string{"e"}},
		{search: " bob", want: []string{}},
		{search: "小明", want: []string{"d"}},
		{search: "zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Ranked(members, tt.search)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d rows", tt.want, len(got))
			}
			for i, id := range tt.want {
				if got[i].Member.ID != id || got[i].Rank != i+1 {
					t.Errorf("row %d: got %s rank %d", i, got[i].Member.ID, got[i].Rank)
				}
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	today := member.MustParseDate("2026-02-10")
	yesterday := today.AddDays(-1)
	tests := []struct {
		name     string
		deadline member.Date
		progress int
		want     bool
	}{
		{name: "Yesterday Done", deadline: yesterday, progress: 100, want: false},
		{name: "Yesterday Almost", deadline: yesterday, progress: 99, want: true},
		{name: "Today Unfinished", deadline: today, progress: 0, want: false},
		{name: "Tomorrow", deadline: today.AddDays(1), progress: 10, want: false},
		{name: "Last Year", deadline: member.MustParseDate("2025-12-31"), progress: 50, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := member.Task{Title: "t", Deadline: tt.deadline, Progress: tt.progress}
			if got := IsOverdue(task, today); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashboard_KeepsStoredOrder(t *testing.T) {
	today := member.MustParseDate("2026-02-10")
	members := []member.Member{
		{ID: "low", Score: -5, CurrentTask: member.Task{Deadline: today.AddDays(-3), Progress: 20}},
		{ID: "high", Score: 50, CurrentTask: member.Task{Deadline: today, Progress: 20}},
	}
	rows := Dashboard(members, today)
	if rows[0].Member.ID != "low" || rows[1].Member.ID != "high" {
		t.Error("dashboard must not sort by score")
	}
	if !rows[0].Overdue || rows[1].Overdue {
		t.Errorf("unexpected overdue flags: %v %v", rows[0].Overdue, rows[1].Overdue)
	}
	if rows[1].Position != 1 {
		t.Errorf("expected position 1, got %d", rows[1].Position)
	}
}
