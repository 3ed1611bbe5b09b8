package roster

import (
	"errors"
	"testing"

	"uav-roster/internal/domain/member"
)

func roster(ids ...string) []member.Member {
	out := make([]member.Member, len(ids))
	for i, id := range ids {
		out[i] = member.Member{ID: id, Name: id, Score: i}
	}
	return out
}

func ids(ms []member.Member) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestReorder(t *testing.T) {
	tests := []struct {
		name   string
		moved  string
		target int
		want   []string
	}{
		{name: "Position 3 To 0", moved: "d", target: 0, want: []string{"d", "a", "b", "c", "e"}},
		{name: "Position 0 To 4", moved: "a", target: 4, want: []string{"b", "c", "d", "e", "a"}},
		{name: "Position 1 To 3", moved: "b", target: 3, want: []string{"a", "c", "d", "b", "e"}},
		{name: "No-op", moved: "c", target: 2, want: []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := roster("a", "b", "c", "d", "e")
			got, err := Reorder(in, tt.moved, tt.target)
			if err != nil {
				t.Fatal(err)
			}
			if g := ids(got); !equal(g, tt.want) {
				t.Errorf("got %v, want %v", g, tt.want)
			}
			if g := ids(in); !equal(g, []string{"a", "b", "c", "d", "e"}) {
				t.Errorf("input reordered in place: %v", g)
			}
			for _, m := range got {
				if m.Score != int(m.ID[0]-'a') {
					t.Errorf("member %s fields changed", m.ID)
				}
			}
		})
	}
}

func TestReorder_Errors(t *testing.T) {
	in := roster("a", "b")
	if _, err := Reorder(in, "zzz", 0); !errors.Is(err, member.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := Reorder(in, "a", 2); !errors.Is(err, member.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := Reorder(in, "a", -1); !errors.Is(err, member.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
