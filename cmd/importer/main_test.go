package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"uav-roster/internal/application/club"
	"uav-roster/internal/infrastructure/config"
)

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{" YES \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		confirm := promptConfirm(strings.NewReader(tt.input), &out)
		got := confirm(club.Plan{Description: "Parsed 2 members. Import?"})
		if got != tt.want {
			t.Errorf("input %q: got %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Parsed 2 members. Import? [y/N] " {
			t.Errorf("unexpected prompt %q", out.String())
		}
	}
}

func TestClubLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantLoc  string
		wantWarn bool
	}{
		{name: "Valid", timezone: "UTC", wantLoc: "UTC"},
		{name: "Invalid Falls Back To UTC", timezone: "Mars/Olympus", wantLoc: "UTC", wantWarn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			loc := clubLocation(config.ClubConfig{Timezone: tt.timezone}, logger)
			if loc.String() != tt.wantLoc {
				t.Errorf("expected %s, got %s", tt.wantLoc, loc)
			}
			warned := strings.Contains(buf.String(), "invalid club timezone")
			if warned != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v (%q)", warned, tt.wantWarn, buf.String())
			}
		})
	}
}
