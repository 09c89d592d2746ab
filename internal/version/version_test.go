package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildSettings(t *testing.T) {
	tests := []struct {
		name       string
		settings   []debug.BuildSetting
		wantCommit string
		wantDate   string
	}{
		{"no vcs", nil, "none", "unknown"},
		{
			"clean",
			[]debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2025-11-12T18:42:00Z"},
				{Key: "vcs.modified", Value: "false"},
			},
			"0123456", "2025-11-12T18:42:00Z",
		},
		{
			"dirty",
			[]debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc"},
				{Key: "vcs.modified", Value: "true"},
			},
			"abc-dirty", "unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commit, date := fromBuildSettings(tt.settings, "none", "unknown")
			if commit != tt.wantCommit || date != tt.wantDate {
				t.Errorf("got %q %q, want %q %q", commit, date, tt.wantCommit, tt.wantDate)
			}
		})
	}
}

func TestString(t *testing.T) {
	if s := String(); !strings.HasPrefix(s, "freenight "+Version+" (commit=") {
		t.Errorf("String() = %q", s)
	}
}
