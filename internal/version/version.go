// Package version carries build metadata, set at link time with
// -ldflags "-X github.com/MrSnakeDoc/freenight/internal/version.Version=v0.1.0".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version   = "dev"             // ex: v0.1.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2025-11-12T18:42:00Z
	GoVersion = runtime.Version() // go version
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	Commit, BuildDate = fromBuildSettings(info.Settings, Commit, BuildDate)
}

// fromBuildSettings fills commit and date from the vcs stamps `go build`
// embeds when ldflags did not set them.
func fromBuildSettings(settings []debug.BuildSetting, commit, date string) (string, string) {
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			commit = s.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.time":
			if date == "unknown" {
				date = s.Value
			}
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if dirty && commit != "none" {
		commit += "-dirty"
	}
	return commit, date
}

// String is the one-line build summary printed by `freenight version` and at startup.
func String() string {
	return fmt.Sprintf("freenight %s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
