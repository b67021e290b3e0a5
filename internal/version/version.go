// Package version carries the build identity reported by the demo
// command.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version and Commit identify the build. Set them with ldflags:
//
//	go build -ldflags="-X github.com/sfncore/frankentui/internal/version.Version=v1.2.3 \
//	                   -X github.com/sfncore/frankentui/internal/version.Commit=abc123"
//
// When left unset they fall back to the module version and VCS
// metadata the Go toolchain records in the binary, then to "dev".
var (
	Version = ""
	Commit  = ""
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if Version == "" {
		Version = "dev"
		if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
	if Commit == "" {
		Commit = vcsCommit(info, ok)
	}
}

// vcsCommit returns the short commit hash from the embedded build
// info, with a -dirty marker for modified trees.
func vcsCommit(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return "unknown"
	}
	var rev string
	var modified bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if rev == "" {
		return "unknown"
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if modified {
		rev += "-dirty"
	}
	return rev
}

// Full returns the version string including the commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}
