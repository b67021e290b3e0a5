package version

import (
	"fmt"
	"runtime/debug"
	"testing"
)

func TestInitPopulatesFallbacks(t *testing.T) {
	if Version == "" {
		t.Error("Version = empty, want a non-empty fallback")
	}
	if Commit == "" {
		t.Error("Commit = empty, want a non-empty fallback")
	}
}

func TestFull(t *testing.T) {
	want := fmt.Sprintf("%s (commit: %s)", Version, Commit)
	if got := Full(); got != want {
		t.Errorf("Full() = %q, want %q", got, want)
	}
}

func TestVCSCommitShortensAndMarksDirty(t *testing.T) {
	if got := vcsCommit(nil, false); got != "unknown" {
		t.Errorf("vcsCommit(no build info) = %q, want %q", got, "unknown")
	}

	info := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.modified", Value: "true"},
	}}
	if got := vcsCommit(info, true); got != "0123456-dirty" {
		t.Errorf("vcsCommit() = %q, want %q", got, "0123456-dirty")
	}

	clean := &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs.revision", Value: "abc"},
	}}
	if got := vcsCommit(clean, true); got != "abc" {
		t.Errorf("vcsCommit(short clean revision) = %q, want %q", got, "abc")
	}
}
