package buildinfo

import (
	"strings"
	"testing"
)

func withBuild(t *testing.T, version, commit string) {
	t.Helper()
	v, c := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = v, c })
}

func TestShortPrefersVersion(t *testing.T) {
	withBuild(t, "v1.2.0", "0123456789abcdef")
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q, want v1.2.0", got)
	}
}

func TestShortAbbreviatesCommit(t *testing.T) {
	withBuild(t, "dev", "0123456789abcdef")
	if got := Short(); got != "0123456" {
		t.Fatalf("Short() = %q, want 0123456", got)
	}
}

func TestString(t *testing.T) {
	withBuild(t, "v1.2.0", "abc")
	got := String()
	if !strings.Contains(got, "v1.2.0") || !strings.Contains(got, "commit abc") {
		t.Fatalf("String() = %q", got)
	}
}
