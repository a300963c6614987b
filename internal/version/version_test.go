package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	origCommit, origDate := Commit, Date
	t.Cleanup(func() { Commit, Date = origCommit, origDate })

	Commit, Date = "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "happyavatar version dev (") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "0123456789abcdef", "2026-01-02T03:04:05Z"
	got := String()
	if !strings.Contains(got, "commit: 01234567,") || !strings.Contains(got, "built: 2026-01-02T03:04:05Z") {
		t.Errorf("String() = %q", got)
	}

	Commit = "abc"
	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("String() = %q, want short commit kept", got)
	}
}
