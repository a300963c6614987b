package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestOptionsLevel(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want hclog.Level
	}{
		{name: "default", opts: Options{}, want: hclog.Info},
		{name: "verbose", opts: Options{Verbose: true}, want: hclog.Debug},
		{name: "quiet", opts: Options{Quiet: true}, want: hclog.Error},
		{name: "quiet wins", opts: Options{Verbose: true, Quiet: true}, want: hclog.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimed(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Verbose: true, Output: &buf})

	Timed(log, "extract")()

	out := buf.String()
	if !strings.Contains(out, "stage finished") || !strings.Contains(out, "stage=extract") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestTimedSilentAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf})

	Timed(log, "extract")()

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
