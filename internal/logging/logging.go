// Package logging builds the hclog loggers used across happyavatar.
package logging

import (
	"io"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "happyavatar"

// Options selects the verbosity of the root logger.
type Options struct {
	Verbose bool
	Quiet   bool
	Output  io.Writer
}

// Level returns the log level implied by the options. Quiet wins over
// verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New creates the root logger.
func New(opts Options) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: opts.Output,
		Level:  opts.Level(),
	})
}

// Timed logs how long a stage took. Use it as defer Timed(log, "stage")().
func Timed(log hclog.Logger, stage string) func() {
	start := time.Now()
	return func() {
		log.Debug("stage finished", "stage", stage, "elapsed", time.Since(start))
	}
}
