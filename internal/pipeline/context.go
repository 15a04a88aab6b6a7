// Package pipeline wires the scan-to-report stages together. A
// Context replaces process-wide state: every stage receives its
// logger, clock and ID generator from here, so tests can run
// deterministically and no state leaks between runs.
package pipeline

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/config"
)

// Context carries the cross-cutting dependencies of one pipeline
// instance.
type Context struct {
	Log    hclog.Logger
	Config *config.Config
	Now    func() time.Time
	NewID  func() string
}

// NewContext builds a Context with a named hclog logger, the real
// clock, and UUID v4 identifiers.
func NewContext(cfg *config.Config) *Context {
	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}
	return &Context{
		Log: hclog.New(&hclog.LoggerOptions{
			Name:   "cybershieldx",
			Output: os.Stderr,
			Level:  level,
		}),
		Config: cfg,
		Now:    time.Now,
		NewID:  uuid.NewString,
	}
}
