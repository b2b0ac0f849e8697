package resumegen

import (
	"log/slog"
	"time"

	"github.com/alnah/go-resumegen/internal/assets"
	"github.com/alnah/go-resumegen/internal/compile"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger for progress and compiler diagnostics.
// A nil logger keeps the default.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithClock sets the time source used for the "updated" field.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithRunner replaces the process runner of the typeset compiler.
// Tests use it to avoid invoking the real toolchain.
func WithRunner(r compile.Runner) Option {
	return func(g *Generator) {
		g.runner = r
	}
}

// WithLayoutLoader replaces the layout source. It takes precedence over
// the layouts.path setting.
func WithLayoutLoader(l assets.LayoutLoader) Option {
	return func(g *Generator) {
		g.loader = l
	}
}

// WithCompile overrides compiler.enabled from the configuration.
func WithCompile(enabled bool) Option {
	return func(g *Generator) {
		g.compileOverride = &enabled
	}
}
