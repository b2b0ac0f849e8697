package compile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-resumegen/internal/hints"
)

// Defaults for the external toolchain.
const (
	DefaultCommand     = "latexmk"
	DefaultEngine      = "xelatex"
	DefaultSourceExt   = ".tex"
	DefaultArtifactExt = ".pdf"
)

// Options configures a Compiler. Zero values take the defaults above.
type Options struct {
	Command     string
	Engine      string
	SourceExt   string
	ArtifactExt string
	Runner      Runner
	Logger      *slog.Logger
}

// Compiler runs the external toolchain over changed sources, one at a time.
type Compiler struct {
	command     string
	engine      string
	sourceExt   string
	artifactExt string
	runner      Runner
	logger      *slog.Logger
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	c := &Compiler{
		command:     opts.Command,
		engine:      opts.Engine,
		sourceExt:   opts.SourceExt,
		artifactExt: opts.ArtifactExt,
		runner:      opts.Runner,
		logger:      opts.Logger,
	}
	if c.command == "" {
		c.command = DefaultCommand
	}
	if c.engine == "" {
		c.engine = DefaultEngine
	}
	if c.sourceExt == "" {
		c.sourceExt = DefaultSourceExt
	}
	if c.artifactExt == "" {
		c.artifactExt = DefaultArtifactExt
	}
	if c.runner == nil {
		c.runner = &ExecRunner{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SourceExt returns the extension of the sources this compiler accepts.
func (c *Compiler) SourceExt() string { return c.sourceExt }

// ArtifactPath returns where the compiled artifact of source lives.
func (c *Compiler) ArtifactPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + c.artifactExt
}

// Args returns the toolchain arguments used to compile source. The
// toolchain runs inside the source directory, so paths are relative to it.
func (c *Compiler) Args(source string) []string {
	return []string{
		"-" + c.engine,
		"-interaction=nonstopmode",
		"-output-directory=.",
		filepath.Base(source),
	}
}

// Select returns the sources that need compiling, in input order: those
// whose digest differs from before, and those without an artifact.
func (c *Compiler) Select(sources []string, before Snapshot) ([]string, error) {
	var selected []string
	for _, src := range sources {
		digest, err := Digest(src)
		if err != nil {
			return nil, err
		}
		changed := before.Changed(filepath.Base(src), digest)
		if changed || !artifactExists(c.ArtifactPath(src)) {
			selected = append(selected, src)
		}
	}
	return selected, nil
}

// CompileChanged compiles every selected source sequentially and returns
// the sources it attempted. Toolchain failures are logged, not returned.
// Returns ctx.Err() if the context is cancelled between compilations.
func (c *Compiler) CompileChanged(ctx context.Context, sources []string, before Snapshot) ([]string, error) {
	selected, err := c.Select(sources, before)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		c.logger.Debug("no typeset sources changed")
		return nil, nil
	}

	attempted := make([]string, 0, len(selected))
	for _, src := range selected {
		if err := ctx.Err(); err != nil {
			return attempted, err
		}

		c.logger.Info("compiling", slog.String("file", src), slog.String("engine", c.engine))
		_, stderr, runErr := c.runner.Run(ctx, filepath.Dir(src), c.command, c.Args(src)...)
		attempted = append(attempted, src)

		if runErr != nil {
			c.logFailure(src, stderr, runErr)
		}
	}
	return attempted, nil
}

func (c *Compiler) logFailure(src, stderr string, err error) {
	msg := fmt.Sprintf("%s failed", c.command)
	if errors.Is(err, exec.ErrNotFound) {
		msg += hints.ForCompilerNotFound(c.command)
	}
	c.logger.Warn(msg,
		slog.String("file", src),
		slog.String("error", err.Error()),
		slog.String("stderr", lastLines(stderr, 5)),
	)
}

func artifactExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// lastLines keeps the tail of a toolchain log, where errors are reported.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
