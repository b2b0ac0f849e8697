package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and optionally writes the artifact.
type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	produce bool
	err     error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{dir, name}, args...))
	if f.produce {
		src := filepath.Join(dir, args[len(args)-1])
		pdf := src[:len(src)-len(filepath.Ext(src))] + ".pdf"
		if err := os.WriteFile(pdf, []byte("%PDF"), 0o644); err != nil {
			return "", "", err
		}
	}
	return "", "! LaTeX Error: File `missing.sty' not found.", f.err
}

func (f *fakeRunner) sources() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = filepath.Join(c[0], c[len(c)-1])
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// ---------------------------------------------------------------------------
// TestTakeSnapshot - digests of existing sources
// ---------------------------------------------------------------------------

func TestTakeSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "0_jdoe_resume.tex"), "resume")
	writeFile(t, filepath.Join(dir, "jdoe_acme.tex"), "acme")
	writeFile(t, filepath.Join(dir, "jdoe_resume.md"), "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.tex"), 0o755))

	snap, err := TakeSnapshot(dir, ".tex")
	require.NoError(t, err)

	assert.Len(t, snap, 2)
	assert.Contains(t, snap, "0_jdoe_resume.tex")
	assert.Contains(t, snap, "jdoe_acme.tex")
	assert.Len(t, snap["jdoe_acme.tex"], 64)
	assert.NotEqual(t, snap["0_jdoe_resume.tex"], snap["jdoe_acme.tex"])
}

func TestTakeSnapshot_MissingDir(t *testing.T) {
	t.Parallel()

	snap, err := TakeSnapshot(filepath.Join(t.TempDir(), "nope"), ".tex")
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestDigest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.tex")
	b := filepath.Join(dir, "b.tex")
	writeFile(t, a, "same")
	writeFile(t, b, "same")

	da, err := Digest(a)
	require.NoError(t, err)
	db, err := Digest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)

	_, err = Digest(filepath.Join(dir, "missing.tex"))
	assert.ErrorIs(t, err, ErrSnapshot)
}

// ---------------------------------------------------------------------------
// TestSelect - change detection
// ---------------------------------------------------------------------------

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		before      string // prior content; empty means absent from snapshot
		after       string
		hasArtifact bool
		want        bool
	}{
		{"unchanged with artifact", "v1", "v1", true, false},
		{"changed with artifact", "v1", "v2", true, true},
		{"unchanged without artifact", "v1", "v1", false, true},
		{"new without artifact", "", "v1", false, true},
		{"new with artifact", "", "v1", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			src := filepath.Join(dir, "jdoe_resume.tex")

			if tt.before != "" {
				writeFile(t, src, tt.before)
			}
			before, err := TakeSnapshot(dir, ".tex")
			require.NoError(t, err)

			writeFile(t, src, tt.after)
			if tt.hasArtifact {
				writeFile(t, filepath.Join(dir, "jdoe_resume.pdf"), "%PDF")
			}

			c := New(Options{Runner: &fakeRunner{}, Logger: quietLogger()})
			selected, err := c.Select([]string{src}, before)
			require.NoError(t, err)

			if tt.want {
				assert.Equal(t, []string{src}, selected)
			} else {
				assert.Empty(t, selected)
			}
		})
	}
}

func TestSelect_MissingSource(t *testing.T) {
	t.Parallel()

	c := New(Options{Runner: &fakeRunner{}, Logger: quietLogger()})
	_, err := c.Select([]string{filepath.Join(t.TempDir(), "gone.tex")}, Snapshot{})
	assert.ErrorIs(t, err, ErrSnapshot)
}

// ---------------------------------------------------------------------------
// TestCompileChanged - invocation and outcome handling
// ---------------------------------------------------------------------------

func TestCompileChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fresh := filepath.Join(dir, "0_jdoe_resume.tex")
	stale := filepath.Join(dir, "jdoe_acme.tex")
	done := filepath.Join(dir, "jdoe_globex.tex")
	writeFile(t, fresh, "resume")
	writeFile(t, stale, "acme v1")
	writeFile(t, done, "globex")
	writeFile(t, filepath.Join(dir, "jdoe_acme.pdf"), "%PDF")
	writeFile(t, filepath.Join(dir, "jdoe_globex.pdf"), "%PDF")

	before, err := TakeSnapshot(dir, ".tex")
	require.NoError(t, err)
	writeFile(t, stale, "acme v2")

	runner := &fakeRunner{produce: true}
	c := New(Options{Runner: runner, Logger: quietLogger()})

	compiled, err := c.CompileChanged(context.Background(), []string{fresh, stale, done}, before)
	require.NoError(t, err)

	assert.Equal(t, []string{fresh, stale}, compiled)
	assert.Equal(t, []string{fresh, stale}, runner.sources())
	assert.FileExists(t, filepath.Join(dir, "0_jdoe_resume.pdf"))

	// Second run with nothing changed compiles nothing.
	before, err = TakeSnapshot(dir, ".tex")
	require.NoError(t, err)
	compiled, err = c.CompileChanged(context.Background(), []string{fresh, stale, done}, before)
	require.NoError(t, err)
	assert.Empty(t, compiled)
}

func TestCompileChanged_CommandLine(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "0_jdoe_resume.tex")
	writeFile(t, src, "x")

	runner := &fakeRunner{}
	c := New(Options{Command: "latexmk", Engine: "lualatex", Runner: runner, Logger: quietLogger()})

	_, err := c.CompileChanged(context.Background(), []string{src}, Snapshot{})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{
		dir, "latexmk", "-lualatex", "-interaction=nonstopmode", "-output-directory=.", "0_jdoe_resume.tex",
	}, runner.calls[0])
}

// fakeToolchain is a shell script standing in for latexmk: it requires its
// last argument to exist relative to its working directory and writes the
// PDF into the -output-directory.
const fakeToolchain = `#!/bin/sh
for last; do :; done
[ -f "$last" ] || { echo "file '$last' not found (cwd $(pwd))" >&2; exit 1; }
out=.
for a in "$@"; do
  case "$a" in -output-directory=*) out="${a#-output-directory=}" ;; esac
done
printf '%%PDF' > "$out/$(basename "$last" .tex).pdf"
`

func TestCompileChanged_RelativeBuildDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script toolchain")
	}

	work := t.TempDir()
	tool := filepath.Join(work, "fake-latexmk")
	require.NoError(t, os.WriteFile(tool, []byte(fakeToolchain), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(work, "build"), 0o755))
	t.Chdir(work)

	src := filepath.Join("build", "0_jdoe_resume.tex")
	writeFile(t, src, "resume")

	c := New(Options{Command: tool, Logger: quietLogger()})
	compiled, err := c.CompileChanged(context.Background(), []string{src}, Snapshot{})
	require.NoError(t, err)
	assert.Equal(t, []string{src}, compiled)
	assert.FileExists(t, filepath.Join(work, "build", "0_jdoe_resume.pdf"))

	// The artifact is found, so an unchanged source is not rebuilt.
	before, err := TakeSnapshot("build", ".tex")
	require.NoError(t, err)
	compiled, err = c.CompileChanged(context.Background(), []string{src}, before)
	require.NoError(t, err)
	assert.Empty(t, compiled)
}

func TestCompileChanged_FailureIsNotReturned(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "0_jdoe_resume.tex")
	writeFile(t, src, "x")

	tests := []struct {
		name string
		err  error
	}{
		{"exit status", errors.New("exit status 12")},
		{"binary missing", fmt.Errorf("starting command: %w", exec.ErrNotFound)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(Options{Runner: &fakeRunner{err: tt.err}, Logger: quietLogger()})
			compiled, err := c.CompileChanged(context.Background(), []string{src}, Snapshot{})
			require.NoError(t, err)
			assert.Equal(t, []string{src}, compiled)
		})
	}
}

func TestCompileChanged_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "0_jdoe_resume.tex")
	writeFile(t, src, "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &fakeRunner{}
	c := New(Options{Runner: runner, Logger: quietLogger()})
	compiled, err := c.CompileChanged(ctx, []string{src}, Snapshot{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, compiled)
	assert.Empty(t, runner.calls)
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New(Options{})
	assert.Equal(t, DefaultSourceExt, c.SourceExt())
	assert.Equal(t, filepath.Join("build", "x.pdf"), c.ArtifactPath(filepath.Join("build", "x.tex")))
	assert.Equal(t, "-xelatex", c.Args("x.tex")[0])
}

func TestLastLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "c\nd", lastLines("a\nb\nc\nd\n", 2))
	assert.Equal(t, "a", lastLines("a", 5))
}
