package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment, fake compiler, workspace
// ---------------------------------------------------------------------------

// fakeRunner stands in for the typeset toolchain and writes a PDF next to
// each source it is given.
type fakeRunner struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeRunner) Run(_ context.Context, dir, _ string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	src := filepath.Join(dir, args[len(args)-1])
	return "", "", os.WriteFile(strings.TrimSuffix(src, filepath.Ext(src))+".pdf", []byte("%PDF"), 0o644)
}

func (f *fakeRunner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// testEnv returns an Environment writing into buffers, with a fixed clock,
// a fake compiler and no dotenv file.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer, *fakeRunner) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	runner := &fakeRunner{}
	return &Environment{
		Now:    func() time.Time { return time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Runner: runner,
	}, stdout, stderr, runner
}

const testDocument = `name: Jane Doe
theme: teal
summary: Go \textbf{developer}
sections:
  - summary
`

// writeWorkspace creates a document and a config file pointing at
// absolute paths in a temp dir. Returns the dir and the config path.
func writeWorkspace(t *testing.T, formats string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "resume.yaml"), testDocument)

	cfg := "input:\n  document: " + filepath.Join(dir, "resume.yaml") + "\n" +
		"build:\n  dir: " + filepath.Join(dir, "build") + "\n" +
		"output:\n  dir: " + filepath.Join(dir, "output") + "\n" +
		"formats: [" + formats + "]\n"
	cfgPath := filepath.Join(dir, "resumegen.yaml")
	writeTestFile(t, cfgPath, cfg)
	return dir, cfgPath
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
