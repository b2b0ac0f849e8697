package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-resumegen/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - path probes
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "resume.tex")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true")
	}
	if fileutil.DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists(missing) = true")
	}
}

// ---------------------------------------------------------------------------
// TestWriteFileAtomic - atomic writes with parent creation
// ---------------------------------------------------------------------------

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parents and writes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "build", "nested", "0_jdoe_resume.tex")
		if err := fileutil.WriteFileAtomic(path, []byte("hello")); err != nil {
			t.Fatalf("WriteFileAtomic() error = %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "hello" {
			t.Errorf("content = %q, want %q", got, "hello")
		}
	})

	t.Run("overwrites existing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "f.txt")
		if err := fileutil.WriteFileAtomic(path, []byte("one")); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFileAtomic(path, []byte("two")); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "two" {
			t.Errorf("content = %q, want %q", got, "two")
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		if err := os.WriteFile(blocker, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		err := fileutil.WriteFileAtomic(filepath.Join(blocker, "f.txt"), []byte("x"))
		if !errors.Is(err, fileutil.ErrWriteFile) {
			t.Errorf("error = %v, want ErrWriteFile", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestCopyFileAtomic - copies for distribution
// ---------------------------------------------------------------------------

func TestCopyFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("copies content", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src.pdf")
		dst := filepath.Join(dir, "out", "dst.pdf")
		if err := os.WriteFile(src, []byte("%PDF-1.7"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.CopyFileAtomic(src, dst); err != nil {
			t.Fatalf("CopyFileAtomic() error = %v", err)
		}
		got, _ := os.ReadFile(dst)
		if string(got) != "%PDF-1.7" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.CopyFileAtomic(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
		if !errors.Is(err, fileutil.ErrCopyFile) {
			t.Errorf("error = %v, want ErrCopyFile", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsFilePath / TestStripPrefix - name handling
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"resumegen", false},
		{"my-config", false},
		{"./resumegen.yaml", true},
		{"/etc/resumegen.yaml", true},
		{`C:\config\resumegen.yaml`, true},
		{"", false},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestStripPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, prefix string
		want         string
		ok           bool
	}{
		{"build/0_jdoe_resume.tex", "0_", "jdoe_resume.tex", true},
		{"build/jdoe_acme.tex", "0_", "jdoe_acme.tex", false},
		{"0_x.md", "", "0_x.md", false},
		{"dir/0_/x.md", "0_", "x.md", false},
	}

	for _, tt := range tests {
		got, ok := fileutil.StripPrefix(tt.path, tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StripPrefix(%q, %q) = %q, %v; want %q, %v", tt.path, tt.prefix, got, ok, tt.want, tt.ok)
		}
	}
}
