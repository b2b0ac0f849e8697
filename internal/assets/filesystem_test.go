package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeLayouts creates {root}/{format}/{name} files with the given contents.
func writeLayouts(t *testing.T, root, format string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, format)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewFilesystemLoader() returned nil")
		}
		if !filepath.IsAbs(loader.BasePath()) {
			t.Errorf("BasePath() = %q, want absolute path", loader.BasePath())
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewFilesystemLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		filePath := filepath.Join(tmpDir, "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := NewFilesystemLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestFilesystemLoader_LoadCatalog(t *testing.T) {
	t.Parallel()

	t.Run("loads base, letter and layouts", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeLayouts(t, tmpDir, "latex", map[string]string{
			"base.tex":    "BASE",
			"letter.tex":  "LETTER",
			"default.tex": "DEFAULT",
			"summary.tex": "SUMMARY",
			"notes.txt":   "ignored: wrong extension",
			".hidden.tex": "ignored: hidden",
		})

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		cat, err := loader.LoadCatalog("latex", ".tex")
		if err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
		if cat.Base != "BASE" || cat.Letter != "LETTER" {
			t.Errorf("Base = %q, Letter = %q", cat.Base, cat.Letter)
		}
		if !cat.HasLetter() {
			t.Error("HasLetter() = false, want true")
		}
		names := cat.LayoutNames()
		if len(names) != 2 || names[0] != "default" || names[1] != "summary" {
			t.Errorf("LayoutNames() = %v, want [default summary]", names)
		}
		if cat.Format != "latex" || cat.Ext != ".tex" {
			t.Errorf("Format = %q, Ext = %q", cat.Format, cat.Ext)
		}
	})

	t.Run("missing base returns ErrIncompleteCatalog", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeLayouts(t, tmpDir, "html", map[string]string{"default.html": "x"})

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		_, err = loader.LoadCatalog("html", ".html")
		if !errors.Is(err, ErrIncompleteCatalog) {
			t.Errorf("LoadCatalog() error = %v, want ErrIncompleteCatalog", err)
		}
	})

	t.Run("missing format returns ErrCatalogNotFound", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		_, err = loader.LoadCatalog("markdown", ".md")
		if !errors.Is(err, ErrCatalogNotFound) {
			t.Errorf("LoadCatalog() error = %v, want ErrCatalogNotFound", err)
		}
	})

	t.Run("directory without matching files returns ErrCatalogNotFound", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		writeLayouts(t, tmpDir, "markdown", map[string]string{"readme.txt": "x"})

		loader, err := NewFilesystemLoader(tmpDir)
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		_, err = loader.LoadCatalog("markdown", ".md")
		if !errors.Is(err, ErrCatalogNotFound) {
			t.Errorf("LoadCatalog() error = %v, want ErrCatalogNotFound", err)
		}
	})

	t.Run("path traversal format name rejected", func(t *testing.T) {
		t.Parallel()

		loader, err := NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewFilesystemLoader() error = %v", err)
		}

		_, err = loader.LoadCatalog("../etc", ".tex")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadCatalog() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_LoadCatalog(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		format string
		ext    string
		letter bool
	}{
		{"latex", ".tex", true},
		{"html", ".html", false},
		{"markdown", ".md", false},
		{"plaintext", ".txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			cat, err := loader.LoadCatalog(tt.format, tt.ext)
			if err != nil {
				t.Fatalf("LoadCatalog() error = %v", err)
			}
			if cat.Base == "" {
				t.Error("Base is empty")
			}
			if cat.HasLetter() != tt.letter {
				t.Errorf("HasLetter() = %v, want %v", cat.HasLetter(), tt.letter)
			}
			for _, name := range []string{DefaultLayoutName, "summary", "list", "columns", "experience", "education", "publications"} {
				if _, ok := cat.Layouts[name]; !ok {
					t.Errorf("layout %q missing", name)
				}
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadCatalog("rtf", ".rtf")
		if !errors.Is(err, ErrCatalogNotFound) {
			t.Errorf("LoadCatalog() error = %v, want ErrCatalogNotFound", err)
		}
	})
}
