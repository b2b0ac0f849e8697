// Package distribute places generated files into the output tree.
//
// The primary document carries a sentinel prefix in its file name; it is
// copied to the output root with the prefix removed. Every other file is a
// per-business variant and lands in the variants sub-directory unchanged.
package distribute

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-resumegen/internal/fileutil"
)

// ErrNoRoot indicates Options.Root was left empty.
var ErrNoRoot = errors.New("output root not set")

// DefaultVariantsDir is the sub-directory holding business variants.
const DefaultVariantsDir = "businesses"

// Options configures Distribute.
type Options struct {
	Sentinel    string       // File name prefix marking the primary document
	Root        string       // Output root directory
	VariantsDir string       // Sub-directory of Root for variants
	Logger      *slog.Logger // Optional; defaults to slog.Default()
}

// Placement records where one generated file was copied.
type Placement struct {
	Source  string
	Target  string
	Primary bool
}

// Plan computes the destination of every file without touching the disk.
func Plan(files []string, opts Options) ([]Placement, error) {
	if opts.Root == "" {
		return nil, ErrNoRoot
	}
	variants := opts.VariantsDir
	if variants == "" {
		variants = DefaultVariantsDir
	}

	out := make([]Placement, 0, len(files))
	for _, f := range files {
		name, primary := fileutil.StripPrefix(f, opts.Sentinel)
		target := filepath.Join(opts.Root, variants, name)
		if primary {
			target = filepath.Join(opts.Root, name)
		}
		out = append(out, Placement{Source: f, Target: target, Primary: primary})
	}
	return out, nil
}

// Distribute copies files into the output tree. The first I/O failure
// aborts and is returned; files copied before it stay in place.
func Distribute(files []string, opts Options) ([]Placement, error) {
	plan, err := Plan(files, opts)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for i, p := range plan {
		if err := fileutil.CopyFileAtomic(p.Source, p.Target); err != nil {
			return plan[:i], fmt.Errorf("distributing %s: %w", filepath.Base(p.Source), err)
		}
		logger.Debug("distributed", slog.String("file", p.Source), slog.String("target", p.Target))
	}
	return plan, nil
}
