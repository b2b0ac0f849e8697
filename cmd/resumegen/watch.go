package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-resumegen/internal/config"
	"github.com/alnah/go-resumegen/internal/fileutil"
)

// runWatchCmd generates once, then regenerates whenever an input changes.
// Generation errors are logged and watching continues until interrupted.
func runWatchCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseGenerateFlags("watch", args, printWatchUsage, env.Stderr)
	if err != nil {
		return flagErrorCode(env.Stderr, err)
	}
	if flags.debounce <= 0 {
		flags.debounce = defaultDebounce
	}

	logger, err := newLogger(env.Stderr, flags.common)
	if err != nil {
		return reportError(env.Stderr, err)
	}

	cfg, err := loadConfig(flags, positional, env)
	if err != nil {
		return reportError(env.Stderr, err)
	}

	w, err := newInputWatcher(watchTargets(cfg), flags.debounce, logger)
	if err != nil {
		return reportError(env.Stderr, err)
	}
	defer w.Close()

	rebuild := func() {
		// Config and layouts are reloaded so edits to them take effect.
		gen, err := newGenerator(flags, positional, env, logger)
		if err != nil {
			logger.Error("generation setup failed", slog.String("error", err.Error()))
			return
		}
		res, err := gen.Run(ctx)
		if err != nil {
			logger.Error("generation failed", slog.String("error", err.Error()))
			return
		}
		printResult(env.Stdout, res, flags.common.quiet)
	}

	rebuild()
	logger.Info("watching for changes", slog.Int("paths", len(w.files)+len(w.dirs)))
	w.Run(ctx, rebuild)
	return ExitSuccess
}

// watchTarget is a file or directory whose changes trigger a rebuild.
type watchTarget struct {
	path string
	dir  bool // Any change inside the directory counts
}

// watchTargets lists the inputs of cfg: document, auxiliary files, the
// config file and the custom layout directory with its format directories.
func watchTargets(cfg *config.Config) []watchTarget {
	var targets []watchTarget
	for _, f := range []string{cfg.Input.Document, cfg.Input.Businesses, cfg.Input.Publications, cfg.Path} {
		if f != "" {
			targets = append(targets, watchTarget{path: f})
		}
	}
	if root := cfg.Layouts.Path; root != "" && fileutil.DirExists(root) {
		targets = append(targets, watchTarget{path: root, dir: true})
		entries, _ := os.ReadDir(root)
		for _, e := range entries {
			if e.IsDir() {
				targets = append(targets, watchTarget{path: filepath.Join(root, e.Name()), dir: true})
			}
		}
	}
	return targets
}

// inputWatcher debounces fsnotify events on a set of files and directories.
// Files are watched through their parent directory so editors that replace
// files on save are still seen.
type inputWatcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool // Absolute file paths
	dirs     map[string]bool // Absolute directories watched as a whole
	debounce time.Duration
	logger   *slog.Logger
}

func newInputWatcher(targets []watchTarget, debounce time.Duration, logger *slog.Logger) (*inputWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &inputWatcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: debounce,
		logger:   logger,
	}

	added := make(map[string]bool)
	for _, t := range targets {
		abs, err := filepath.Abs(t.path)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", t.path, err)
		}
		dir := abs
		if t.dir {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if added[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
		added[dir] = true
	}
	return w, nil
}

// relevant reports whether ev concerns a watched input.
func (w *inputWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[name] || w.dirs[filepath.Dir(name)]
}

// Run calls onChange once per burst of relevant events, after the debounce
// window has passed without new ones. It returns when ctx is done.
func (w *inputWatcher) Run(ctx context.Context, onChange func()) {
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change detected", slog.String("file", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", slog.String("error", err.Error()))
		case <-timer.C:
			onChange()
		}
	}
}

// Close releases the underlying watcher.
func (w *inputWatcher) Close() error {
	return w.fsw.Close()
}
