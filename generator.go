package resumegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/alnah/go-resumegen/internal/assets"
	"github.com/alnah/go-resumegen/internal/compile"
	"github.com/alnah/go-resumegen/internal/config"
	"github.com/alnah/go-resumegen/internal/dateutil"
	"github.com/alnah/go-resumegen/internal/distribute"
	"github.com/alnah/go-resumegen/internal/docvalue"
	"github.com/alnah/go-resumegen/internal/fileutil"
	"github.com/alnah/go-resumegen/internal/hints"
	"github.com/alnah/go-resumegen/internal/pipeline"
)

// Log attribute keys.
const (
	LogKeyFormat   = "format"
	LogKeyFile     = "file"
	LogKeySections = "sections"
	LogKeyBusiness = "business"
)

// Generator renders a document into every configured format, compiles the
// typeset sources that changed and distributes the deliverables.
// Create with NewGenerator; a Generator can Run any number of times.
type Generator struct {
	cfg             *config.Config
	logger          *slog.Logger
	now             func() time.Time
	runner          compile.Runner
	loader          assets.LayoutLoader
	compileOverride *bool
	contexts        []*FormatContext
	compilers       map[string]*compile.Compiler // Keyed by typeset format name
}

// Result describes what one Run produced.
type Result struct {
	Sources    []string               // Every generated source, in write order
	Compiled   []string               // Typeset sources handed to the compiler
	Placements []distribute.Placement // Copies made into the output tree
}

// NewGenerator validates cfg and prepares one FormatContext per configured
// format. Configuration errors (unknown format, bad layouts, invalid rules)
// are reported here rather than during Run.
func NewGenerator(cfg *config.Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:       cfg,
		logger:    slog.Default(),
		now:       time.Now,
		compilers: make(map[string]*compile.Compiler),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.loader == nil {
		resolver, err := assets.NewAssetResolver(cfg.Layouts.Path)
		if err != nil {
			return nil, fmt.Errorf("layouts %q: %w", cfg.Layouts.Path, err)
		}
		g.loader = resolver
	}

	for _, name := range cfg.Formats {
		f, err := FormatByName(name)
		if err != nil {
			return nil, err
		}
		fc, err := NewFormatContext(f, g.loader, cfg.Layouts.Default)
		if err != nil {
			return nil, err
		}
		g.contexts = append(g.contexts, fc)

		if f.Typeset {
			g.compilers[f.Name] = compile.New(compile.Options{
				Command:     cfg.Compiler.Command,
				Engine:      cfg.Compiler.Engine,
				SourceExt:   f.Ext,
				ArtifactExt: f.ArtifactExt,
				Runner:      g.runner,
				Logger:      g.logger.With(slog.String(LogKeyFormat, f.Name)),
			})
		}
	}
	return g, nil
}

// Contexts returns the prepared formats in configured order.
func (g *Generator) Contexts() []*FormatContext {
	return g.contexts
}

func (g *Generator) compileEnabled() bool {
	if g.compileOverride != nil {
		return *g.compileOverride
	}
	return g.cfg.Compiler.Enabled
}

// Run executes the pipeline once. The context is checked between steps and
// cancels a running compiler process.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	doc, businesses, err := g.loadInputs()
	if err != nil {
		return nil, err
	}

	updated, err := dateutil.Resolve(g.cfg.Updated, g.now())
	if err != nil {
		return nil, fmt.Errorf("updated: %w", err)
	}
	doc.SetUpdated(updated)

	buildDir := g.cfg.Build.Dir
	snapshots := make(map[string]compile.Snapshot)
	for _, fc := range g.contexts {
		if !fc.Typeset {
			continue
		}
		snap, err := compile.TakeSnapshot(buildDir, fc.Ext)
		if err != nil {
			return nil, err
		}
		snapshots[fc.Name] = snap
	}

	res := &Result{}
	var deliverables []string
	typesetSources := make(map[string][]string)

	for _, fc := range g.contexts {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		paths, err := g.renderFormat(fc, doc, businesses)
		if err != nil {
			return res, err
		}
		res.Sources = append(res.Sources, paths...)
		if fc.Typeset {
			typesetSources[fc.Name] = paths
		} else {
			deliverables = append(deliverables, paths...)
		}
	}

	for _, fc := range g.contexts {
		if !fc.Typeset {
			continue
		}
		sources := typesetSources[fc.Name]
		compiler := g.compilers[fc.Name]
		if g.compileEnabled() {
			compiled, err := compiler.CompileChanged(ctx, sources, snapshots[fc.Name])
			res.Compiled = append(res.Compiled, compiled...)
			if err != nil {
				return res, err
			}
		}
		for _, src := range sources {
			if artifact := compiler.ArtifactPath(src); fileutil.FileExists(artifact) {
				deliverables = append(deliverables, artifact)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	placements, err := distribute.Distribute(deliverables, distribute.Options{
		Sentinel:    g.cfg.Build.Sentinel,
		Root:        g.cfg.Output.Dir,
		VariantsDir: g.cfg.Output.VariantsDir,
		Logger:      g.logger,
	})
	res.Placements = placements
	if err != nil {
		return res, fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}

	g.logger.Info("generation complete",
		slog.Int("sources", len(res.Sources)),
		slog.Int("compiled", len(res.Compiled)),
		slog.Int("distributed", len(res.Placements)),
	)
	return res, nil
}

// loadInputs reads the document and its optional auxiliary files and
// applies the publications substitution.
func (g *Generator) loadInputs() (*Document, []Business, error) {
	doc, err := LoadDocument(g.cfg.Input.Document)
	if err != nil {
		return nil, nil, err
	}

	var pubs docvalue.Value
	if path := g.cfg.Input.Publications; path != "" {
		if pubs, err = LoadPublications(path); err != nil {
			return nil, nil, err
		}
	}
	doc.ApplyPublications(pubs)

	var businesses []Business
	if path := g.cfg.Input.Businesses; path != "" {
		if businesses, err = LoadBusinesses(path); err != nil {
			return nil, nil, err
		}
	}
	return doc, businesses, nil
}

// renderFormat writes the primary rendition and, for typeset formats with
// a letter layout, one variant per business.
func (g *Generator) renderFormat(fc *FormatContext, doc *Document, businesses []Business) ([]string, error) {
	logger := g.logger.With(slog.String(LogKeyFormat, fc.Name))

	out, err := fc.RenderDocument(doc)
	if err != nil {
		return nil, err
	}
	primary := filepath.Join(g.cfg.Build.Dir, doc.FileName(g.cfg.Build.Sentinel, fc.Ext))
	if err := fileutil.WriteFileAtomic(primary, []byte(out)); err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	}
	logger.Debug("rendered", slog.String(LogKeyFile, primary), slog.Int(LogKeySections, len(doc.Sections)))
	paths := []string{primary}

	if !fc.Typeset || len(businesses) == 0 {
		return paths, nil
	}
	if !fc.HasLetter() {
		logger.Warn("no letter layout, skipping business variants")
		return paths, nil
	}

	for _, b := range businesses {
		out, err := fc.RenderVariant(doc, b)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(g.cfg.Build.Dir, doc.VariantFileName(b, fc.Ext))
		if err := fileutil.WriteFileAtomic(path, []byte(out)); err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
		}
		logger.Debug("rendered variant", slog.String(LogKeyBusiness, b.Key), slog.String(LogKeyFile, path))
		paths = append(paths, path)
	}
	return paths, nil
}

// IsConfigError reports whether err comes from invalid configuration
// rather than from input data or I/O.
func IsConfigError(err error) bool {
	for _, target := range []error{
		ErrUnknownFormat,
		config.ErrInvalidConfig,
		config.ErrConfigParse,
		config.ErrConfigNotFound,
		config.ErrFieldTooLong,
		assets.ErrCatalogNotFound,
		assets.ErrIncompleteCatalog,
		assets.ErrInvalidAssetName,
		assets.ErrInvalidBasePath,
		pipeline.ErrInvalidRule,
		pipeline.ErrMissingDefaultLayout,
		pipeline.ErrTemplateParse,
		dateutil.ErrInvalidDateFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
