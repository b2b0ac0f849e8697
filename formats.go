package resumegen

import (
	"errors"
	"fmt"
	"slices"
	"text/template"

	"github.com/alnah/go-resumegen/internal/assets"
	"github.com/alnah/go-resumegen/internal/docvalue"
	"github.com/alnah/go-resumegen/internal/hints"
	"github.com/alnah/go-resumegen/internal/pipeline"
)

// Format describes one output target.
type Format struct {
	Name        string              // Identifier, also the layout directory name
	Ext         string              // Extension of generated files and layouts
	LeftDelim   string              // Template action delimiters
	RightDelim  string              // Template action delimiters
	Namespace   string              // Prefix of format-specific section types
	Rules       []pipeline.RuleSpec // Substitutions applied to document text, in order
	Typeset     bool                // Generated sources are compiled
	ArtifactExt string              // Extension of the compiled artifact, Typeset only

	funcs func() template.FuncMap
}

// pairedLayouts receive their items as {first, second} groups.
var pairedLayouts = []string{"columns"}

// textRules turn LaTeX inline markup into plain text with light emphasis.
var textRules = []pipeline.RuleSpec{
	{Pattern: `\\ `, Replacement: " "},
	{Pattern: `\\textbf\{([^}]*)\}`, Replacement: "**${1}**"},
	{Pattern: `\\textit\{([^}]*)\}`, Replacement: "*${1}*"},
	{Pattern: `\\LaTeX`, Replacement: "LaTeX"},
	{Pattern: `\\TeX`, Replacement: "TeX"},
	{Pattern: `---`, Replacement: "-"},
	{Pattern: `--`, Replacement: "-"},
	{Pattern: "``([^']*)''", Replacement: `"${1}"`},
	{Pattern: `\\%`, Replacement: "%"},
}

var htmlRules = []pipeline.RuleSpec{
	{Pattern: `\\ `, Replacement: "&nbsp;"},
	{Pattern: `\\textbf\{([^}]*)\}`, Replacement: "<strong>${1}</strong>"},
	{Pattern: `\\textit\{([^}]*)\}`, Replacement: "<em>${1}</em>"},
	{Pattern: `\\LaTeX`, Replacement: "LaTeX"},
	{Pattern: `\\TeX`, Replacement: "TeX"},
	{Pattern: `---`, Replacement: "&mdash;"},
	{Pattern: `--`, Replacement: "&ndash;"},
	{Pattern: "``([^']*)''", Replacement: `"${1}"`},
	{Pattern: `\\%`, Replacement: "%"},
}

var builtinFormats = []Format{
	{
		Name:        "latex",
		Ext:         ".tex",
		LeftDelim:   "<<",
		RightDelim:  ">>",
		Namespace:   "latex",
		Typeset:     true,
		ArtifactExt: ".pdf",
	},
	{
		Name:       "html",
		Ext:        ".html",
		LeftDelim:  "{{",
		RightDelim: "}}",
		Namespace:  "html",
		Rules:      htmlRules,
		funcs: func() template.FuncMap {
			return template.FuncMap{"markdown": pipeline.NewMarkdownConverter().ToHTML}
		},
	},
	{
		Name:       "markdown",
		Ext:        ".md",
		LeftDelim:  "{{",
		RightDelim: "}}",
		Namespace:  "markdown",
		Rules:      textRules,
	},
	{
		Name:       "plaintext",
		Ext:        ".txt",
		LeftDelim:  "{{",
		RightDelim: "}}",
		Namespace:  "plaintext",
		Rules:      textRules,
	},
}

// Formats returns the built-in formats in their canonical order.
func Formats() []Format {
	return slices.Clone(builtinFormats)
}

// FormatNames returns the names of the built-in formats.
func FormatNames() []string {
	names := make([]string, len(builtinFormats))
	for i, f := range builtinFormats {
		names[i] = f.Name
	}
	return names
}

// FormatByName returns the built-in format called name.
func FormatByName(name string) (Format, error) {
	for _, f := range builtinFormats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q%s", ErrUnknownFormat, name, hints.ForUnknownFormat(FormatNames()))
}

// FormatContext is a format ready to render: rules compiled and layouts
// parsed. It holds no mutable state and is safe to reuse across runs.
type FormatContext struct {
	Format
	rules    []pipeline.Rule
	renderer *pipeline.Renderer
}

// NewFormatContext compiles f's rules and parses its layout catalog from loader.
// defaultLayout must exist in the catalog.
func NewFormatContext(f Format, loader assets.LayoutLoader, defaultLayout string) (*FormatContext, error) {
	rules, err := pipeline.CompileRules(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name, err)
	}

	cat, err := loader.LoadCatalog(f.Name, f.Ext)
	if errors.Is(err, assets.ErrCatalogNotFound) || errors.Is(err, assets.ErrIncompleteCatalog) {
		return nil, fmt.Errorf("loading %s layouts: %w%s", f.Name, err, hints.ForLayoutNotFound(nil))
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s layouts: %w", f.Name, err)
	}

	var funcs template.FuncMap
	if f.funcs != nil {
		funcs = f.funcs()
	}

	renderer, err := pipeline.NewRenderer(pipeline.RenderOptions{
		Format:        f.Name,
		LeftDelim:     f.LeftDelim,
		RightDelim:    f.RightDelim,
		Namespace:     f.Namespace,
		DefaultLayout: defaultLayout,
		PairedLayouts: pairedLayouts,
		Funcs:         funcs,
	}, cat)
	if errors.Is(err, pipeline.ErrMissingDefaultLayout) {
		return nil, fmt.Errorf("%w%s", err, hints.ForLayoutNotFound(cat.LayoutNames()))
	}
	if err != nil {
		return nil, err
	}

	return &FormatContext{Format: f, rules: rules, renderer: renderer}, nil
}

// Layouts returns the section layouts available to this format.
func (fc *FormatContext) Layouts() []string {
	return fc.renderer.Resolver().Known()
}

// HasLetter reports whether business variants can be rendered.
func (fc *FormatContext) HasLetter() bool {
	return fc.renderer.HasLetter()
}

// Transcode returns a format-private copy of fields as plain Go values.
func (fc *FormatContext) Transcode(fields docvalue.Mapping) map[string]any {
	out, _ := docvalue.Native(pipeline.Transcode(fields, fc.rules)).(map[string]any)
	return out
}

// RenderDocument renders doc with this format's layouts.
func (fc *FormatContext) RenderDocument(doc *Document) (string, error) {
	return fc.renderer.RenderDocument(doc.Sections, fc.Transcode(doc.Fields))
}

// RenderVariant renders the document addressed to one business: the letter
// becomes the body and business fields override document fields.
func (fc *FormatContext) RenderVariant(doc *Document, b Business) (string, error) {
	bindings := fc.Transcode(doc.Fields)
	for k, v := range fc.Transcode(b.Fields) {
		bindings[k] = v
	}
	if _, ok := bindings["company"]; !ok {
		bindings["company"] = b.Key
	}

	letter, err := fc.renderer.RenderLetter(bindings)
	if err != nil {
		return "", fmt.Errorf("business %q: %w", b.Key, err)
	}
	bindings["body"] = letter

	out, err := fc.renderer.RenderBase(bindings)
	if err != nil {
		return "", fmt.Errorf("business %q: %w", b.Key, err)
	}
	return out, nil
}
