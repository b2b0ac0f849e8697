package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/alnah/go-resumegen/internal/assets"
)

// Sentinel errors for template rendering.
var (
	ErrTemplateParse    = errors.New("layout template parsing failed")
	ErrTemplateRender   = errors.New("layout template rendering failed")
	ErrMissingItems     = errors.New("document has no items for section")
	ErrNoLetterTemplate = errors.New("format has no letter template")
)

// sectionSpacer separates rendered sections in the document body.
const sectionSpacer = "\n\n"

// Template names inside a Renderer's set. Section layouts are namespaced so
// they cannot collide with the base and letter templates.
const (
	baseTemplate   = "base"
	letterTemplate = "letter"
	layoutPrefix   = "layout/"
)

// Section is a document's request to render one block of content.
type Section struct {
	Tag       string   // Document key holding the items
	ShowTitle bool     // Bind title for the layout
	Title     string   // Heading text, used only when ShowTitle
	Types     []string // Declared layout candidates, nil when absent
}

// RenderOptions configures a Renderer for one format.
type RenderOptions struct {
	Format        string           // Format name, used in error messages
	LeftDelim     string           // Action delimiters; empty means "{{"
	RightDelim    string           // Action delimiters; empty means "}}"
	Namespace     string           // Prefix marking format-specific layout types
	DefaultLayout string           // Fallback layout, must exist in the catalog
	PairedLayouts []string         // Layouts that receive Pair-ed items
	Funcs         template.FuncMap // Extra functions merged over the base set
}

// Renderer renders sections and documents with one format's layouts.
type Renderer struct {
	format    string
	tmpl      *template.Template
	resolver  *TypeResolver
	paired    map[string]bool
	hasLetter bool
}

// NewRenderer parses every template of cat with the configured delimiters.
// Missing bindings are execution errors (missingkey=error).
// Returns ErrMissingDefaultLayout or ErrTemplateParse on bad configuration.
func NewRenderer(opts RenderOptions, cat *assets.Catalog) (*Renderer, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: %s: nil catalog", ErrTemplateParse, opts.Format)
	}

	resolver, err := NewTypeResolver(cat.LayoutNames(), opts.DefaultLayout, opts.Namespace)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Format, err)
	}

	funcs := baseFuncs()
	for name, fn := range opts.Funcs {
		funcs[name] = fn
	}

	root := template.New(opts.Format).
		Delims(opts.LeftDelim, opts.RightDelim).
		Option("missingkey=error").
		Funcs(funcs)

	parse := func(name, content string) error {
		if _, err := root.New(name).Parse(content); err != nil {
			return fmt.Errorf("%w: %s/%s: %v", ErrTemplateParse, opts.Format, name, err)
		}
		return nil
	}

	if err := parse(baseTemplate, cat.Base); err != nil {
		return nil, err
	}
	if cat.HasLetter() {
		if err := parse(letterTemplate, cat.Letter); err != nil {
			return nil, err
		}
	}
	for _, name := range cat.LayoutNames() {
		if err := parse(layoutPrefix+name, cat.Layouts[name]); err != nil {
			return nil, err
		}
	}

	paired := make(map[string]bool, len(opts.PairedLayouts))
	for _, p := range opts.PairedLayouts {
		paired[p] = true
	}

	return &Renderer{
		format:    opts.Format,
		tmpl:      root,
		resolver:  resolver,
		paired:    paired,
		hasLetter: cat.HasLetter(),
	}, nil
}

// Resolver exposes the section type resolver of this format.
func (r *Renderer) Resolver() *TypeResolver {
	return r.resolver
}

// HasLetter reports whether RenderLetter can be used.
func (r *Renderer) HasLetter() bool {
	return r.hasLetter
}

// RenderSection renders one section against doc.
// Bindings: items, theme, type, show_title and, when shown, title.
func (r *Renderer) RenderSection(sec Section, doc map[string]any) (string, error) {
	items, ok := doc[sec.Tag]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingItems, sec.Tag)
	}

	layout := r.resolver.Resolve(sec.Tag, sec.Types)
	if r.paired[layout] {
		if list, ok := items.([]any); ok {
			items = Pair(list)
		}
	}

	bindings := map[string]any{
		"items":      items,
		"type":       layout,
		"show_title": sec.ShowTitle,
	}
	if theme, ok := doc["theme"]; ok {
		bindings["theme"] = theme
	}
	if sec.ShowTitle {
		bindings["title"] = sec.Title
	}

	out, err := r.execute(layoutPrefix+layout, bindings)
	if err != nil {
		return "", fmt.Errorf("section %q: %w", sec.Tag, err)
	}
	return out, nil
}

// RenderBody renders every section in order, trims trailing whitespace from
// each and joins them with a blank line.
func (r *Renderer) RenderBody(sections []Section, doc map[string]any) (string, error) {
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		out, err := r.RenderSection(sec, doc)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimRight(out, " \t\r\n"))
	}
	return strings.Join(parts, sectionSpacer), nil
}

// RenderDocument builds the body from sections and renders the base template
// with every field of doc plus body. doc is not modified.
func (r *Renderer) RenderDocument(sections []Section, doc map[string]any) (string, error) {
	body, err := r.RenderBody(sections, doc)
	if err != nil {
		return "", err
	}

	bindings := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		bindings[k] = v
	}
	bindings["body"] = body

	return r.RenderBase(bindings)
}

// RenderBase renders the base template with bindings as-is.
func (r *Renderer) RenderBase(bindings map[string]any) (string, error) {
	return r.execute(baseTemplate, bindings)
}

// RenderLetter renders the letter template with bindings.
// Returns ErrNoLetterTemplate if the catalog has none.
func (r *Renderer) RenderLetter(bindings map[string]any) (string, error) {
	if !r.hasLetter {
		return "", fmt.Errorf("%w: %s", ErrNoLetterTemplate, r.format)
	}
	return r.execute(letterTemplate, bindings)
}

func (r *Renderer) execute(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("%w: %s/%s: %v", ErrTemplateRender, r.format, strings.TrimPrefix(name, layoutPrefix), err)
	}
	return buf.String(), nil
}
