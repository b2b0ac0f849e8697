package resumegen

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/alnah/go-resumegen/internal/docvalue"
	"github.com/alnah/go-resumegen/internal/pipeline"
	"github.com/alnah/go-resumegen/internal/textutil"
	"github.com/alnah/go-resumegen/internal/yamlutil"
)

// PublicationsTag is the section tag fed from the publications collection.
const PublicationsTag = "publications"

// Document keys with a fixed meaning.
const (
	keyName     = "name"
	keyTheme    = "theme"
	keySections = "sections"
	keyIdentity = "identity"
	keyUpdated  = "updated"
)

// Document is a parsed document description.
type Document struct {
	Name     string             // Base name used in generated file names, e.g. "resume"
	Identity string             // Short owner identity, e.g. "jdoe"
	Fields   docvalue.Mapping   // Every top-level key, bound in templates
	Sections []pipeline.Section // Ordered section references
}

// Business is one recipient of a document variant.
type Business struct {
	Key    string
	Fields docvalue.Mapping
}

// LoadDocument reads and parses a document YAML file. The file's base name
// without extension names the generated files.
func LoadDocument(path string) (*Document, error) {
	var raw map[string]any
	if err := yamlutil.ReadFile(path, &raw); err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := ParseDocument(name, docvalue.FromAny(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument validates v and extracts the section list and identity.
// v is copied; later changes to the Document do not reach it.
func ParseDocument(name string, v docvalue.Value) (*Document, error) {
	fields, ok := v.(docvalue.Mapping)
	if !ok {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrInvalidDocument)
	}
	fields = fields.Clone()

	for _, key := range []string{keyName, keyTheme} {
		if s, ok := fields.Text(key); !ok || strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%w: %q must be a non-empty string", ErrMissingField, key)
		}
	}
	rawSections, ok := fields[keySections].(docvalue.Sequence)
	if !ok {
		return nil, fmt.Errorf("%w: %q must be a list", ErrMissingField, keySections)
	}

	sections := make([]pipeline.Section, 0, len(rawSections))
	for i, rs := range rawSections {
		sec, err := parseSection(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: sections[%d]: %v", ErrInvalidDocument, i, err)
		}
		sections = append(sections, sec)
	}

	identity, _ := fields.Text(keyIdentity)
	if identity == "" {
		fullName, _ := fields.Text(keyName)
		identity = textutil.Identity(fullName)
	}
	if identity == "" {
		return nil, fmt.Errorf("%w: cannot derive identity from name", ErrInvalidDocument)
	}

	return &Document{Name: name, Identity: identity, Fields: fields, Sections: sections}, nil
}

// parseSection accepts a bare tag or a {tag, show_title, title, type} mapping.
func parseSection(v docvalue.Value) (pipeline.Section, error) {
	switch t := v.(type) {
	case docvalue.String:
		if t == "" {
			return pipeline.Section{}, fmt.Errorf("empty tag")
		}
		tag := string(t)
		return pipeline.Section{Tag: tag, ShowTitle: true, Title: textutil.TitleCase(tag)}, nil

	case docvalue.Mapping:
		tag, ok := t.Text("tag")
		if !ok || tag == "" {
			return pipeline.Section{}, fmt.Errorf("missing tag")
		}
		sec := pipeline.Section{Tag: tag, ShowTitle: true}

		if st, present := t["show_title"]; present {
			sc, isScalar := st.(docvalue.Scalar)
			b, isBool := sc.V.(bool)
			if !isScalar || !isBool {
				return pipeline.Section{}, fmt.Errorf("%s: show_title must be a boolean", tag)
			}
			sec.ShowTitle = b
		}
		if sec.ShowTitle {
			sec.Title = textutil.TitleCase(tag)
			if title, ok := t.Text("title"); ok {
				sec.Title = title
			}
		}

		types, err := parseTypes(t["type"])
		if err != nil {
			return pipeline.Section{}, fmt.Errorf("%s: %v", tag, err)
		}
		sec.Types = types
		return sec, nil

	default:
		return pipeline.Section{}, fmt.Errorf("must be a tag or a mapping")
	}
}

// parseTypes turns a declared type (absent, string or list of strings)
// into candidates. Absent yields nil.
func parseTypes(v docvalue.Value) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case docvalue.Scalar:
		if t.V == nil {
			return nil, nil
		}
	case docvalue.String:
		return []string{string(t)}, nil
	case docvalue.Sequence:
		types := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(docvalue.String)
			if !ok {
				return nil, fmt.Errorf("type list must hold strings")
			}
			types = append(types, string(s))
		}
		return types, nil
	}
	return nil, fmt.Errorf("type must be a string or a list of strings")
}

// ApplyPublications fills the publications section from pubs when the
// document has no inline items for it. With nothing to show, the section
// is dropped from the list.
func (d *Document) ApplyPublications(pubs docvalue.Value) {
	if !slices.ContainsFunc(d.Sections, isPublications) {
		return
	}
	if !docvalue.IsEmpty(d.Fields[PublicationsTag]) {
		return
	}
	if !docvalue.IsEmpty(pubs) {
		d.Fields[PublicationsTag] = pubs
		return
	}
	d.Sections = slices.DeleteFunc(d.Sections, isPublications)
}

func isPublications(s pipeline.Section) bool {
	return s.Tag == PublicationsTag
}

// SetUpdated binds the display text of the last update.
func (d *Document) SetUpdated(text string) {
	d.Fields[keyUpdated] = docvalue.String(text)
}

// FileName returns the generated file name of the primary rendition.
func (d *Document) FileName(sentinel, ext string) string {
	return sentinel + d.Identity + "_" + d.Name + ext
}

// VariantFileName returns the generated file name of a business variant.
func (d *Document) VariantFileName(b Business, ext string) string {
	return d.Identity + "_" + textutil.Slug(b.Key) + ext
}

// LoadBusinesses reads a mapping of business key to fields.
// Records are returned sorted by key.
func LoadBusinesses(path string) ([]Business, error) {
	var raw map[string]any
	if err := yamlutil.ReadFile(path, &raw); err != nil {
		return nil, err
	}
	businesses, err := ParseBusinesses(docvalue.FromAny(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return businesses, nil
}

// ParseBusinesses validates a business records mapping.
func ParseBusinesses(v docvalue.Value) ([]Business, error) {
	if docvalue.IsEmpty(v) {
		return nil, nil
	}
	m, ok := v.(docvalue.Mapping)
	if !ok {
		return nil, fmt.Errorf("%w: businesses must be a mapping", ErrInvalidAuxiliary)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Business, 0, len(keys))
	slugs := make(map[string]string, len(keys))
	for _, k := range keys {
		fields, ok := m[k].(docvalue.Mapping)
		if !ok {
			return nil, fmt.Errorf("%w: business %q must be a mapping", ErrInvalidAuxiliary, k)
		}
		slug := textutil.Slug(k)
		if slug == "" {
			return nil, fmt.Errorf("%w: business key %q has no usable characters", ErrInvalidAuxiliary, k)
		}
		// Variant file names are built from the slug.
		if prev, dup := slugs[slug]; dup {
			return nil, fmt.Errorf("%w: business keys %q and %q both map to %q", ErrInvalidAuxiliary, prev, k, slug)
		}
		slugs[slug] = k
		out = append(out, Business{Key: k, Fields: fields.Clone()})
	}
	return out, nil
}

// LoadPublications reads a publications collection. It must be a list.
func LoadPublications(path string) (docvalue.Value, error) {
	var raw any
	if err := yamlutil.ReadFile(path, &raw); err != nil {
		return nil, err
	}
	v := docvalue.FromAny(raw)
	switch v.(type) {
	case docvalue.Sequence:
		return v, nil
	case docvalue.Scalar:
		if docvalue.IsEmpty(v) {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("%w: %s: publications must be a list", ErrInvalidAuxiliary, path)
}
