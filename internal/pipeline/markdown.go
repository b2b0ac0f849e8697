package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrMarkdownConversion indicates a Markdown fragment failed to convert.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// MarkdownConverter turns Markdown fragments embedded in document fields
// into HTML fragments. Exposed to html layouts as the "markdown" function.
type MarkdownConverter struct {
	md goldmark.Markdown
}

// NewMarkdownConverter creates a converter with GFM extensions and syntax highlighting.
func NewMarkdownConverter() *MarkdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Document fields have already been through the html substitution
			// rules, which emit inline tags such as <strong>.
			html.WithUnsafe(),
		),
	)
	return &MarkdownConverter{md: md}
}

// ToHTML converts a Markdown fragment. A single-paragraph result is
// returned without its <p> wrapper so it can sit inline in a layout.
func (c *MarkdownConverter) ToHTML(content any) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(fmt.Sprint(content)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownConversion, err)
	}
	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out, nil
}
