// Package dateutil resolves the "updated" stamp shown in rendered documents.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is given without a format.
const DefaultDateFormat = "MMMM YYYY"

// dateTokens maps tokens to Go layout fragments, longest first so that
// "MMMM" wins over "MM".
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets are named shortcuts usable as "auto:<preset>".
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"month":    "MMMM YYYY",
}

// Layout converts a token format such as "MMMM YYYY" to a Go time layout.
// Text in brackets is copied literally ("[Updated] YYYY"); any other
// character outside a token is kept as-is.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket in %q", ErrInvalidDateFormat, format)
			}
			b.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}
		if tok, goFmt, ok := matchToken(rest); ok {
			b.WriteString(goFmt)
			rest = rest[len(tok):]
			continue
		}
		b.WriteByte(rest[0])
		rest = rest[1:]
	}
	return b.String(), nil
}

func matchToken(s string) (string, string, bool) {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			return t.token, t.goFmt, true
		}
	}
	return "", "", false
}

// Resolve turns a configured "updated" value into display text:
//   - "auto" formats now with DefaultDateFormat
//   - "auto:FORMAT" formats now with FORMAT, or with a named preset
//   - anything else is returned unchanged
func Resolve(value string, now time.Time) (string, error) {
	head, format, hasFormat := strings.Cut(value, ":")
	if !strings.EqualFold(head, "auto") {
		return value, nil
	}
	if !hasFormat {
		format = DefaultDateFormat
	} else if preset, ok := Presets[strings.ToLower(format)]; ok {
		format = preset
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}
