// Package textutil provides name and heading transformations shared by the
// document loader and layout functions.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold removes diacritics and lowercases s ("Élise" -> "elise").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Identity derives the short file identity from a full name: the first
// letter of the first word followed by the last word, diacritics removed,
// lowercased, restricted to ASCII letters and digits.
// "Jane Doe" -> "jdoe", "Élise Brontë" -> "ebronte", "Cher" -> "cher".
func Identity(name string) string {
	words := strings.Fields(Fold(name))
	if len(words) == 0 {
		return ""
	}
	if len(words) == 1 {
		return alnum(words[0])
	}
	first := alnum(words[0])
	last := alnum(words[len(words)-1])
	if first == "" {
		return last
	}
	return first[:1] + last
}

// Slug turns s into a lowercase file-name fragment. Runs of characters
// other than ASCII letters and digits collapse to a single "-".
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range Fold(s) {
		if isAlnum(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// TitleCase converts a key such as "work_experience" to "Work Experience".
func TitleCase(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Title(language.English).String(s)
}

func alnum(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlnum(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
