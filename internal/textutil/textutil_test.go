package textutil

import "testing"

// ---------------------------------------------------------------------------
// TestIdentity - derive short file identity from a full name
// ---------------------------------------------------------------------------

func TestIdentity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"first and last", "Jane Doe", "jdoe"},
		{"middle name ignored", "Jane Q. Doe", "jdoe"},
		{"diacritics removed", "Élise Brontë", "ebronte"},
		{"single word", "Cher", "cher"},
		{"extra spaces", "  Jane   Doe  ", "jdoe"},
		{"punctuation stripped", "Jean-Luc O'Neil", "joneil"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Identity(tt.in); got != tt.want {
				t.Errorf("Identity(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSlug - file-name fragments
// ---------------------------------------------------------------------------

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme-corp"},
		{"Café Noir!", "cafe-noir"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"already-slugged", "already-slugged"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTitleCase - section keys to headings
// ---------------------------------------------------------------------------

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"experience", "Experience"},
		{"work_experience", "Work Experience"},
		{"side-projects", "Side Projects"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			if got := TitleCase(tt.in); got != tt.want {
				t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFold - diacritics and case
// ---------------------------------------------------------------------------

func TestFold(t *testing.T) {
	t.Parallel()

	if got := Fold("ÉLISE Brontë"); got != "elise bronte" {
		t.Errorf("Fold() = %q, want %q", got, "elise bronte")
	}
}
