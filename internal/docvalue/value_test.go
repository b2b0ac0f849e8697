package docvalue_test

import (
	"reflect"
	"testing"

	"github.com/alnah/go-resumegen/internal/docvalue"
)

// ---------------------------------------------------------------------------
// TestFromAny - Decoder output to Value tree
// ---------------------------------------------------------------------------

func TestFromAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want docvalue.Value
	}{
		{name: "string", in: "hi", want: docvalue.String("hi")},
		{name: "int", in: 42, want: docvalue.Scalar{V: 42}},
		{name: "bool", in: true, want: docvalue.Scalar{V: true}},
		{name: "null", in: nil, want: docvalue.Scalar{V: nil}},
		{
			name: "nested",
			in: map[string]any{
				"items": []any{"a", map[string]any{"year": 2020}},
			},
			want: docvalue.Mapping{
				"items": docvalue.Sequence{
					docvalue.String("a"),
					docvalue.Mapping{"year": docvalue.Scalar{V: 2020}},
				},
			},
		},
		{
			name: "non-string keys",
			in:   map[any]any{1: "one"},
			want: docvalue.Mapping{"1": docvalue.String("one")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := docvalue.FromAny(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromAny(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNative - Round trip back to template-friendly values
// ---------------------------------------------------------------------------

func TestNative(t *testing.T) {
	t.Parallel()

	in := map[string]any{
		"name":  "Jane",
		"years": []any{2019, 2020},
		"meta":  map[string]any{"draft": false},
	}

	got := docvalue.Native(docvalue.FromAny(in))
	if !reflect.DeepEqual(got, in) {
		t.Errorf("Native(FromAny(in)) = %#v, want %#v", got, in)
	}
}

// ---------------------------------------------------------------------------
// TestMappingClone - Deep copy independence
// ---------------------------------------------------------------------------

func TestMappingClone(t *testing.T) {
	t.Parallel()

	orig := docvalue.Mapping{
		"list": docvalue.Sequence{docvalue.String("a")},
		"map":  docvalue.Mapping{"k": docvalue.String("v")},
	}
	cp := orig.Clone()
	cp["list"].(docvalue.Sequence)[0] = docvalue.String("changed")
	cp["map"].(docvalue.Mapping)["k"] = docvalue.String("changed")

	if orig["list"].(docvalue.Sequence)[0] != docvalue.String("a") {
		t.Error("Clone shares sequence storage with original")
	}
	if orig["map"].(docvalue.Mapping)["k"] != docvalue.String("v") {
		t.Error("Clone shares mapping storage with original")
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   docvalue.Value
		want bool
	}{
		{"nil", nil, true},
		{"empty string", docvalue.String(""), true},
		{"text", docvalue.String("x"), false},
		{"empty sequence", docvalue.Sequence{}, true},
		{"sequence", docvalue.Sequence{docvalue.String("x")}, false},
		{"empty mapping", docvalue.Mapping{}, true},
		{"null scalar", docvalue.Scalar{}, true},
		{"zero number", docvalue.Scalar{V: 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := docvalue.IsEmpty(tt.in); got != tt.want {
				t.Errorf("IsEmpty(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
