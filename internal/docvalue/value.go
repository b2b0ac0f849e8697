// Package docvalue models decoded document data as a closed sum type.
//
// A Value is exactly one of String, Mapping, Sequence or Scalar. Scalar wraps
// everything that is neither text nor a container (numbers, booleans, null,
// timestamps), so consumers can switch over four cases without reflecting on
// arbitrary decoder output.
package docvalue

import "fmt"

// Value is a node of a decoded document tree.
type Value interface {
	isValue()
}

// String is a text leaf.
type String string

// Mapping is a keyed container. Keys are always strings.
type Mapping map[string]Value

// Sequence is an ordered container.
type Sequence []Value

// Scalar is any non-text leaf. V is nil for YAML null.
type Scalar struct {
	V any
}

func (String) isValue()   {}
func (Mapping) isValue()  {}
func (Sequence) isValue() {}
func (Scalar) isValue()   {}

// FromAny converts decoder output (maps, slices, strings, numbers...) into a
// Value tree. Maps with non-string keys have their keys formatted with %v.
func FromAny(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case string:
		return String(t)
	case map[string]any:
		m := make(Mapping, len(t))
		for k, child := range t {
			m[k] = FromAny(child)
		}
		return m
	case map[any]any:
		m := make(Mapping, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = FromAny(child)
		}
		return m
	case []any:
		s := make(Sequence, len(t))
		for i, child := range t {
			s[i] = FromAny(child)
		}
		return s
	case []string:
		s := make(Sequence, len(t))
		for i, child := range t {
			s[i] = String(child)
		}
		return s
	default:
		return Scalar{V: v}
	}
}

// Native converts a Value tree back to plain Go values suitable for
// text/template: map[string]any, []any, string and the wrapped scalars.
func Native(v Value) any {
	switch t := v.(type) {
	case String:
		return string(t)
	case Mapping:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[k] = Native(child)
		}
		return m
	case Sequence:
		s := make([]any, len(t))
		for i, child := range t {
			s[i] = Native(child)
		}
		return s
	case Scalar:
		return t.V
	default:
		return nil
	}
}

// Clone returns a deep copy of a Mapping. Leaves are immutable and shared.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = clone(v)
	}
	return out
}

func clone(v Value) Value {
	switch t := v.(type) {
	case Mapping:
		return t.Clone()
	case Sequence:
		s := make(Sequence, len(t))
		for i, child := range t {
			s[i] = clone(child)
		}
		return s
	default:
		return v
	}
}

// Text returns the string held by key, and false when the key is missing
// or does not hold a String.
func (m Mapping) Text(key string) (string, bool) {
	s, ok := m[key].(String)
	return string(s), ok
}

// IsEmpty reports whether v is absent, null, an empty string or an empty
// container.
func IsEmpty(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case String:
		return t == ""
	case Mapping:
		return len(t) == 0
	case Sequence:
		return len(t) == 0
	case Scalar:
		return t.V == nil
	default:
		return false
	}
}
