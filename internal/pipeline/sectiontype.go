package pipeline

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrMissingDefaultLayout indicates the fallback layout is not in the catalog.
var ErrMissingDefaultLayout = errors.New("default layout missing from catalog")

// typeStrategy proposes a layout type for a section, or reports no match.
type typeStrategy func(r *TypeResolver, tag, declared string) (string, bool)

// typeStrategies are tried in order; the first match wins.
var typeStrategies = []typeStrategy{
	namespacedType,
	declaredType,
	tagType,
}

// TypeResolver picks the layout that renders a section in one format.
type TypeResolver struct {
	known       map[string]bool
	defaultType string
	namespace   string
}

// NewTypeResolver builds a resolver over the known layout names.
// Returns ErrMissingDefaultLayout if defaultType is not known, since the
// resolver must always be able to fall back to it.
func NewTypeResolver(known []string, defaultType, namespace string) (*TypeResolver, error) {
	set := make(map[string]bool, len(known))
	for _, k := range known {
		set[k] = true
	}
	if !set[defaultType] {
		return nil, fmt.Errorf("%w: %q", ErrMissingDefaultLayout, defaultType)
	}
	return &TypeResolver{known: set, defaultType: defaultType, namespace: namespace}, nil
}

// Resolve returns the layout type for a section with the given tag and
// declared type candidates. A bare declared string is a one-element slice;
// nil or empty means no declaration. The result is always a known layout.
func (r *TypeResolver) Resolve(tag string, declared []string) string {
	candidate := r.selectCandidate(declared)
	for _, strategy := range typeStrategies {
		if t, ok := strategy(r, tag, candidate); ok {
			if r.known[t] {
				return t
			}
			break
		}
	}
	return r.defaultType
}

// Known returns the sorted layout names this resolver accepts.
func (r *TypeResolver) Known() []string {
	names := make([]string, 0, len(r.known))
	for k := range r.known {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Default returns the fallback layout name.
func (r *TypeResolver) Default() string {
	return r.defaultType
}

// selectCandidate prefers the first namespaced candidate, else the first one.
func (r *TypeResolver) selectCandidate(declared []string) string {
	if len(declared) == 0 {
		return ""
	}
	for _, d := range declared {
		if r.hasNamespace(d) {
			return d
		}
	}
	return declared[0]
}

func (r *TypeResolver) hasNamespace(s string) bool {
	return r.namespace != "" && strings.HasPrefix(s, r.namespace)
}

// namespacedType strips "<namespace><sep>" from a format-specific declaration.
func namespacedType(r *TypeResolver, _, declared string) (string, bool) {
	if !r.hasNamespace(declared) {
		return "", false
	}
	rest := declared[len(r.namespace):]
	if rest == "" {
		return "", true
	}
	_, size := utf8.DecodeRuneInString(rest)
	return rest[size:], true
}

func declaredType(_ *TypeResolver, _, declared string) (string, bool) {
	return declared, declared != ""
}

func tagType(r *TypeResolver, tag, declared string) (string, bool) {
	if declared != "" || !r.known[tag] {
		return "", false
	}
	return tag, true
}
