package pipeline

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/alnah/go-resumegen/internal/docvalue"
)

// ErrInvalidRule indicates a substitution pattern failed to compile.
var ErrInvalidRule = errors.New("invalid substitution rule")

// RuleSpec is the uncompiled form of a substitution rule.
// Replacement uses regexp expansion syntax (${1} for the first group).
type RuleSpec struct {
	Pattern     string
	Replacement string
}

// Rule is a compiled substitution rule.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// CompileRules compiles specs in order. The first bad pattern aborts with
// ErrInvalidRule; callers treat this as a configuration error.
func CompileRules(specs []RuleSpec) ([]Rule, error) {
	rules := make([]Rule, 0, len(specs))
	for i, s := range specs {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d %q: %v", ErrInvalidRule, i, s.Pattern, err)
		}
		rules = append(rules, Rule{Pattern: re, Replacement: s.Replacement})
	}
	return rules, nil
}

// Transcode returns a copy of v with every string rewritten by rules.
// Rules run sequentially: each one sees the output of the previous one.
// Mapping keys are left untouched and v itself is never modified.
func Transcode(v docvalue.Value, rules []Rule) docvalue.Value {
	switch t := v.(type) {
	case docvalue.String:
		return docvalue.String(ApplyRules(string(t), rules))
	case docvalue.Mapping:
		out := make(docvalue.Mapping, len(t))
		for k, child := range t {
			out[k] = Transcode(child, rules)
		}
		return out
	case docvalue.Sequence:
		out := make(docvalue.Sequence, len(t))
		for i, child := range t {
			out[i] = Transcode(child, rules)
		}
		return out
	default:
		return v
	}
}

// ApplyRules runs every rule over s as a global substitution.
func ApplyRules(s string, rules []Rule) string {
	for _, r := range rules {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return s
}
