package pipeline

import (
	"fmt"
	"reflect"
	"strings"
	"text/template"

	"github.com/alnah/go-resumegen/internal/textutil"
)

// baseFuncs are available to every layout regardless of format.
func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"isList": isList,
		"isMap":  isMap,
		"join":   join,
		"inc":    func(i int) int { return i + 1 },
		"upper":  func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
		"lower":  func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
		"title":  func(v any) string { return textutil.TitleCase(fmt.Sprint(v)) },
	}
}

func isList(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isMap(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Map
}

// join formats each element of a list with %v and joins them with sep.
// Non-list values are formatted as-is.
func join(v any, sep string) string {
	if !isList(v) {
		return fmt.Sprint(v)
	}
	rv := reflect.ValueOf(v)
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return strings.Join(parts, sep)
}
