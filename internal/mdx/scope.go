package mdx

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ErrUndefined is returned when a reference does not resolve in a Scope.
var ErrUndefined = errors.New("undefined reference")

// Scope holds the named values a compiled body may reference.
type Scope map[string]any

// Names returns the top-level names bound in the scope, sorted.
func (s Scope) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a dotted path. After the first segment it walks string
// keyed maps, struct fields (by json tag, then field name) and slices,
// arrays and strings (numeric index or "length").
func (s Scope) Lookup(path []string) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrUndefined)
	}
	cur, ok := s[path[0]]
	if !ok {
		return nil, fmt.Errorf("%w %q (bound: %s)", ErrUndefined, path[0], strings.Join(s.Names(), ", "))
	}
	for i := 1; i < len(path); i++ {
		next, ok := member(cur, path[i])
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUndefined, strings.Join(path[:i+1], "."))
		}
		cur = next
	}
	return cur, nil
}

func member(v any, name string) (any, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Slice, reflect.Array, reflect.String:
		if name == "length" {
			return rv.Len(), true
		}
		idx, err := strconv.Atoi(name)
		if err != nil || idx < 0 || idx >= rv.Len() {
			return nil, false
		}
		return rv.Index(idx).Interface(), true
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if tag == name || (tag == "" && f.Name == name) {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// formatValue renders a scalar scope value as text.
func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x), nil
	}
	return "", fmt.Errorf("cannot render %T as text", v)
}
