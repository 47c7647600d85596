package shapemap

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Blocked segments resolve to nil at every depth so a caller-controlled path
// string can never reach structurally dangerous properties on sources that
// originated from untrusted wire data.
var blockedSegments = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// segmentCache memoizes split segment lists per distinct path string.
// Splitting is pure and path strings repeat heavily in hot mapping loops.
var segmentCache sync.Map // map[string][]string

// CheckPath validates a dotted source path: non-empty, no empty segments.
func CheckPath(path string) error {
	if path == "" {
		return fmt.Errorf("empty source path")
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return fmt.Errorf("invalid source path %q: empty segment", path)
		}
	}
	return nil
}

// Resolve looks up a dotted path against an arbitrary source value. Missing
// keys, nil links, non-container links, and blocked segments all yield nil;
// Resolve never fails.
func Resolve(src any, path string) any {
	if src == nil || path == "" {
		return nil
	}
	if !strings.Contains(path, ".") {
		// single-segment fast path; the guard still applies here
		if _, blocked := blockedSegments[path]; blocked {
			return nil
		}
		return lookupSegment(src, path)
	}
	cur := src
	for _, seg := range pathSegments(path) {
		if cur == nil {
			return nil
		}
		if _, blocked := blockedSegments[seg]; blocked {
			return nil
		}
		cur = lookupSegment(cur, seg)
	}
	return cur
}

func pathSegments(path string) []string {
	if v, ok := segmentCache.Load(path); ok {
		return v.([]string)
	}
	segs := strings.Split(path, ".")
	actual, _ := segmentCache.LoadOrStore(path, segs)
	return actual.([]string)
}

// lookupSegment reads one segment from a map or struct container. Anything
// else (scalars, slices, nil) short-circuits to nil.
func lookupSegment(v any, seg string) any {
	switch m := v.(type) {
	case map[string]any:
		return m[seg]
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := rv.MapIndex(reflect.ValueOf(seg))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			name := ResolveStructKey(sf)
			if name == "-" || name == "" {
				continue
			}
			if name == seg || sf.Name == seg {
				return rv.Field(i).Interface()
			}
		}
		return nil
	default:
		return nil
	}
}
