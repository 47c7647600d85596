package shapemap

import (
	"reflect"
)

// Mapper is one compiled (target shape, projection signature) pairing. It is
// immutable once built; the registry guarantees that equal signatures for the
// same target type yield the same *Mapper instance, so pointer equality is a
// reliable cache-identity check.
type Mapper struct {
	target    reflect.Type
	signature string

	// active declarations partitioned by locator variant. Path lookups share
	// one loop and transform invocations another; fields are independent keys
	// of the result, so relative order between the partitions is free.
	paths      []pathField
	transforms []transformField
}

type pathField struct {
	key  string
	path string
}

type transformField struct {
	key string
	fn  TransformFunc
}

func newMapper(target reflect.Type, signature string, active []Declaration) *Mapper {
	m := &Mapper{target: target, signature: signature}
	for _, d := range active {
		if d.IsTransform() {
			m.transforms = append(m.transforms, transformField{key: d.Key, fn: d.Transform})
			continue
		}
		m.paths = append(m.paths, pathField{key: d.Key, path: d.Path})
	}
	return m
}

// Target returns the target shape type this mapper produces.
func (m *Mapper) Target() reflect.Type { return m.target }

// Signature returns the projection signature this mapper was compiled under.
func (m *Mapper) Signature() string { return m.signature }

// Keys returns the target field keys the mapper assigns, path-sourced first.
func (m *Mapper) Keys() []string {
	keys := make([]string, 0, len(m.paths)+len(m.transforms))
	for _, f := range m.paths {
		keys = append(keys, f.key)
	}
	for _, f := range m.transforms {
		keys = append(keys, f.key)
	}
	return keys
}

// Map projects src onto the target shape. A nil-ish source propagates as a
// nil result rather than failing. Every active path field is assigned even
// when the path resolves to nothing, so present-but-nil and
// excluded-by-projection stay distinguishable in the result. Transform panics
// are not intercepted.
func (m *Mapper) Map(src any, mc *Context) map[string]any {
	if isNilSource(src) {
		return nil
	}
	if mc == nil {
		mc = NewContext()
	}
	out := make(map[string]any, len(m.paths)+len(m.transforms))
	for _, f := range m.paths {
		out[f.key] = Resolve(src, f.path)
	}
	for _, f := range m.transforms {
		out[f.key] = f.fn(src, mc)
	}
	return out
}

// MapSlice applies the mapper element-wise. Nil and non-slice input yield an
// empty non-nil result; nil elements map to nil results, so output length
// always equals input length.
func (m *Mapper) MapSlice(src any, mc *Context) []map[string]any {
	if src == nil {
		return []map[string]any{}
	}
	rv := reflect.ValueOf(src)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []map[string]any{}
	}
	n := rv.Len()
	out := make([]map[string]any, n)
	for i := 0; i < n; i++ {
		out[i] = m.Map(rv.Index(i).Interface(), mc)
	}
	return out
}

// isNilSource treats nil interfaces and nil pointers/maps/slices as "no value".
func isNilSource(src any) bool {
	if src == nil {
		return true
	}
	rv := reflect.ValueOf(src)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
