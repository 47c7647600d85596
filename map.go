package shapemap

import (
	"context"
	"reflect"
)

// Map projects src onto T's declared shape using the default registry.
// A nil-ish source yields a nil result and no error.
func Map[T any](src any, opts ...Option) (map[string]any, error) {
	m, err := MapperFor[T](opts...)
	if err != nil {
		return nil, err
	}
	return m.Map(src, NewContext()), nil
}

// MapArray projects each element of src onto T's declared shape. Nil or
// non-slice input yields an empty slice; nil elements stay nil, so the output
// length always equals the input length.
func MapArray[T any](src any, opts ...Option) ([]map[string]any, error) {
	m, err := MapperFor[T](opts...)
	if err != nil {
		return nil, err
	}
	return m.MapSlice(src, NewContext()), nil
}

// MapPick is Map restricted to the named fields.
func MapPick[T any](src any, fields ...string) (map[string]any, error) {
	return Map[T](src, Pick(fields...))
}

// MapOmit is Map with the named fields dropped.
func MapOmit[T any](src any, fields ...string) (map[string]any, error) {
	return Map[T](src, Omit(fields...))
}

// MapGroup is Map restricted to fields tagged with the named group.
func MapGroup[T any](src any, group string) (map[string]any, error) {
	return Map[T](src, Group(group))
}

// MapperFor compiles (or fetches) the mapper for T under the given option.
// The returned instance is stable per option signature until ClearCache.
func MapperFor[T any](opts ...Option) (*Mapper, error) {
	return Default().Compile(reflect.TypeFor[T](), opts...)
}

// ClearCache drops every cached shape entry and compiled mapper on the
// default registry.
func ClearCache() {
	Default().ClearCache()
}

// Validator is an optional post-mapping hook. It runs outside the compiled
// mapping path and may block; its error is returned to the caller unmodified.
type Validator interface {
	Validate(ctx context.Context, out map[string]any) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, out map[string]any) error

// Validate implements Validator.
func (f ValidatorFunc) Validate(ctx context.Context, out map[string]any) error {
	return f(ctx, out)
}

// MapValidated maps src onto T's shape and then runs the validator over the
// result. A nil result (nil-ish source) skips validation.
func MapValidated[T any](ctx context.Context, v Validator, src any, opts ...Option) (map[string]any, error) {
	out, err := Map[T](src, opts...)
	if err != nil {
		return nil, err
	}
	if out == nil || v == nil {
		return out, nil
	}
	if err := v.Validate(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}
