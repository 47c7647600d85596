package shapemap

import (
	"fmt"
	"reflect"
)

// Bind assigns a mapped result onto a fresh value of struct type T using the
// same struct-key resolution as path lookup (shapemap tag, json tag, field
// name). Keys absent from the result leave their fields at the zero value;
// keys with no matching field are ignored.
func Bind[T any](out map[string]any) (T, error) {
	var zero T
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return zero, singleIssue(CodeParseError, "Bind[T] requires struct T")
	}
	rv := reflect.New(rt).Elem()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		v, ok := out[name]
		if !ok || v == nil {
			continue
		}
		fv := rv.Field(i)
		vv := reflect.ValueOf(v)
		if !vv.Type().AssignableTo(fv.Type()) {
			if vv.Type().ConvertibleTo(fv.Type()) {
				vv = vv.Convert(fv.Type())
			} else {
				return zero, Issues{Issue{
					Path: "/" + name, Code: CodeInvalidField,
					Message: fmt.Sprintf("cannot assign %s to field of type %s", vv.Type(), fv.Type()),
				}}
			}
		}
		fv.Set(vv)
	}
	if reflect.TypeFor[T]().Kind() == reflect.Pointer {
		return rv.Addr().Interface().(T), nil
	}
	return rv.Interface().(T), nil
}

// MapTo composes Map and Bind: project src onto T's shape, then realize the
// result as a T value. A nil-ish source yields T's zero value.
func MapTo[T any](src any, opts ...Option) (T, error) {
	var zero T
	out, err := Map[T](src, opts...)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	return Bind[T](out)
}
