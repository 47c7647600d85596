package dsl

import (
	"reflect"

	shapemap "github.com/shapemap/shapemap"
)

type shapeBuilder[T any] struct {
	decls []shapemap.Declaration
}

type fieldStep[T any] struct {
	b   *shapeBuilder[T]
	idx int
}

// Shape starts a declaration builder for target type T. Declarations are
// collected explicitly here instead of being discovered from annotations, so
// building is side-effect-free until Register.
func Shape[T any]() *shapeBuilder[T] {
	return &shapeBuilder[T]{}
}

// Field opens a declaration for one target field.
func (b *shapeBuilder[T]) Field(name string) *fieldStep[T] {
	b.decls = append(b.decls, shapemap.Declaration{Key: name})
	return &fieldStep[T]{b: b, idx: len(b.decls) - 1}
}

// From sets the dotted source path locator for the current field.
func (f *fieldStep[T]) From(path string) *fieldStep[T] {
	f.b.decls[f.idx].Path = path
	return f
}

// Transform sets the transform locator for the current field.
func (f *fieldStep[T]) Transform(fn shapemap.TransformFunc) *fieldStep[T] {
	f.b.decls[f.idx].Transform = fn
	return f
}

// Groups tags the current field with one or more group names.
func (f *fieldStep[T]) Groups(names ...string) *fieldStep[T] {
	f.b.decls[f.idx].Groups = append(f.b.decls[f.idx].Groups, names...)
	return f
}

// Ignore excludes the current field from every projection.
func (f *fieldStep[T]) Ignore() *fieldStep[T] {
	f.b.decls[f.idx].Ignore = true
	return f
}

// Field closes the current field and opens the next one.
func (f *fieldStep[T]) Field(name string) *fieldStep[T] { return f.b.Field(name) }

func (f *fieldStep[T]) Build() ([]shapemap.Declaration, error)  { return f.b.Build() }
func (f *fieldStep[T]) MustBuild() []shapemap.Declaration       { return f.b.MustBuild() }
func (f *fieldStep[T]) RegisterInto(r *shapemap.Registry) error { return f.b.RegisterInto(r) }
func (f *fieldStep[T]) Register() error                         { return f.b.Register() }
func (f *fieldStep[T]) MustRegister()                           { f.b.MustRegister() }

// Build validates the collected declarations and returns them in declaration
// order. Re-declared keys are legal; the registry merges them last-wins with
// group union.
func (b *shapeBuilder[T]) Build() ([]shapemap.Declaration, error) {
	shape := reflect.TypeFor[T]().Name()
	var iss shapemap.Issues
	for _, d := range b.decls {
		iss = shapemap.AppendIssues(iss, shapemap.ValidateDeclaration(shape, d)...)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	out := make([]shapemap.Declaration, len(b.decls))
	copy(out, b.decls)
	return out, nil
}

// MustBuild is like Build but panics on error.
func (b *shapeBuilder[T]) MustBuild() []shapemap.Declaration {
	decls, err := b.Build()
	if err != nil {
		panic(err)
	}
	return decls
}

// RegisterInto builds and registers the declarations on the given registry.
func (b *shapeBuilder[T]) RegisterInto(r *shapemap.Registry) error {
	decls, err := b.Build()
	if err != nil {
		return err
	}
	return r.Register(reflect.TypeFor[T](), decls)
}

// Register builds and registers the declarations on the default registry.
func (b *shapeBuilder[T]) Register() error {
	return b.RegisterInto(shapemap.Default())
}

// MustRegister is like Register but panics on error.
func (b *shapeBuilder[T]) MustRegister() {
	if err := b.Register(); err != nil {
		panic(err)
	}
}
