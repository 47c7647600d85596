package mapfile

import (
	"reflect"

	shapemap "github.com/shapemap/shapemap"
)

// Types binds mapping-file shape names to Go target types.
type Types map[string]reflect.Type

// For is a convenience for building Types entries:
//
//	mapfile.Types{"UserDTO": mapfile.For[UserDTO]()}
func For[T any]() reflect.Type { return reflect.TypeFor[T]() }

// Transforms binds mapping-file transform names to transform functions.
type Transforms map[string]shapemap.TransformFunc

// Provider serves declarations parsed from a mapping file. It implements
// shapemap.Provider; unknown target types yield (nil, nil) so the registry
// can fall through to other providers.
type Provider struct {
	decls map[reflect.Type][]shapemap.Declaration
}

// NewProvider resolves a parsed mapping file against the shape-name and
// transform-name tables. Every declaration is validated up front; unknown
// shape names and transform names are hard errors here, not at map time.
func NewProvider(f *File, types Types, transforms Transforms) (*Provider, error) {
	p := &Provider{decls: make(map[reflect.Type][]shapemap.Declaration, len(f.Shapes))}
	var iss shapemap.Issues
	for _, sd := range f.Shapes {
		rt, ok := types[sd.Shape]
		if !ok {
			iss = shapemap.AppendIssues(iss, shapemap.Issue{
				Path: "/" + sd.Shape, Code: shapemap.CodeUnknownShape,
				Message: "shape name not bound to a Go type",
				Hint:    "add an entry to the Types table",
			})
			continue
		}
		decls := make([]shapemap.Declaration, 0, len(sd.Fields))
		for _, fd := range sd.Fields {
			d := shapemap.Declaration{
				Key:    fd.Field,
				Path:   fd.Path,
				Groups: fd.Groups,
				Ignore: fd.Ignore,
			}
			if fd.Transform != "" {
				fn, ok := transforms[fd.Transform]
				if !ok {
					iss = shapemap.AppendIssues(iss, shapemap.Issue{
						Path: "/" + sd.Shape + "/" + fd.Field, Code: shapemap.CodeUnknownTransform,
						Message: "transform name not bound to a function",
						Hint:    "add an entry to the Transforms table",
					})
					continue
				}
				d.Transform = fn
			}
			iss = shapemap.AppendIssues(iss, shapemap.ValidateDeclaration(sd.Shape, d)...)
			decls = append(decls, d)
		}
		p.decls[rt] = decls
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return p, nil
}

// Declarations implements shapemap.Provider.
func (p *Provider) Declarations(target reflect.Type) ([]shapemap.Declaration, error) {
	decls, ok := p.decls[target]
	if !ok {
		return nil, nil
	}
	return decls, nil
}

// Shapes lists the target types the provider can serve.
func (p *Provider) Shapes() []reflect.Type {
	out := make([]reflect.Type, 0, len(p.decls))
	for rt := range p.decls {
		out = append(out, rt)
	}
	return out
}
