package shapemap

import (
	"reflect"
)

// TransformFunc computes a target field value from the whole source value.
// The mapping Context carries caller extras; transforms run synchronously and
// their panics are not intercepted by the compiled mapper.
type TransformFunc func(src any, mc *Context) any

// Declaration is a single field's mapping rule: the target key plus exactly one
// locator (a dotted source path or a transform function), optional group tags,
// and an ignore flag that excludes the field from every projection.
type Declaration struct {
	Key       string
	Path      string
	Transform TransformFunc
	Groups    []string
	Ignore    bool
}

// IsTransform reports which locator variant the declaration carries.
func (d Declaration) IsTransform() bool { return d.Transform != nil }

// Provider supplies the ordered field declarations for a target shape.
// Implementations must be deterministic and side-effect-free; the registry
// consults a provider at most once per target type and caches the answer
// until ClearCache.
type Provider interface {
	Declarations(target reflect.Type) ([]Declaration, error)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(target reflect.Type) ([]Declaration, error)

// Declarations implements Provider.
func (f ProviderFunc) Declarations(target reflect.Type) ([]Declaration, error) {
	return f(target)
}

// ValidateDeclaration checks a single declaration for structural problems.
// shape names the owning target shape for issue paths; it may be empty.
func ValidateDeclaration(shape string, d Declaration) Issues {
	base := "/" + shape + "/" + d.Key
	var iss Issues
	if d.Key == "" {
		iss = AppendIssues(iss, Issue{Path: "/" + shape, Code: CodeInvalidField, Message: "empty target field name"})
	}
	hasPath := d.Path != ""
	hasFn := d.Transform != nil
	switch {
	case !hasPath && !hasFn && !d.Ignore:
		iss = AppendIssues(iss, Issue{Path: base, Code: CodeMissingLocator, Message: "declaration needs a source path or a transform", Hint: "use From(path) or Transform(fn)"})
	case hasPath && hasFn:
		iss = AppendIssues(iss, Issue{Path: base, Code: CodeConflictingLocator, Message: "declaration has both a source path and a transform"})
	}
	if hasPath {
		if err := CheckPath(d.Path); err != nil {
			iss = AppendIssues(iss, Issue{Path: base, Code: CodeInvalidPath, Message: err.Error(), Cause: err})
		}
	}
	return iss
}
