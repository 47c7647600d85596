package shapemap

import (
	"reflect"
	"sync"
)

// shapeEntry is the registry's per-target-shape record: normalized
// declarations plus a group index derived alongside them.
type shapeEntry struct {
	target reflect.Type
	order  []string // target keys in first-declaration order
	byKey  map[string]Declaration
	groups map[string]map[string]struct{} // group tag -> target key set
}

// buildShapeEntry normalizes an ordered declaration list. Re-declaring a key
// replaces its locator and ignore flag (last declaration wins) while group
// tags accumulate as a union.
func buildShapeEntry(target reflect.Type, decls []Declaration) *shapeEntry {
	ent := &shapeEntry{
		target: target,
		byKey:  make(map[string]Declaration, len(decls)),
		groups: make(map[string]map[string]struct{}),
	}
	for _, d := range decls {
		prev, seen := ent.byKey[d.Key]
		if !seen {
			ent.order = append(ent.order, d.Key)
			ent.byKey[d.Key] = d
			continue
		}
		merged := d
		merged.Groups = unionGroups(prev.Groups, d.Groups)
		ent.byKey[d.Key] = merged
	}
	for key, d := range ent.byKey {
		for _, g := range d.Groups {
			set := ent.groups[g]
			if set == nil {
				set = make(map[string]struct{})
				ent.groups[g] = set
			}
			set[key] = struct{}{}
		}
	}
	return ent
}

func unionGroups(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, g := range a {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	for _, g := range b {
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// resolve returns the declarations active under opt, always in original
// declaration order. Ignored declarations are excluded unconditionally;
// unknown groups and undeclared pick/omit fields degrade silently.
func (e *shapeEntry) resolve(opt Option) []Declaration {
	keep := func(string) bool { return true }
	switch {
	case opt.GroupName != "":
		set := e.groups[opt.GroupName] // nil for unknown groups: keeps nothing
		keep = func(k string) bool { _, ok := set[k]; return ok }
	case len(opt.PickFields) > 0:
		set := make(map[string]struct{}, len(opt.PickFields))
		for _, f := range opt.PickFields {
			set[f] = struct{}{}
		}
		keep = func(k string) bool { _, ok := set[k]; return ok }
	case len(opt.OmitFields) > 0:
		set := make(map[string]struct{}, len(opt.OmitFields))
		for _, f := range opt.OmitFields {
			set[f] = struct{}{}
		}
		keep = func(k string) bool { _, ok := set[k]; return !ok }
	}
	var active []Declaration
	for _, key := range e.order {
		d := e.byKey[key]
		if d.Ignore || !keep(key) {
			continue
		}
		active = append(active, d)
	}
	return active
}

type mapperKey struct {
	target    reflect.Type
	signature string
}

// Registry owns the per-shape declaration cache and the compiled-mapper cache.
// It is safe for concurrent use: compilation is deterministic and idempotent,
// so racing compiles are benign and LoadOrStore keeps the winning instance
// stable for everyone.
type Registry struct {
	mu        sync.RWMutex
	static    map[reflect.Type][]Declaration
	providers []Provider

	entries sync.Map // map[reflect.Type]*shapeEntry
	mappers sync.Map // map[mapperKey]*Mapper
}

// NewRegistry creates a registry. Optional providers are consulted, in order,
// for target types that have no direct registration.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{
		static:    make(map[reflect.Type][]Declaration),
		providers: providers,
	}
}

// Register records the declaration list for a target type, replacing any
// previous registration. Declarations are validated up front; the shape name
// used in issue paths is the type's name.
func (r *Registry) Register(target reflect.Type, decls []Declaration) error {
	if target == nil {
		return singleIssue(CodeUnknownShape, "nil target type")
	}
	var iss Issues
	for _, d := range decls {
		iss = AppendIssues(iss, ValidateDeclaration(target.Name(), d)...)
	}
	if len(iss) > 0 {
		return iss
	}
	r.mu.Lock()
	r.static[target] = decls
	r.mu.Unlock()
	// a re-registration must not serve stale compiled state
	r.entries.Delete(target)
	r.dropMappers(target)
	return nil
}

// AddProvider appends a declaration provider consulted for unregistered types.
func (r *Registry) AddProvider(p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.providers = append(r.providers, p)
	r.mu.Unlock()
}

// declarations finds the declaration list for a target: direct registrations
// first, then providers in order. Provider errors propagate unmodified.
func (r *Registry) declarations(target reflect.Type) ([]Declaration, error) {
	r.mu.RLock()
	decls, ok := r.static[target]
	providers := r.providers
	r.mu.RUnlock()
	if ok {
		return decls, nil
	}
	for _, p := range providers {
		got, err := p.Declarations(target)
		if err != nil {
			return nil, err
		}
		if got != nil {
			return got, nil
		}
	}
	return nil, Issues{Issue{
		Path: "/" + target.String(), Code: CodeUnknownShape,
		Message: "no declarations for target shape",
		Hint:    "register the shape via dsl.Shape or a mapfile provider",
	}}
}

func (r *Registry) entry(target reflect.Type) (*shapeEntry, error) {
	if v, ok := r.entries.Load(target); ok {
		return v.(*shapeEntry), nil
	}
	decls, err := r.declarations(target)
	if err != nil {
		return nil, err
	}
	ent := buildShapeEntry(target, decls)
	actual, _ := r.entries.LoadOrStore(target, ent)
	return actual.(*shapeEntry), nil
}

// Compile returns the cached mapper for (target, option signature), building
// and caching it on first use. Structurally equal options return the same
// *Mapper instance.
func (r *Registry) Compile(target reflect.Type, opts ...Option) (*Mapper, error) {
	opt := mergeOpts(opts)
	key := mapperKey{target: target, signature: opt.Signature()}
	if v, ok := r.mappers.Load(key); ok {
		return v.(*Mapper), nil
	}
	ent, err := r.entry(target)
	if err != nil {
		return nil, err
	}
	m := newMapper(target, key.signature, ent.resolve(opt))
	actual, _ := r.mappers.LoadOrStore(key, m)
	return actual.(*Mapper), nil
}

// CompiledMapper looks up an already-compiled mapper by signature without
// compiling. Inspection and debugging only.
func (r *Registry) CompiledMapper(target reflect.Type, signature string) (*Mapper, bool) {
	v, ok := r.mappers.Load(mapperKey{target: target, signature: signature})
	if !ok {
		return nil, false
	}
	return v.(*Mapper), true
}

// ClearCache discards every shape entry and compiled mapper. Registrations and
// providers survive; the next compile re-reads them.
func (r *Registry) ClearCache() {
	r.entries.Range(func(k, _ any) bool {
		r.entries.Delete(k)
		return true
	})
	r.mappers.Range(func(k, _ any) bool {
		r.mappers.Delete(k)
		return true
	})
}

func (r *Registry) dropMappers(target reflect.Type) {
	r.mappers.Range(func(k, _ any) bool {
		if k.(mapperKey).target == target {
			r.mappers.Delete(k)
		}
		return true
	})
}

// ---- process default registry ----

var (
	defaultMu       sync.RWMutex
	defaultRegistry = NewRegistry()
)

// Default returns the process-wide registry backing the static entry points.
func Default() *Registry {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the process-wide registry and returns the previous one.
// Intended for tests that want an isolated registry lifecycle.
func SetDefault(r *Registry) *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultRegistry
	if r != nil {
		defaultRegistry = r
	}
	return prev
}
