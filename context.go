package shapemap

// Context is the per-call mapping context handed to transform functions. It is
// ephemeral: the facade creates one per top-level call and discards it when
// the call tree completes.
type Context struct {
	// Extras carries caller-supplied data through to transforms.
	Extras map[string]any
	// Depth tracks nesting level for future nested-shape mapping.
	Depth int
	// Visited is reserved for cycle tracking when nested shape mapping
	// lands; the compiled mapping loop does not consult it today.
	Visited map[any]bool
}

// NewContext returns an empty mapping context.
func NewContext() *Context {
	return &Context{}
}

// WithExtra sets one extras entry and returns the context for chaining.
func (c *Context) WithExtra(key string, v any) *Context {
	if c.Extras == nil {
		c.Extras = make(map[string]any)
	}
	c.Extras[key] = v
	return c
}

// Extra reads one extras entry; the second result reports presence.
func (c *Context) Extra(key string) (any, bool) {
	if c == nil || c.Extras == nil {
		return nil, false
	}
	v, ok := c.Extras[key]
	return v, ok
}
