package engine

import (
	"document-composer/document"
	"document-composer/registry"
)

// Recognized auxiliary option keys.
const (
	// OptionRoot overrides the root key for the call. A string wraps under
	// that key; nil or false suppresses wrapping.
	OptionRoot = "root"
	// OptionEachSerializer forces a serializer for every collection
	// element: a *descriptor.Descriptor or a registry name.
	OptionEachSerializer = "each_serializer"
	// OptionHash supplies an externally owned top-level fragment that
	// nested serializers may introspect via TopFragment.
	OptionHash = "hash"
)

// Context carries the per-call serialization state: the caller's scope,
// the auxiliary option bag, the registry in use, and the shared side-load
// collector. One Context serves exactly one top-level call tree; it is
// passed by reference to every nested engine, never shared across
// independent calls, and needs no locking.
type Context struct {
	scope     any
	options   map[string]any
	reg       *registry.Registry
	sideloads *Sideloads
	top       document.Fragment
}

// NewContext creates a context against the default registry. Both
// arguments may be nil/empty.
func NewContext(scope any, options map[string]any) *Context {
	return NewContextWith(registry.Default(), scope, options)
}

// NewContextWith creates a context against an explicit registry.
func NewContextWith(reg *registry.Registry, scope any, options map[string]any) *Context {
	ctx := &Context{scope: scope, options: options, reg: reg}

	if v, ok := ctx.Option(OptionHash); ok {
		switch h := v.(type) {
		case document.Fragment:
			ctx.top = h
		case map[string]any:
			ctx.top = document.Fragment(h)
		}
	}

	return ctx
}

// Scope returns the caller-supplied opaque scope value.
func (c *Context) Scope() any { return c.scope }

// Option returns an auxiliary option by key.
func (c *Context) Option(key string) (any, bool) {
	if c.options == nil {
		return nil, false
	}

	v, ok := c.options[key]

	return v, ok
}

// Registry returns the registry serializer resolution runs against.
func (c *Context) Registry() *registry.Registry { return c.reg }

// Sideloads returns the call tree's collector, or nil when no top-level
// call has established one.
func (c *Context) Sideloads() *Sideloads { return c.sideloads }

// TopFragment returns the top-level fragment under construction, for
// nested serializers that need to introspect it. Nil before the root
// fragment starts building, unless the caller supplied one via the hash
// option.
func (c *Context) TopFragment() document.Fragment { return c.top }
