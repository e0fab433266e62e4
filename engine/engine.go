package engine

import (
	"strings"

	"document-composer/descriptor"
	"document-composer/document"
	"document-composer/internal/common"
	"document-composer/registry"
)

// Engine serializes single objects against one descriptor. It is a thin
// pair (descriptor, context): descriptors are shared and immutable, the
// context is owned by the current call tree.
type Engine struct {
	desc *descriptor.Descriptor
	ctx  *Context
}

// New creates an engine for a descriptor within a call context.
func New(d *descriptor.Descriptor, ctx *Context) *Engine {
	return &Engine{desc: d, ctx: ctx}
}

// Descriptor returns the engine's descriptor.
func (e *Engine) Descriptor() *descriptor.Descriptor { return e.desc }

// Fragment produces the unwrapped attribute/association map for an
// object. A whole-fragment override on the descriptor replaces the
// default loop entirely.
func (e *Engine) Fragment(obj any) (document.Fragment, error) {
	if e.desc.SerializeFragment != nil {
		m, err := e.desc.SerializeFragment(obj, e.ctx, e)
		if err != nil {
			return nil, err
		}

		return document.Fragment(m), nil
	}

	frag := document.Fragment{}

	// The root fragment of the call tree stays reachable for nested
	// serializers while it is being filled.
	if e.ctx.top == nil {
		e.ctx.top = frag
	}

	if err := e.fillAttributes(obj, frag); err != nil {
		return nil, err
	}

	if err := e.fillAssociations(obj, frag); err != nil {
		return nil, err
	}

	return frag, nil
}

// Document wraps the fragment per the root policy and, at the top level of
// a call tree, merges drained side-load buckets alongside the root key.
// A suppressed root returns the bare fragment and merges nothing.
func (e *Engine) Document(obj any) (document.Document, error) {
	topLevel := e.ctx.sideloads == nil
	if topLevel {
		e.ctx.sideloads = NewSideloads()
	}

	frag, err := e.Fragment(obj)
	if err != nil {
		return nil, err
	}

	rootKey, wrap := e.resolveRoot(obj)
	if !wrap {
		return document.Document(frag), nil
	}

	doc := document.Document{}

	if topLevel {
		for _, b := range e.ctx.sideloads.Drain() {
			doc[b.Key] = b.Documents
		}
	}

	// The root key wins over a colliding bucket.
	doc.Set(rootKey, frag)

	return doc, nil
}

// resolveRoot applies the root-name resolution order: call option,
// descriptor policy, auto-derived type name. The second result is false
// when wrapping is suppressed.
func (e *Engine) resolveRoot(obj any) (string, bool) {
	if v, ok := e.ctx.Option(OptionRoot); ok {
		switch root := v.(type) {
		case string:
			return root, true
		case bool:
			if !root {
				return "", false
			}
		case nil:
			return "", false
		}
	}

	switch e.desc.RootMode {
	case descriptor.RootNamed:
		return e.desc.RootName, true
	case descriptor.RootSuppressed:
		return "", false
	default:
		name := registry.TypeName(obj)
		if name == "" {
			name = strings.TrimSuffix(e.desc.Name, "Serializer")
		}

		return registry.SnakeCase(name), true
	}
}

// Attributes resolves the declared attributes into a map, applying
// per-attribute predicates. Part of the descriptor.Fragmenter surface
// consumed by whole-fragment overrides.
func (e *Engine) Attributes(obj any) (map[string]any, error) {
	out := make(map[string]any, len(e.desc.Attributes))
	if err := e.fillAttributes(obj, out); err != nil {
		return nil, err
	}

	return out, nil
}

// Associations resolves the declared associations into a map, applying
// the association filter and per-association predicates. Part of the
// descriptor.Fragmenter surface consumed by whole-fragment overrides.
func (e *Engine) Associations(obj any) (map[string]any, error) {
	out := make(map[string]any, len(e.desc.Associations))
	if err := e.fillAssociations(obj, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (e *Engine) fillAttributes(obj any, out map[string]any) error {
	for _, spec := range e.desc.Attributes {
		if spec.If != nil && !spec.If(obj, e.ctx) {
			continue
		}

		v, found, err := resolveValue(obj, spec.SourceName, spec.Getter, e.ctx)
		if err != nil {
			return err
		}

		if !found {
			return configErr(e.desc.Name, spec.SourceName,
				"no override, reader, method, or field matched", ErrUnresolvedAttribute)
		}

		out[spec.OutputKey] = v
	}

	return nil
}

func (e *Engine) fillAssociations(obj any, out map[string]any) error {
	names := e.desc.AssociationNames()
	if e.desc.FilterAssociations != nil {
		names = e.desc.FilterAssociations(obj, e.ctx, names)
	}

	for _, spec := range e.desc.Associations {
		if !common.Contains(names, spec.SourceName) {
			continue
		}

		if spec.If != nil && !spec.If(obj, e.ctx) {
			continue
		}

		v, err := e.resolveAssociation(obj, spec)
		if err != nil {
			return err
		}

		out[spec.OutputKey] = v
	}

	return nil
}
