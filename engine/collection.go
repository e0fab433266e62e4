package engine

import (
	"fmt"
	"reflect"

	"document-composer/descriptor"
	"document-composer/registry"
)

// Collection serializes ordered collections of possibly heterogeneous
// objects. Every element shares the collection's context, so side-loaded
// entities referenced by several elements land in one deduplicated bucket.
type Collection struct {
	ctx *Context
}

// NewCollection creates a collection adapter within a call context.
func NewCollection(ctx *Context) *Collection {
	return &Collection{ctx: ctx}
}

// Fragments renders each element of the collection in order. Element
// serializer selection: the each_serializer option, then a per-element
// registry/self-declared lookup, then the element's generic document
// passthrough.
func (c *Collection) Fragments(items any) ([]any, error) {
	if items == nil {
		return []any{}, nil
	}

	rv := reflect.ValueOf(items)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, configErr("", "", fmt.Sprintf("collection value is %T", items), ErrUnresolvedAttribute)
	}

	out := make([]any, 0, rv.Len())

	forced, err := c.forcedSerializer()
	if err != nil {
		return nil, err
	}

	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()

		v, err := c.renderElement(item, forced)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Document renders the collection as a top-level document: a bare array,
// or a root-wrapped object with side-load buckets merged when the root
// option names a wrap key.
func (c *Collection) Document(items any) (any, error) {
	topLevel := c.ctx.sideloads == nil
	if topLevel {
		c.ctx.sideloads = NewSideloads()
	}

	frags, err := c.Fragments(items)
	if err != nil {
		return nil, err
	}

	root, ok := c.rootKey()
	if !ok {
		return frags, nil
	}

	doc := map[string]any{}

	if topLevel {
		for _, b := range c.ctx.sideloads.Drain() {
			doc[b.Key] = b.Documents
		}
	}

	doc[root] = frags

	return doc, nil
}

// forcedSerializer resolves the each_serializer option, if present.
func (c *Collection) forcedSerializer() (*descriptor.Descriptor, error) {
	v, ok := c.ctx.Option(OptionEachSerializer)
	if !ok {
		return nil, nil
	}

	switch s := v.(type) {
	case *descriptor.Descriptor:
		return s, nil
	case string:
		d, ok := c.ctx.reg.ByName(s)
		if !ok {
			return nil, configErr("", "",
				fmt.Sprintf("each_serializer %q is not registered", s), ErrNoSerializer)
		}

		return d, nil
	default:
		return nil, configErr("", "",
			fmt.Sprintf("each_serializer option is %T", v), ErrNoSerializer)
	}
}

func (c *Collection) renderElement(item any, forced *descriptor.Descriptor) (any, error) {
	if forced != nil {
		return New(forced, c.ctx).Fragment(item)
	}

	if isNilValue(item) {
		return nil, nil
	}

	if d, ok := c.elementSerializer(item); ok {
		return New(d, c.ctx).Fragment(item)
	}

	// Generic passthrough for elements no serializer can be determined for.
	if gd, ok := item.(registry.GenericDocumenter); ok {
		return gd.GenericDocument(), nil
	}

	return item, nil
}

// elementSerializer resolves a serializer for one element: registered
// type, naming convention, then the element's own declaration.
func (c *Collection) elementSerializer(item any) (*descriptor.Descriptor, bool) {
	reg := c.ctx.reg

	if d, ok := reg.ForValue(item); ok {
		return d, true
	}

	if d, ok := reg.Infer(item); ok {
		return d, true
	}

	if sd, ok := item.(registry.SelfDescribing); ok {
		if d, ok := reg.ByName(sd.SerializerName()); ok {
			return d, true
		}
	}

	return nil, false
}

// rootKey resolves the collection wrap key from the root option.
func (c *Collection) rootKey() (string, bool) {
	v, ok := c.ctx.Option(OptionRoot)
	if !ok {
		return "", false
	}

	root, ok := v.(string)

	return root, ok
}
