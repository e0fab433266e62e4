package engine

import (
	"reflect"
	"strings"

	"document-composer/descriptor"
	"document-composer/registry"
)

// resolveValue extracts a named value from a source object, in the order:
// getter override, AttributeReader capability, zero-argument method,
// exported struct field or string-keyed map entry matched by normalized
// name. The boolean marker is stripped before reflective lookup.
func resolveValue(obj any, name string, getter descriptor.Getter, ctx *Context) (any, bool, error) {
	if getter != nil {
		v, err := getter(obj, ctx)
		return v, true, err
	}

	if obj == nil {
		return nil, false, nil
	}

	if reader, ok := obj.(registry.AttributeReader); ok {
		if v, ok := reader.ReadAttribute(name); ok {
			return v, true, nil
		}
	}

	plain := strings.TrimSuffix(name, descriptor.BooleanMarker)

	if m, ok := obj.(map[string]any); ok {
		if v, ok := m[plain]; ok {
			return v, true, nil
		}

		return nil, false, nil
	}

	if v, ok := callAccessorMethod(obj, plain); ok {
		return v, true, nil
	}

	return readStructField(obj, plain)
}

// callAccessorMethod looks for a zero-argument single-result method whose
// normalized name matches, covering computed attributes on the model.
func callAccessorMethod(obj any, name string) (any, bool) {
	target := registry.Normalize(name)
	rv := reflect.ValueOf(obj)
	rt := rv.Type()

	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !m.IsExported() || registry.Normalize(m.Name) != target {
			continue
		}

		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}

		out := rv.Method(i).Call(nil)

		return out[0].Interface(), true
	}

	return nil, false
}

// readStructField reads an exported field matched by normalized name,
// with pointer indirection applied.
func readStructField(obj any, name string) (any, bool, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false, nil
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, false, nil
	}

	target := registry.Normalize(name)
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() || registry.Normalize(f.Name) != target {
			continue
		}

		return rv.Field(i).Interface(), true, nil
	}

	return nil, false, nil
}

// resolveID produces the dedup/embed identifier for an object: the
// Identifiable capability first, then the named identifier attribute
// through the normal resolution path.
func resolveID(obj any, idAttr string, ctx *Context) (any, bool, error) {
	if ident, ok := obj.(registry.Identifiable); ok {
		return ident.EntityID(), true, nil
	}

	if idAttr == "" {
		idAttr = "id"
	}

	return resolveValue(obj, idAttr, nil, ctx)
}

// isNilValue reports whether a resolved association value is null.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
