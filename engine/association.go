package engine

import (
	"fmt"
	"reflect"

	"document-composer/descriptor"
	"document-composer/document"
	"document-composer/registry"
)

// resolveAssociation locates the associated value and renders it per the
// effective embed mode. The result is nil, a single rendered value, or an
// ordered slice for many-cardinality associations.
func (e *Engine) resolveAssociation(obj any, spec descriptor.AssociationSpec) (any, error) {
	raw, found, err := resolveValue(obj, spec.SourceName, spec.Getter, e.ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, configErr(e.desc.Name, spec.SourceName,
			"no override, reader, method, or field matched", ErrUnresolvedAttribute)
	}

	if spec.Cardinality == descriptor.Many {
		return e.renderMany(raw, spec)
	}

	// Null single associations stay null; no polymorphic wrapping applies.
	if isNilValue(raw) {
		return nil, nil
	}

	return e.renderAssociated(raw, spec)
}

// renderMany renders each element of a collection-valued association.
// A nil collection renders as an empty array, never as null.
func (e *Engine) renderMany(raw any, spec descriptor.AssociationSpec) (any, error) {
	out := []any{}

	if isNilValue(raw) {
		return out, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, configErr(e.desc.Name, spec.SourceName,
			fmt.Sprintf("declared many but value is %T", raw), ErrUnresolvedAttribute)
	}

	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		if isNilValue(item) {
			continue
		}

		v, err := e.renderAssociated(item, spec)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// renderAssociated renders one associated object: identifiers with
// optional side-loading under EmbedIDs, a nested fragment under
// EmbedObjects, with polymorphic type tagging wrapped around either.
func (e *Engine) renderAssociated(item any, spec descriptor.AssociationSpec) (any, error) {
	embed := spec.EffectiveEmbed(e.desc.DefaultEmbed)

	if embed == descriptor.EmbedObjects {
		sub, err := e.serializerFor(item, spec)
		if err != nil {
			return nil, err
		}

		frag, err := New(sub, e.ctx).Fragment(item)
		if err != nil {
			return nil, err
		}

		if spec.Polymorphic {
			tag := registry.TypeTag(item)
			return document.Fragment{"type": tag, tag: frag}, nil
		}

		return frag, nil
	}

	// EmbedIDs. The serializer is only required when the full object must
	// be side-loaded; bare identifier embedding resolves without one.
	sub, subErr := e.serializerFor(item, spec)

	idAttr := ""
	if subErr == nil {
		idAttr = sub.IDAttribute
	}

	id, found, err := resolveID(item, idAttr, e.ctx)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, configErr(e.desc.Name, spec.SourceName,
			fmt.Sprintf("no identifier on associated %T", item), ErrUnresolvedAttribute)
	}

	if spec.EffectiveInclude(e.desc.DefaultInclude) {
		if e.ctx.sideloads == nil {
			return nil, configErr(e.desc.Name, spec.SourceName, "", ErrNoSideloadRoot)
		}

		if subErr != nil {
			return nil, subErr
		}

		frag, err := New(sub, e.ctx).Fragment(item)
		if err != nil {
			return nil, err
		}

		bucket := spec.SideloadKey
		if bucket == "" {
			bucket = registry.BucketKey(item)
		}

		e.ctx.sideloads.Register(bucket, id, frag)
	}

	if spec.Polymorphic {
		return document.Fragment{"type": registry.TypeTag(item), "id": id}, nil
	}

	return id, nil
}

// serializerFor resolves the descriptor for an associated object, in
// strict priority order: explicit reference, explicit name, polymorphic
// type-keyed lookup, convention by type name, self-declared.
func (e *Engine) serializerFor(item any, spec descriptor.AssociationSpec) (*descriptor.Descriptor, error) {
	if spec.SerializerRef != nil {
		return spec.SerializerRef, nil
	}

	reg := e.ctx.reg

	if spec.Serializer != "" {
		d, ok := reg.ByName(spec.Serializer)
		if !ok {
			return nil, configErr(e.desc.Name, spec.SourceName,
				fmt.Sprintf("serializer %q is not registered", spec.Serializer), ErrNoSerializer)
		}

		return d, nil
	}

	if spec.Polymorphic {
		if d, ok := reg.ForValue(item); ok {
			return d, nil
		}

		if d, ok := reg.ByName(registry.TypeName(item)); ok {
			return d, nil
		}

		return nil, configErr(e.desc.Name, spec.SourceName,
			fmt.Sprintf("no serializer registered for polymorphic type %T", item), ErrNoSerializer)
	}

	if d, ok := reg.ForValue(item); ok {
		return d, nil
	}

	if d, ok := reg.Infer(item); ok {
		return d, nil
	}

	if sd, ok := item.(registry.SelfDescribing); ok {
		if d, ok := reg.ByName(sd.SerializerName()); ok {
			return d, nil
		}
	}

	return nil, configErr(e.desc.Name, spec.SourceName,
		fmt.Sprintf("no serializer for %T", item), ErrNoSerializer)
}
