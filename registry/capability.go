package registry

// SelfDescribing is the optional capability of a source object to declare
// the serializer to use for it, by registry name.
type SelfDescribing interface {
	SerializerName() string
}

// Identifiable is the optional capability of a source object to expose its
// identifier directly. It takes precedence over the descriptor's
// identifier attribute.
type Identifiable interface {
	EntityID() any
}

// AttributeReader is the generic attribute-read capability of the
// surrounding object model. The engine consults it before falling back to
// reflection over exported struct fields.
type AttributeReader interface {
	// ReadAttribute returns the named attribute value, and false if the
	// object has no such attribute.
	ReadAttribute(name string) (any, bool)
}

// GenericDocumenter is the optional capability of an object to provide its
// own generic document representation. The collection adapter uses it as
// the passthrough for elements no serializer can be determined for.
type GenericDocumenter interface {
	GenericDocument() any
}
