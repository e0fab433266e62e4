// Package registry resolves serializers for domain values: a process-wide
// mapping from serializer names and Go types to descriptors, plus the
// naming conventions that derive document keys from type names.
//
// # Resolution
//
// The engine resolves the serializer for an associated object in strict
// priority order:
//
//  1. Explicit descriptor reference or serializer name on the association.
//  2. Polymorphic lookup keyed by the object's concrete type.
//  3. Convention lookup by type name ("Email" -> "EmailSerializer", then
//     bare "Email").
//  4. The object's own SelfDescribing capability.
//  5. Failure: an unresolvable-serializer configuration error.
//
// The registry provides steps 2-4; the engine composes them.
//
// # Default registry and on-load hooks
//
// A process-wide default registry backs Default(). Packages contribute
// serializers via OnLoad, which defers hooks until the first use of the
// default registry; this is the one-time setup extension point, not a
// dynamic re-registration mechanism.
//
// # Naming
//
// SnakeCase, Pluralize, TypeTag and BucketKey derive the document-facing
// spellings: polymorphic type tags are the snake_case concrete type name,
// side-load buckets the pluralized tag.
package registry
