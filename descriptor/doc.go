// Package descriptor defines the declarative, per-type serialization
// configuration consumed by the engine: which attributes a type exposes,
// which associations it embeds and how, and how the resulting fragment is
// wrapped.
//
// A Descriptor is built once — from a Config literal or a YAML definition
// file — and treated as immutable afterwards. Engines only read it, so the
// same descriptor serves every instance of a type across call trees.
//
// # Key capabilities
//
//   - Attribute declarations with key renaming and boolean-marker stripping
//   - Association declarations with cardinality, embed mode (ids/objects),
//     side-load include flag, polymorphism, and per-association serializer
//   - Root policy: auto-derived, explicit, or suppressed
//   - Descriptor inheritance via Extend (child declarations override parent
//     entries by source name)
//   - Conditional inclusion hooks (per-name predicates, an association
//     filter, and a whole-fragment override)
//
// # YAML definition files
//
// Serializers can be declared in YAML and loaded with LoadFile:
//
//	version: "1"
//	serializers:
//	  - name: PostSerializer
//	    type: Post
//	    root: post
//	    embed: ids
//	    embed_in_root: true
//	    attributes: [title, body, {name: published?, key: published}]
//	    associations:
//	      - name: comments
//	        cardinality: many
//	        serializer: CommentSerializer
//	      - name: author
//	        polymorphic: true
//	        embed: ids
//
// Parsed files validate with Validate (structural diagnostics) and build
// into Descriptors with Build, which resolves intra-file inheritance.
//
// # Hooks
//
// Ruby-style convention-named predicate methods become function fields:
// AttributeConfig.If, AssociationConfig.If, Config.FilterAssociations, and
// Config.SerializeFragment. Hooks receive the narrow Context interface so
// this package stays independent of the engine.
package descriptor
