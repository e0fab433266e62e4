package descriptor

import (
	"fmt"
	"strings"

	"document-composer/internal/common"
)

// BooleanMarker is the trailing rune on a source name that marks a
// boolean-query attribute. The marker participates in resolution but is
// stripped from the derived output key.
const BooleanMarker = "?"

// EmbedMode controls how an association value is rendered.
type EmbedMode int

const (
	// EmbedInherit defers to the owning descriptor's default embed mode.
	EmbedInherit EmbedMode = iota
	// EmbedIDs renders the associated object's identifier(s) only.
	EmbedIDs
	// EmbedObjects renders fully serialized nested fragments in place.
	EmbedObjects
)

// String returns a human-readable embed mode name.
func (m EmbedMode) String() string {
	switch m {
	case EmbedInherit:
		return "inherit"
	case EmbedIDs:
		return "ids"
	case EmbedObjects:
		return "objects"
	default:
		return common.UnknownStr
	}
}

// ParseEmbedMode parses the YAML/lint spelling of an embed mode.
// The empty string parses as EmbedInherit.
func ParseEmbedMode(s string) (EmbedMode, error) {
	switch s {
	case "", "inherit":
		return EmbedInherit, nil
	case "ids":
		return EmbedIDs, nil
	case "objects":
		return EmbedObjects, nil
	default:
		return EmbedInherit, fmt.Errorf("unrecognized embed mode %q", s)
	}
}

// Cardinality distinguishes single-valued from collection-valued associations.
type Cardinality int

const (
	// One is a single-valued association (value may be null).
	One Cardinality = iota
	// Many is a collection-valued association (null renders as an empty array).
	Many
)

// String returns a human-readable cardinality name.
func (c Cardinality) String() string {
	switch c {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return common.UnknownStr
	}
}

// ParseCardinality parses the YAML/lint spelling of a cardinality.
// The empty string parses as One.
func ParseCardinality(s string) (Cardinality, error) {
	switch s {
	case "", "one":
		return One, nil
	case "many":
		return Many, nil
	default:
		return One, fmt.Errorf("unrecognized cardinality %q", s)
	}
}

// RootMode determines whether and how the output fragment is wrapped under
// a named top-level key.
type RootMode int

const (
	// RootAuto derives the root key from the serialized object's type name.
	RootAuto RootMode = iota
	// RootNamed wraps under an explicitly configured key.
	RootNamed
	// RootSuppressed returns the bare fragment with no wrapping and no
	// side-load merge.
	RootSuppressed
)

// String returns a human-readable root mode name.
func (m RootMode) String() string {
	switch m {
	case RootAuto:
		return "auto"
	case RootNamed:
		return "named"
	case RootSuppressed:
		return "suppressed"
	default:
		return common.UnknownStr
	}
}

// Context is the slice of the serialization context visible to descriptor
// hooks. It is satisfied by the engine's context type; keeping it narrow
// keeps this package free of an engine dependency.
type Context interface {
	// Scope returns the caller-supplied opaque scope value.
	Scope() any
	// Option returns an auxiliary call option by key.
	Option(key string) (any, bool)
}

// Getter overrides value resolution for a single attribute or association.
type Getter func(obj any, ctx Context) (any, error)

// Predicate gates the inclusion of a single attribute or association.
// Returning false removes the key from the fragment entirely.
type Predicate func(obj any, ctx Context) bool

// AssociationFilter is a serializer-wide hook that opts associations in or
// out before per-name predicates run. It receives the declared association
// source names and returns the subset to keep.
type AssociationFilter func(obj any, ctx Context, names []string) []string

// Fragmenter exposes the default attribute and association maps to a
// whole-fragment override, which may combine them with its own keys.
type Fragmenter interface {
	Attributes(obj any) (map[string]any, error)
	Associations(obj any) (map[string]any, error)
}

// FragmentFunc replaces the default fragment production loop entirely.
type FragmentFunc func(obj any, ctx Context, h Fragmenter) (map[string]any, error)

// AttributeSpec is one normalized attribute declaration.
type AttributeSpec struct {
	// SourceName is the name resolved against the source object. It may
	// carry a trailing boolean marker.
	SourceName string
	// OutputKey is the key written into the fragment.
	OutputKey string
	// Getter, when set, bypasses generic attribute resolution.
	Getter Getter
	// If, when set, gates inclusion of this attribute.
	If Predicate
}

// AssociationSpec is one normalized association declaration.
type AssociationSpec struct {
	// SourceName is the name resolved against the source object.
	SourceName string
	// OutputKey is the key written into the fragment.
	OutputKey string
	// Cardinality is One or Many.
	Cardinality Cardinality
	// Embed overrides the descriptor default when not EmbedInherit.
	Embed EmbedMode
	// Include, when set, overrides the descriptor's default include flag.
	// With EmbedIDs it triggers side-loading of the full objects.
	Include *bool
	// Serializer names a registry-registered serializer for the associated
	// objects. Resolved at serialization time.
	Serializer string
	// SerializerRef references a descriptor directly and wins over
	// Serializer.
	SerializerRef *Descriptor
	// Polymorphic tags results with the concrete type of each resolved
	// object and looks the serializer up by that type.
	Polymorphic bool
	// SideloadKey overrides the derived bucket key for side-loaded entities.
	SideloadKey string
	// Getter, when set, bypasses generic association resolution.
	Getter Getter
	// If, when set, gates inclusion of this association.
	If Predicate
}

// EffectiveEmbed resolves the association's embed mode against the given
// descriptor default.
func (s AssociationSpec) EffectiveEmbed(def EmbedMode) EmbedMode {
	if s.Embed != EmbedInherit {
		return s.Embed
	}

	return def
}

// EffectiveInclude resolves the association's include flag against the
// given descriptor default.
func (s AssociationSpec) EffectiveInclude(def bool) bool {
	if s.Include != nil {
		return *s.Include
	}

	return def
}

// Descriptor is the per-type declarative serialization configuration.
// Built once via New or Extend, read-only thereafter; engines never
// mutate it, so a single descriptor is safe to share across call trees.
type Descriptor struct {
	// Name identifies the descriptor in the registry and in diagnostics.
	Name string
	// RootMode is the root wrapping policy.
	RootMode RootMode
	// RootName is the explicit root key when RootMode is RootNamed.
	RootName string
	// DefaultEmbed applies to associations declared EmbedInherit.
	// Always EmbedIDs or EmbedObjects after normalization.
	DefaultEmbed EmbedMode
	// DefaultInclude applies to associations with no Include override.
	DefaultInclude bool
	// IDAttribute names the attribute used to resolve an object's
	// identifier when it does not expose one itself.
	IDAttribute string
	// Attributes are the declared attributes, in declaration order.
	Attributes []AttributeSpec
	// Associations are the declared associations, in declaration order.
	Associations []AssociationSpec
	// FilterAssociations, when set, runs before per-name predicates.
	FilterAssociations AssociationFilter
	// SerializeFragment, when set, replaces the default fragment loop.
	SerializeFragment FragmentFunc
}

// Association returns the association spec with the given source name.
func (d *Descriptor) Association(sourceName string) (AssociationSpec, bool) {
	for _, spec := range d.Associations {
		if spec.SourceName == sourceName {
			return spec, true
		}
	}

	return AssociationSpec{}, false
}

// AssociationNames returns the declared association source names in order.
func (d *Descriptor) AssociationNames() []string {
	names := make([]string, len(d.Associations))
	for i, spec := range d.Associations {
		names[i] = spec.SourceName
	}

	return names
}

// DeriveKey produces the output key for a source name: the explicit key if
// given, otherwise the source name with a trailing boolean marker stripped.
func DeriveKey(sourceName, explicit string) string {
	if explicit != "" {
		return explicit
	}

	return strings.TrimSuffix(sourceName, BooleanMarker)
}
