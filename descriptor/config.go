package descriptor

// Config is the declaration surface for building a Descriptor. It mirrors
// the class-level serializer macros of the source domain: attribute and
// association declarations, a root policy, and a default embed policy.
type Config struct {
	// Name identifies the serializer (e.g. "PostSerializer").
	Name string

	// Root sets an explicit root key. Empty means auto-derive from the
	// serialized object's type name unless NoRoot is set.
	Root string

	// NoRoot suppresses root wrapping entirely.
	NoRoot bool

	// Embed sets the default embed mode for associations that do not
	// override it. EmbedInherit means "not declared here": New defaults to
	// EmbedObjects, Extend keeps the parent's policy.
	Embed EmbedMode

	// EmbedInRoot sets the default include flag for associations that do
	// not override it. In Extend it is only consulted together with a
	// declared Embed, matching the single embed declaration that carries
	// both settings.
	EmbedInRoot bool

	// IDAttribute names the identifier attribute. Defaults to "id".
	IDAttribute string

	// Attributes declares the serialized attributes, in order.
	Attributes []AttributeConfig

	// Associations declares the serialized associations, in order.
	Associations []AssociationConfig

	// FilterAssociations opts associations in/out before per-name
	// predicates run.
	FilterAssociations AssociationFilter

	// SerializeFragment replaces the default fragment production loop.
	SerializeFragment FragmentFunc
}

// AttributeConfig declares a single attribute.
type AttributeConfig struct {
	// Name is the source name, optionally carrying a boolean marker.
	Name string
	// Key overrides the derived output key.
	Key string
	// Getter overrides generic attribute resolution.
	Getter Getter
	// If gates inclusion.
	If Predicate
}

// AssociationConfig declares a single association.
type AssociationConfig struct {
	// Name is the source name of the association.
	Name string
	// Key overrides the derived output key.
	Key string
	// Cardinality is One (default) or Many.
	Cardinality Cardinality
	// Embed overrides the descriptor default when not EmbedInherit.
	Embed EmbedMode
	// Include overrides the descriptor's default include flag when set.
	Include *bool
	// Serializer names the registry serializer for associated objects.
	Serializer string
	// SerializerRef references a descriptor directly; wins over Serializer.
	SerializerRef *Descriptor
	// Polymorphic enables concrete-type tagging and type-keyed lookup.
	Polymorphic bool
	// SideloadKey overrides the derived side-load bucket key.
	SideloadKey string
	// Getter overrides generic association resolution.
	Getter Getter
	// If gates inclusion.
	If Predicate
}

// Include is a convenience for AssociationConfig.Include pointers.
func Include(v bool) *bool { return &v }

// New normalizes a Config into an immutable Descriptor. Output keys are
// derived (boolean markers stripped), the default embed mode falls back to
// EmbedObjects, and the identifier attribute falls back to "id".
func New(cfg Config) *Descriptor {
	d := &Descriptor{
		Name:               cfg.Name,
		DefaultEmbed:       cfg.Embed,
		DefaultInclude:     cfg.EmbedInRoot,
		IDAttribute:        cfg.IDAttribute,
		FilterAssociations: cfg.FilterAssociations,
		SerializeFragment:  cfg.SerializeFragment,
	}

	switch {
	case cfg.NoRoot:
		d.RootMode = RootSuppressed
	case cfg.Root != "":
		d.RootMode = RootNamed
		d.RootName = cfg.Root
	default:
		d.RootMode = RootAuto
	}

	if d.DefaultEmbed == EmbedInherit {
		d.DefaultEmbed = EmbedObjects
	}

	if d.IDAttribute == "" {
		d.IDAttribute = "id"
	}

	for _, a := range cfg.Attributes {
		d.Attributes = append(d.Attributes, newAttributeSpec(a))
	}

	for _, a := range cfg.Associations {
		d.Associations = append(d.Associations, newAssociationSpec(a))
	}

	return d
}

// Extend composes a child descriptor from a parent plus additional
// declarations. Child attribute/association declarations override parent
// entries with the same source name in place; new declarations append.
// The child's root policy and embed policy apply only when declared,
// otherwise the parent's are kept.
func Extend(parent *Descriptor, cfg Config) *Descriptor {
	d := &Descriptor{
		Name:               cfg.Name,
		RootMode:           parent.RootMode,
		RootName:           parent.RootName,
		DefaultEmbed:       parent.DefaultEmbed,
		DefaultInclude:     parent.DefaultInclude,
		IDAttribute:        parent.IDAttribute,
		Attributes:         append([]AttributeSpec(nil), parent.Attributes...),
		Associations:       append([]AssociationSpec(nil), parent.Associations...),
		FilterAssociations: parent.FilterAssociations,
		SerializeFragment:  parent.SerializeFragment,
	}

	if d.Name == "" {
		d.Name = parent.Name
	}

	switch {
	case cfg.NoRoot:
		d.RootMode = RootSuppressed
		d.RootName = ""
	case cfg.Root != "":
		d.RootMode = RootNamed
		d.RootName = cfg.Root
	}

	if cfg.Embed != EmbedInherit {
		d.DefaultEmbed = cfg.Embed
		d.DefaultInclude = cfg.EmbedInRoot
	}

	if cfg.IDAttribute != "" {
		d.IDAttribute = cfg.IDAttribute
	}

	if cfg.FilterAssociations != nil {
		d.FilterAssociations = cfg.FilterAssociations
	}

	if cfg.SerializeFragment != nil {
		d.SerializeFragment = cfg.SerializeFragment
	}

	for _, a := range cfg.Attributes {
		spec := newAttributeSpec(a)
		if i := attrIndex(d.Attributes, spec.SourceName); i >= 0 {
			d.Attributes[i] = spec
		} else {
			d.Attributes = append(d.Attributes, spec)
		}
	}

	for _, a := range cfg.Associations {
		spec := newAssociationSpec(a)
		if i := assocIndex(d.Associations, spec.SourceName); i >= 0 {
			d.Associations[i] = spec
		} else {
			d.Associations = append(d.Associations, spec)
		}
	}

	return d
}

func newAttributeSpec(cfg AttributeConfig) AttributeSpec {
	return AttributeSpec{
		SourceName: cfg.Name,
		OutputKey:  DeriveKey(cfg.Name, cfg.Key),
		Getter:     cfg.Getter,
		If:         cfg.If,
	}
}

func newAssociationSpec(cfg AssociationConfig) AssociationSpec {
	return AssociationSpec{
		SourceName:    cfg.Name,
		OutputKey:     DeriveKey(cfg.Name, cfg.Key),
		Cardinality:   cfg.Cardinality,
		Embed:         cfg.Embed,
		Include:       cfg.Include,
		Serializer:    cfg.Serializer,
		SerializerRef: cfg.SerializerRef,
		Polymorphic:   cfg.Polymorphic,
		SideloadKey:   cfg.SideloadKey,
		Getter:        cfg.Getter,
		If:            cfg.If,
	}
}

func attrIndex(specs []AttributeSpec, sourceName string) int {
	for i, s := range specs {
		if s.SourceName == sourceName {
			return i
		}
	}

	return -1
}

func assocIndex(specs []AssociationSpec, sourceName string) int {
	for i, s := range specs {
		if s.SourceName == sourceName {
			return i
		}
	}

	return -1
}
