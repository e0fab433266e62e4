package descriptor

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML serializer definition file.
// This is the authoritative, human-reviewed serializer configuration.
type File struct {
	// Version of the definition schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Serializers is the list of serializer definitions.
	Serializers []SerializerDef `yaml:"serializers"`
}

// SerializerDef defines one serializer in YAML form.
type SerializerDef struct {
	// Name identifies the serializer (e.g. "PostSerializer").
	Name string `yaml:"name"`

	// Type is the domain type name to register the serializer for, enabling
	// convention and polymorphic lookup (e.g. "Post").
	Type string `yaml:"type,omitempty"`

	// Extends names another serializer in the same file whose declarations
	// this one inherits.
	Extends string `yaml:"extends,omitempty"`

	// Root sets an explicit root key.
	Root string `yaml:"root,omitempty"`

	// NoRoot suppresses root wrapping.
	NoRoot bool `yaml:"no_root,omitempty"`

	// Embed is the default embed mode: "ids" or "objects".
	Embed string `yaml:"embed,omitempty"`

	// EmbedInRoot is the default include flag carried by the embed
	// declaration.
	EmbedInRoot bool `yaml:"embed_in_root,omitempty"`

	// ID names the identifier attribute (defaults to "id").
	ID string `yaml:"id,omitempty"`

	// Attributes declares the serialized attributes.
	Attributes AttributeDefArray `yaml:"attributes,omitempty"`

	// Associations declares the serialized associations.
	Associations []AssociationDef `yaml:"associations,omitempty"`
}

// AttributeDef defines one attribute in YAML form.
type AttributeDef struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key,omitempty"`
}

// AttributeDefArray is a collection of AttributeDef that can be unmarshaled
// from several YAML shapes:
//   - Single string: "title"
//   - Array of strings: [title, body]
//   - Array mixing strings and objects: [title, {name: published?, key: published}]
type AttributeDefArray []AttributeDef

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *AttributeDefArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*a = []AttributeDef{{Name: single}}
		return nil
	}

	var list []any
	if err := unmarshal(&list); err != nil {
		return errors.New("expected string or list for attributes")
	}

	result := make([]AttributeDef, 0, len(list))

	for _, item := range list {
		switch v := item.(type) {
		case string:
			result = append(result, AttributeDef{Name: v})
		case map[string]any:
			def := AttributeDef{}
			if name, ok := v["name"].(string); ok {
				def.Name = name
			}

			if key, ok := v["key"].(string); ok {
				def.Key = key
			}

			if def.Name == "" {
				return errors.New("attribute definition requires a name")
			}

			result = append(result, def)
		default:
			return fmt.Errorf("expected string or map for attribute, got %T", item)
		}
	}

	*a = result

	return nil
}

// AssociationDef defines one association in YAML form.
type AssociationDef struct {
	Name        string `yaml:"name"`
	Key         string `yaml:"key,omitempty"`
	Cardinality string `yaml:"cardinality,omitempty"`
	Serializer  string `yaml:"serializer,omitempty"`
	Embed       string `yaml:"embed,omitempty"`
	Include     *bool  `yaml:"include,omitempty"`
	Polymorphic bool   `yaml:"polymorphic,omitempty"`
	SideloadKey string `yaml:"sideload_key,omitempty"`
}

// LoadFile loads and parses a YAML serializer definition file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read serializer file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse serializer YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Build converts the parsed definitions into Descriptors, resolving
// intra-file inheritance. The returned map is keyed by serializer name.
// Definitions must validate first; Build reports the first structural
// problem it cannot work around.
func (f *File) Build() (map[string]*Descriptor, error) {
	built := make(map[string]*Descriptor, len(f.Serializers))
	pending := append([]SerializerDef(nil), f.Serializers...)

	for len(pending) > 0 {
		progressed := false
		remaining := make([]SerializerDef, 0, len(pending))

		for _, def := range pending {
			if def.Extends != "" {
				parent, ok := built[def.Extends]
				if !ok {
					remaining = append(remaining, def)
					continue
				}

				cfg, err := def.build()
				if err != nil {
					return nil, err
				}

				built[def.Name] = Extend(parent, cfg)
			} else {
				cfg, err := def.build()
				if err != nil {
					return nil, err
				}

				built[def.Name] = New(cfg)
			}

			progressed = true
		}

		if !progressed {
			first := remaining[0]
			return nil, fmt.Errorf("serializer %s extends unknown serializer %s", first.Name, first.Extends)
		}

		pending = remaining
	}

	return built, nil
}

// build converts one YAML definition into a Config.
func (def SerializerDef) build() (Config, error) {
	embed, err := ParseEmbedMode(def.Embed)
	if err != nil {
		return Config{}, fmt.Errorf("serializer %s: %w", def.Name, err)
	}

	cfg := Config{
		Name:        def.Name,
		Root:        def.Root,
		NoRoot:      def.NoRoot,
		Embed:       embed,
		EmbedInRoot: def.EmbedInRoot,
		IDAttribute: def.ID,
	}

	for _, a := range def.Attributes {
		cfg.Attributes = append(cfg.Attributes, AttributeConfig{Name: a.Name, Key: a.Key})
	}

	for _, a := range def.Associations {
		card, err := ParseCardinality(a.Cardinality)
		if err != nil {
			return Config{}, fmt.Errorf("serializer %s, association %s: %w", def.Name, a.Name, err)
		}

		assocEmbed, err := ParseEmbedMode(a.Embed)
		if err != nil {
			return Config{}, fmt.Errorf("serializer %s, association %s: %w", def.Name, a.Name, err)
		}

		cfg.Associations = append(cfg.Associations, AssociationConfig{
			Name:        a.Name,
			Key:         a.Key,
			Cardinality: card,
			Embed:       assocEmbed,
			Include:     a.Include,
			Serializer:  a.Serializer,
			Polymorphic: a.Polymorphic,
			SideloadKey: a.SideloadKey,
		})
	}

	return cfg, nil
}
