package descriptor

import (
	"fmt"

	"document-composer/internal/common"
	"document-composer/internal/diagnostic"
)

// Diagnostic codes produced by Validate.
const (
	CodeMissingName       = "missing-name"
	CodeDuplicateName     = "duplicate-name"
	CodeDuplicateKey      = "duplicate-key"
	CodeUnknownEmbed      = "unknown-embed"
	CodeUnknownCard       = "unknown-cardinality"
	CodeUnknownExtends    = "unknown-extends"
	CodeUnknownSerializer = "unknown-serializer"
	CodePolyExplicit      = "polymorphic-explicit-serializer"
	CodeIncludeObjects    = "include-with-objects"
	CodeRootConflict      = "root-conflict"
	CodeEmptySerializer   = "empty-serializer"
)

// Validate checks a parsed File for structural problems before Build.
// Errors make the file unusable; warnings and infos point at declarations
// that are legal but likely not what the author meant.
func Validate(f *File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	names := make(map[string]bool, len(f.Serializers))
	for _, def := range f.Serializers {
		if def.Name == "" {
			diags.AddError(CodeMissingName, "serializer definition requires a name", "", "")
			continue
		}

		if names[def.Name] {
			diags.AddError(CodeDuplicateName,
				fmt.Sprintf("serializer %q is defined more than once", def.Name), def.Name, "")
		}

		names[def.Name] = true
	}

	for _, def := range f.Serializers {
		validateSerializer(def, names, &diags)
	}

	return diags
}

func validateSerializer(def SerializerDef, names map[string]bool, diags *diagnostic.Diagnostics) {
	if def.Extends != "" && !names[def.Extends] {
		diags.AddError(CodeUnknownExtends,
			fmt.Sprintf("extends unknown serializer %q", def.Extends), def.Name, "")
	}

	if def.Root != "" && def.NoRoot {
		diags.AddWarning(CodeRootConflict,
			"root name is ignored because no_root suppresses wrapping", def.Name, "")
	}

	if _, err := ParseEmbedMode(def.Embed); err != nil {
		diags.AddError(CodeUnknownEmbed, err.Error(), def.Name, "")
	}

	if common.IsEmpty(def.Attributes) && common.IsEmpty(def.Associations) && def.Extends == "" {
		diags.AddInfo(CodeEmptySerializer, "serializer declares no attributes or associations", def.Name, "")
	}

	seenKeys := make(map[string]bool, len(def.Attributes)+len(def.Associations))

	for _, a := range def.Attributes {
		key := DeriveKey(a.Name, a.Key)
		if seenKeys[key] {
			diags.AddError(CodeDuplicateKey,
				fmt.Sprintf("output key %q is produced by more than one declaration", key), def.Name, a.Name)
		}

		seenKeys[key] = true
	}

	for _, a := range def.Associations {
		validateAssociation(def, a, names, seenKeys, diags)
	}
}

func validateAssociation(
	def SerializerDef,
	a AssociationDef,
	names map[string]bool,
	seenKeys map[string]bool,
	diags *diagnostic.Diagnostics,
) {
	if a.Name == "" {
		diags.AddError(CodeMissingName, "association definition requires a name", def.Name, "")
		return
	}

	key := DeriveKey(a.Name, a.Key)
	if seenKeys[key] {
		diags.AddError(CodeDuplicateKey,
			fmt.Sprintf("output key %q is produced by more than one declaration", key), def.Name, a.Name)
	}

	seenKeys[key] = true

	if _, err := ParseCardinality(a.Cardinality); err != nil {
		diags.AddError(CodeUnknownCard, err.Error(), def.Name, a.Name)
	}

	embed, err := ParseEmbedMode(a.Embed)
	if err != nil {
		diags.AddError(CodeUnknownEmbed, err.Error(), def.Name, a.Name)
		return
	}

	if a.Serializer != "" && !names[a.Serializer] {
		// May still resolve against the runtime registry; not fatal here.
		diags.AddWarning(CodeUnknownSerializer,
			fmt.Sprintf("serializer %q is not defined in this file", a.Serializer), def.Name, a.Name)
	}

	if a.Polymorphic && a.Serializer != "" {
		diags.AddWarning(CodePolyExplicit,
			"explicit serializer wins over polymorphic lookup; polymorphic flag only affects type tagging",
			def.Name, a.Name)
	}

	includeSet := a.Include != nil && *a.Include

	defEmbed, defErr := ParseEmbedMode(def.Embed)
	effective := embed
	if effective == EmbedInherit && defErr == nil && defEmbed != EmbedInherit {
		effective = defEmbed
	}

	if includeSet && effective == EmbedObjects {
		diags.AddInfo(CodeIncludeObjects,
			"include has no effect with objects embedding; entities are nested, not side-loaded",
			def.Name, a.Name)
	}
}
