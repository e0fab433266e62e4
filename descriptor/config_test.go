package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	d := New(Config{Name: "PostSerializer"})

	assert.Equal(t, RootAuto, d.RootMode)
	assert.Equal(t, EmbedObjects, d.DefaultEmbed)
	assert.False(t, d.DefaultInclude)
	assert.Equal(t, "id", d.IDAttribute)
}

func TestNew_KeyDerivationStripsBooleanMarker(t *testing.T) {
	d := New(Config{
		Name: "PostSerializer",
		Attributes: []AttributeConfig{
			{Name: "published?"},
			{Name: "hidden?", Key: "hidden?"},
			{Name: "body", Key: "content"},
		},
	})

	assert.Equal(t, "published", d.Attributes[0].OutputKey)
	assert.Equal(t, "published?", d.Attributes[0].SourceName)
	// An explicit key is taken verbatim, marker and all.
	assert.Equal(t, "hidden?", d.Attributes[1].OutputKey)
	assert.Equal(t, "content", d.Attributes[2].OutputKey)
}

func TestNew_RootPolicy(t *testing.T) {
	assert.Equal(t, RootAuto, New(Config{}).RootMode)

	named := New(Config{Root: "article"})
	assert.Equal(t, RootNamed, named.RootMode)
	assert.Equal(t, "article", named.RootName)

	assert.Equal(t, RootSuppressed, New(Config{NoRoot: true}).RootMode)
}

func TestEffectiveEmbedAndInclude(t *testing.T) {
	spec := AssociationSpec{}
	assert.Equal(t, EmbedObjects, spec.EffectiveEmbed(EmbedObjects))
	assert.True(t, spec.EffectiveInclude(true))

	spec = AssociationSpec{Embed: EmbedIDs, Include: Include(false)}
	assert.Equal(t, EmbedIDs, spec.EffectiveEmbed(EmbedObjects))
	assert.False(t, spec.EffectiveInclude(true))
}

func TestExtend_OverridesByNameInPlace(t *testing.T) {
	parent := New(Config{
		Name: "PostSerializer",
		Root: "post",
		Attributes: []AttributeConfig{
			{Name: "title"},
			{Name: "body"},
		},
		Associations: []AssociationConfig{
			{Name: "comments", Cardinality: Many},
		},
	})

	child := Extend(parent, Config{
		Name: "AdminPostSerializer",
		Attributes: []AttributeConfig{
			{Name: "body", Key: "raw_body"},
			{Name: "internal_notes"},
		},
	})

	require.Len(t, child.Attributes, 3)
	assert.Equal(t, "title", child.Attributes[0].SourceName)
	// Overridden declaration keeps the parent's position.
	assert.Equal(t, "body", child.Attributes[1].SourceName)
	assert.Equal(t, "raw_body", child.Attributes[1].OutputKey)
	assert.Equal(t, "internal_notes", child.Attributes[2].SourceName)

	// Parent untouched.
	assert.Equal(t, "body", parent.Attributes[1].OutputKey)

	// Unset policies inherit.
	assert.Equal(t, RootNamed, child.RootMode)
	assert.Equal(t, "post", child.RootName)
}

func TestExtend_PolicyOverrides(t *testing.T) {
	parent := New(Config{Name: "PostSerializer", Root: "post"})

	noRoot := Extend(parent, Config{NoRoot: true})
	assert.Equal(t, RootSuppressed, noRoot.RootMode)

	embedded := Extend(parent, Config{Embed: EmbedIDs, EmbedInRoot: true})
	assert.Equal(t, EmbedIDs, embedded.DefaultEmbed)
	assert.True(t, embedded.DefaultInclude)

	// Name falls back to the parent's when not declared.
	assert.Equal(t, "PostSerializer", noRoot.Name)
}

func TestParseEnums(t *testing.T) {
	m, err := ParseEmbedMode("ids")
	require.NoError(t, err)
	assert.Equal(t, EmbedIDs, m)

	_, err = ParseEmbedMode("inline")
	assert.Error(t, err)

	c, err := ParseCardinality("many")
	require.NoError(t, err)
	assert.Equal(t, Many, c)

	_, err = ParseCardinality("several")
	assert.Error(t, err)

	assert.Equal(t, "ids", EmbedIDs.String())
	assert.Equal(t, "many", Many.String())
	assert.Equal(t, "suppressed", RootSuppressed.String())
}
