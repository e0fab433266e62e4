package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FlexibleAttributeForms(t *testing.T) {
	yaml := `
serializers:
  - name: PostSerializer
    type: Post
    root: post
    attributes: [title, body, {name: 'published?', key: published}]
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)

	require.Len(t, f.Serializers, 1)
	def := f.Serializers[0]
	require.Len(t, def.Attributes, 3)
	assert.Equal(t, AttributeDef{Name: "title"}, def.Attributes[0])
	assert.Equal(t, AttributeDef{Name: "published?", Key: "published"}, def.Attributes[2])
}

func TestParse_SingleAttributeString(t *testing.T) {
	yaml := `
serializers:
  - name: TagSerializer
    attributes: label
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)
	assert.Equal(t, AttributeDefArray{{Name: "label"}}, f.Serializers[0].Attributes)
}

func TestBuild_FullDefinition(t *testing.T) {
	yaml := `
serializers:
  - name: PostSerializer
    root: post
    embed: ids
    embed_in_root: true
    attributes: [title]
    associations:
      - name: comments
        cardinality: many
        serializer: CommentSerializer
      - name: author
        polymorphic: true
        embed: ids
        include: false
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	built, err := f.Build()
	require.NoError(t, err)

	d := built["PostSerializer"]
	require.NotNil(t, d)

	assert.Equal(t, EmbedIDs, d.DefaultEmbed)
	assert.True(t, d.DefaultInclude)

	comments, ok := d.Association("comments")
	require.True(t, ok)
	assert.Equal(t, Many, comments.Cardinality)
	assert.Equal(t, "CommentSerializer", comments.Serializer)
	assert.Equal(t, EmbedInherit, comments.Embed)

	author, ok := d.Association("author")
	require.True(t, ok)
	assert.True(t, author.Polymorphic)
	require.NotNil(t, author.Include)
	assert.False(t, *author.Include)
}

func TestBuild_ExtendsAcrossDefinitionOrder(t *testing.T) {
	// The child is defined before its parent; Build resolves anyway.
	yaml := `
serializers:
  - name: AdminPostSerializer
    extends: PostSerializer
    attributes: [internal_notes]
  - name: PostSerializer
    root: post
    attributes: [title]
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	built, err := f.Build()
	require.NoError(t, err)

	admin := built["AdminPostSerializer"]
	require.NotNil(t, admin)
	require.Len(t, admin.Attributes, 2)
	assert.Equal(t, "title", admin.Attributes[0].SourceName)
	assert.Equal(t, "internal_notes", admin.Attributes[1].SourceName)
	assert.Equal(t, RootNamed, admin.RootMode)
}

func TestBuild_UnknownExtendsFails(t *testing.T) {
	yaml := `
serializers:
  - name: AdminPostSerializer
    extends: MissingSerializer
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	_, err = f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MissingSerializer")
}

func TestBuild_BadEmbedFails(t *testing.T) {
	yaml := `
serializers:
  - name: PostSerializer
    embed: inline
`
	f, err := Parse([]byte(yaml))
	require.NoError(t, err)

	_, err = f.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed mode")
}
