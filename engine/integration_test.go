package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-composer/descriptor"
	"document-composer/document"
	"document-composer/registry"
)

// End-to-end: YAML-defined serializers, side-loading, and deterministic
// JSON output.
func TestYAMLDefinedSerializersEndToEnd(t *testing.T) {
	yaml := `
version: "1"
serializers:
  - name: CommentSerializer
    type: Comment
    attributes: [id, body]
  - name: PostSerializer
    type: Post
    root: post
    attributes: [id, title, {name: 'published?', key: published}]
    associations:
      - name: comments
        cardinality: many
        serializer: CommentSerializer
        embed: ids
        include: true
`
	f, err := descriptor.Parse([]byte(yaml))
	require.NoError(t, err)

	diags := descriptor.Validate(f)
	require.True(t, diags.IsValid(), "diagnostics: %v", diags.Errors)

	reg := registry.New()
	require.NoError(t, reg.Load(f))

	postDesc, ok := reg.ByName("PostSerializer")
	require.True(t, ok)

	doc, err := New(postDesc, NewContextWith(reg, nil, nil)).Document(samplePost())
	require.NoError(t, err)

	data, err := document.Marshal(doc)
	require.NoError(t, err)

	expected := `{"comments":[{"body":"first","id":1},{"body":"second","id":2}],` +
		`"post":{"comments":[1,2],"id":1,"published":true,"title":"Declarative serialization"}}`
	assert.JSONEq(t, expected, string(data))
}

// One parent with two children, ids embedding plus
// include, produces ids in place and full entities side-loaded once each.
func TestParentChildrenDocumentShape(t *testing.T) {
	doc, err := New(postWithIncludedComments(), testContext(testRegistry(), map[string]any{OptionRoot: "post"})).
		Document(samplePost())
	require.NoError(t, err)

	require.Len(t, doc, 2)

	post := doc["post"].(document.Fragment)
	assert.Equal(t, []any{1, 2}, post["comments"])

	comments := doc["comments"].([]any)
	assert.Len(t, comments, 2)
}
