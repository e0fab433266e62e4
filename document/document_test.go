package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_DeterministicKeyOrder(t *testing.T) {
	doc := Document{
		"post":     Fragment{"title": "a", "id": 1},
		"comments": []any{Fragment{"id": 2}},
	}

	first, err := Marshal(doc)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Marshal(doc)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMerge_ExistingKeysWin(t *testing.T) {
	doc := Document{"post": Fragment{"id": 1}}
	doc.Merge(Document{"post": Fragment{"id": 99}, "comments": []any{}})

	assert.Equal(t, Fragment{"id": 1}, doc["post"])
	assert.Contains(t, doc, "comments")
}

func TestSet_Replaces(t *testing.T) {
	doc := Document{"post": 1}
	doc.Set("post", 2)

	assert.Equal(t, 2, doc["post"])
}
