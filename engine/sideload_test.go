package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideloads_FirstWriteWins(t *testing.T) {
	s := NewSideloads()

	s.Register("comments", 1, map[string]any{"id": 1, "body": "original"})
	s.Register("comments", 1, map[string]any{"id": 1, "body": "repeat"})
	s.Register("comments", 2, map[string]any{"id": 2})

	buckets := s.Drain()
	require.Len(t, buckets, 1)
	require.Len(t, buckets[0].Documents, 2)
	assert.Equal(t, map[string]any{"id": 1, "body": "original"}, buckets[0].Documents[0])
}

func TestSideloads_BucketAndDocumentOrder(t *testing.T) {
	s := NewSideloads()

	s.Register("tags", 10, map[string]any{"id": 10})
	s.Register("comments", 2, map[string]any{"id": 2})
	s.Register("tags", 9, map[string]any{"id": 9})

	buckets := s.Drain()
	require.Len(t, buckets, 2)

	assert.Equal(t, "tags", buckets[0].Key)
	assert.Equal(t, "comments", buckets[1].Key)
	assert.Equal(t, map[string]any{"id": 10}, buckets[0].Documents[0])
	assert.Equal(t, map[string]any{"id": 9}, buckets[0].Documents[1])
}

func TestSideloads_Empty(t *testing.T) {
	s := NewSideloads()
	assert.True(t, s.Empty())

	s.Register("comments", 1, nil)
	assert.False(t, s.Empty())
}
