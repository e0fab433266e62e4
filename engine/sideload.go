package engine

import "fmt"

// Sideloads accumulates entities promoted to the top of the document,
// bucketed by type and deduplicated by identifier. One collector lives for
// one top-level call; every nested engine shares it through the Context.
type Sideloads struct {
	order   []string
	buckets map[string]*sideloadBucket
}

type sideloadBucket struct {
	order []string
	docs  map[string]any
}

// Bucket is one drained side-load bucket: the document key and the
// serialized entities in first-registration order.
type Bucket struct {
	Key       string
	Documents []any
}

// NewSideloads creates an empty collector.
func NewSideloads() *Sideloads {
	return &Sideloads{buckets: make(map[string]*sideloadBucket)}
}

// Register adds a serialized entity to a bucket. Registration is
// idempotent by (bucket, identifier): the first write wins and repeats are
// dropped, so an entity referenced from several parents is side-loaded
// once.
func (s *Sideloads) Register(bucketKey string, id any, doc any) {
	b, ok := s.buckets[bucketKey]
	if !ok {
		b = &sideloadBucket{docs: make(map[string]any)}
		s.buckets[bucketKey] = b
		s.order = append(s.order, bucketKey)
	}

	key := fmt.Sprintf("%v", id)
	if _, seen := b.docs[key]; seen {
		return
	}

	b.docs[key] = doc
	b.order = append(b.order, key)
}

// Empty returns true if nothing has been registered.
func (s *Sideloads) Empty() bool {
	return len(s.order) == 0
}

// Drain returns the buckets in first-creation order, each listing its
// documents in first-registration order. Called once, after the primary
// fragment is fully built.
func (s *Sideloads) Drain() []Bucket {
	out := make([]Bucket, 0, len(s.order))

	for _, key := range s.order {
		b := s.buckets[key]

		docs := make([]any, 0, len(b.order))
		for _, id := range b.order {
			docs = append(docs, b.docs[id])
		}

		out = append(out, Bucket{Key: key, Documents: docs})
	}

	return out
}
