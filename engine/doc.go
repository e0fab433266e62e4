// Package engine turns materialized object graphs into JSON-shaped
// documents, driven entirely by per-type descriptors.
//
// # Control flow
//
// A caller builds a Context for the call, then an Engine (or Collection)
// for the object:
//
//	ctx := engine.NewContext(currentUser, map[string]any{"root": "blog_post"})
//	doc, err := engine.New(postSerializer, ctx).Document(post)
//
// Document resolves attributes and associations depth-first, recursing
// through nested engines that share the same Context. Associations with
// ids embedding and an include flag register their full fragments with the
// context's side-load collector; Document drains the collector at the top
// of the call tree and merges the buckets alongside the root key:
//
//	{"post": {"title": "...", "comments": [1, 2]},
//	 "comments": [{"id": 1, ...}, {"id": 2, ...}]}
//
// # Concurrency
//
// Evaluation is single-threaded and synchronous within one call tree. A
// Context serves exactly one top-level call and is never shared across
// independent calls; concurrent serializations each build their own.
//
// # Errors
//
// All failures are fatal configuration errors detected depth-first:
// unresolvable attribute names, unresolvable serializers, and
// side-loading without a collecting root. They wrap the package sentinels
// and abort the whole call; only a null single-valued association is a
// legal null.
package engine
