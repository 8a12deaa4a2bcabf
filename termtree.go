// termtree.go: TermTreeBuilder (C7) - the nested term tree and its merge
// semantics against a baseline configuration.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import "sort"

// TermTree is an insertion-ordered mapping from atom to either a leaf
// TypedValue or another TermTree, per spec.md §3. Insertion order matters
// when the tree is rendered, so it is backed by a slice, not a Go map.
type TermTree struct {
	keys   []string
	values map[string]TypedValue
}

// NewTermTree returns an empty tree.
func NewTermTree() *TermTree {
	return &TermTree{values: make(map[string]TypedValue)}
}

// Keys returns the atom keys in insertion order.
func (t *TermTree) Keys() []string {
	if t == nil {
		return nil
	}
	return t.keys
}

// Get returns the value at key and whether it is present.
func (t *TermTree) Get(key string) (TypedValue, bool) {
	if t == nil {
		return TypedValue{}, false
	}
	v, ok := t.values[key]
	return v, ok
}

// Set inserts or overwrites the value at key, preserving the key's original
// position if it already existed, else appending it.
func (t *TermTree) Set(key string, value TypedValue) {
	if _, exists := t.values[key]; !exists {
		t.keys = append(t.keys, key)
	}
	t.values[key] = value
}

// Len reports the number of top-level keys.
func (t *TermTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Clone returns a deep-enough copy, as mergeKeywordUnion uses to avoid
// mutating its dst (values are not deep-copied beyond nested trees, which
// are themselves cloned).
func (t *TermTree) Clone() *TermTree {
	if t == nil {
		return nil
	}
	out := NewTermTree()
	for _, k := range t.keys {
		v := t.values[k]
		if v.Kind == VTree {
			v = Tree(v.Tree.Clone())
		}
		out.Set(k, v)
	}
	return out
}

// Equal reports whether two trees have the same keys (any order) mapping to
// equal values. Used by the "idempotent merge" property in spec.md §8.
func (t *TermTree) Equal(other *TermTree) bool {
	if t == nil || other == nil {
		return t == nil && other == nil
	}
	if len(t.keys) != len(other.keys) {
		return false
	}
	for _, k := range t.keys {
		a, ok := t.values[k]
		if !ok {
			return false
		}
		b, ok := other.values[k]
		if !ok {
			return false
		}
		if !a.Equal(b) {
			return false
		}
	}
	return true
}

// insertPath walks path segment by segment from the root, materializing
// missing intermediate trees, and sets leaf at the final segment. This is
// the "fold over the path" operation named in spec.md §4.5 step 3 and
// §4.7's insertion loop.
func (t *TermTree) insertPath(path KeyPath, leaf TypedValue) {
	if len(path) == 0 {
		return
	}
	node := t
	for _, seg := range path[:len(path)-1] {
		existing, ok := node.Get(seg)
		var child *TermTree
		if ok && existing.Kind == VTree {
			child = existing.Tree
		} else {
			child = NewTermTree()
			node.Set(seg, Tree(child))
		}
		node = child
	}
	node.Set(path[len(path)-1], leaf)
}

// mergeKeywordUnion merges src into dst, right-biased per key: src's value
// wins on conflict unless both sides are trees, in which case they merge
// recursively. This is the "keyword-union" policy spec.md §4.5 step 5 uses
// when a Complex mapping's substituted `to` key collides with an existing
// table entry.
func mergeKeywordUnion(dst, src *TermTree) *TermTree {
	if dst == nil {
		return src
	}
	if src == nil {
		return dst
	}
	out := dst.Clone()
	for _, k := range src.keys {
		newVal := src.values[k]
		if oldVal, ok := out.Get(k); ok && oldVal.Kind == VTree && newVal.Kind == VTree {
			out.Set(k, Tree(mergeKeywordUnion(oldVal.Tree, newVal.Tree)))
			continue
		}
		out.Set(k, newVal)
	}
	return out
}

// BuildTermTree sorts the working table's remaining entries by ascending
// key length (spec.md §4.7: "parents are inserted before children") and
// materializes the nested tree.
func BuildTermTree(entries []workingEntry) *TermTree {
	sorted := make([]workingEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Key) < len(sorted[j].Key)
	})

	root := NewTermTree()
	for _, e := range sorted {
		if e.Value.Kind == VTree && len(e.Key) > 0 {
			// A tree-valued entry (Complex aggregation result, or a
			// translation's truncated-key pair list) merges with
			// whatever already lives at that path instead of overwriting it.
			node, path := root, e.Key
			mergeInto(node, path, e.Value.Tree)
			continue
		}
		root.insertPath(e.Key, e.Value)
	}
	return root
}

// mergeInto walks to path's parent, then keyword-unions src into whatever
// tree already lives at path's final segment (creating one if absent).
func mergeInto(root *TermTree, path KeyPath, src *TermTree) {
	if len(path) == 0 {
		return
	}
	node := root
	for _, seg := range path[:len(path)-1] {
		existing, ok := node.Get(seg)
		var child *TermTree
		if ok && existing.Kind == VTree {
			child = existing.Tree
		} else {
			child = NewTermTree()
			node.Set(seg, Tree(child))
		}
		node = child
	}
	last := path[len(path)-1]
	existing, ok := node.Get(last)
	if ok && existing.Kind == VTree {
		node.Set(last, Tree(mergeKeywordUnion(existing.Tree, src)))
	} else {
		node.Set(last, Tree(src))
	}
}

// MergeBaseline merges a freshly-built term tree on top of a pre-existing
// baseline tree, per spec.md §4.7 / §9's documented merge policy:
//
//   - same key, both trees           -> merge recursively
//   - both char-lists                -> new wins
//   - both generic lists             -> new wins (spec.md §9: the source's
//     merge/3 has an empty is_list/is_list branch; we pick "new wins" and
//     surface it as a documented policy rather than replicate the bug)
//   - baseline side absent           -> new wins
//   - both host/port pairs           -> new wins
//   - both pair lists of equal length -> merge element-wise by position
//   - otherwise                      -> new wins
func MergeBaseline(baseline, fresh *TermTree) *TermTree {
	if baseline == nil {
		return fresh
	}
	if fresh == nil {
		return baseline
	}

	out := NewTermTree()
	for _, k := range baseline.keys {
		out.Set(k, baseline.values[k])
	}
	for _, k := range fresh.keys {
		newVal := fresh.values[k]
		oldVal, existed := out.Get(k)
		if !existed {
			out.Set(k, newVal)
			continue
		}
		out.Set(k, mergeValue(oldVal, newVal))
	}
	return out
}

func mergeValue(old, new TypedValue) TypedValue {
	switch {
	case old.Kind == VTree && new.Kind == VTree:
		return Tree(MergeBaseline(old.Tree, new.Tree))
	case old.Kind == VCharList && new.Kind == VCharList:
		return new
	case old.Kind == VList && new.Kind == VList:
		return new
	case old.Kind == VHostPort && new.Kind == VHostPort:
		return new
	case old.Kind == VPairList && new.Kind == VPairList && len(old.Pairs) == len(new.Pairs):
		merged := make([]AtomValue, len(new.Pairs))
		for i := range new.Pairs {
			merged[i] = AtomValue{Atom: new.Pairs[i].Atom, Value: mergeValue(old.Pairs[i].Value, new.Pairs[i].Value)}
		}
		return PairList(merged)
	default:
		return new
	}
}
