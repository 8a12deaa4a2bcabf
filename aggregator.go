// aggregator.go: Aggregator (C5) - collects the working-table entries that
// belong to a Complex or List(Complex) mapping into a single nested
// subtree (or a list of them), per spec.md §4.5.
//
// This is the hardest pass in the pipeline: a Complex mapping's key names a
// prefix shared by several concrete .conf keys, and every entry under that
// prefix must be folded into one aggregated value before C6/C7 ever see it.
// spec.md §4.5's own wording and its §8 worked examples disagree on three
// points, resolved here and recorded in DESIGN.md:
//
//   - whether a Complex mapping's key may match a concrete key of the SAME
//     length (zero further child segments) or only a STRICTLY longer one.
//     We accept both: a mapping key matches if it is a prefix of, or equal
//     to, the concrete key (KeyPath.MatchPrefix already allows an empty
//     suffix).
//   - what happens at the key an aggregated value lands on. Keys are not
//     truncated here (that is the translator's step, translator.go): each
//     group's subtree (a VTree) is inserted at the mapping's target key and
//     keyword-unioned with any tree already there, which TermTreeBuilder
//     (C7) in turn merges with whatever else lands there instead of
//     overwriting it.
//   - what a mapping key's wildcard means when its `to` target is fixed
//     (no wildcard of its own): scenario 5's "listener.http.*" mapped to
//     a constant "listener.http" names one child leaf per wildcard value
//     ("internal", "external"), not a second instance to keep separate.
//     Only as many leading captures as the target itself substitutes pick
//     out distinct groups; any further captures become leaf names inside
//     the single resulting subtree.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// captureGroup is one distinct set of wildcard captures observed while
// scanning entries against a Complex mapping's key, together with the
// member entries that belong to that instance, in table order. captures
// holds only the LEADING wildcard captures that identify the instance
// (spec.md §8's "db", "listeners.http" examples); a mapping key may carry
// further trailing wildcards that do not distinguish one instance from
// another but instead name a child leaf within it (spec.md §8 scenario 5:
// "listener.http.*" with a fixed `to: listener.http` - the wildcard is the
// child's name, not a second instance axis).
type captureGroup struct {
	captures []string
	members  []suffixEntry
}

// suffixEntry is one matched entry's position relative to its group: path
// is where, under the group's subtree, its value belongs - the captures
// beyond the group's identifying ones (the "leaf-naming" wildcards),
// followed by the concrete suffix beyond the mapping key's own length.
// source is the entry's original concrete key, kept only to recover a leaf
// name when path is empty (the same-length-match case).
type suffixEntry struct {
	path   KeyPath
	value  TypedValue
	source KeyPath
}

// isAggregationMapping reports whether m's datatype is Complex or a List of
// Complex, the two shapes the aggregator (C5), not the coercer (C4),
// consumes.
func isAggregationMapping(m Mapping) bool {
	if m.Datatype.Kind == TComplex {
		return true
	}
	return m.Datatype.Kind == TList && m.Datatype.Inner != nil && m.Datatype.Inner.Kind == TComplex
}

// Aggregate runs every Complex and List(Complex) mapping in schema.Mappings
// against table, replacing the consumed entries with a single aggregated
// entry per mapping instance.
func Aggregate(schema *Schema, table *workingTable) error {
	for _, m := range schema.Mappings {
		switch {
		case m.Datatype.Kind == TComplex:
			if err := aggregateComplex(m, table); err != nil {
				return err
			}
		case m.Datatype.Kind == TList && m.Datatype.Inner != nil && m.Datatype.Inner.Kind == TComplex:
			if err := aggregateListComplex(m, table); err != nil {
				return err
			}
		}
	}
	return nil
}

// groupByPrefix scans table for entries whose key has m.Key as a prefix (or
// equal to it), grouping them by their leading groupCaptureCount captured
// wildcard values in first-seen order. Any further captures beyond that
// count - trailing wildcards in m.Key that name a child leaf rather than a
// second instance axis - are folded into each member's path alongside the
// concrete suffix. Returns the consumed source keys alongside the groups so
// the caller can delete them afterward.
func groupByPrefix(m Mapping, table *workingTable, groupCaptureCount int) (groups []*captureGroup, consumed []KeyPath) {
	index := map[string]*captureGroup{}
	for _, e := range table.All() {
		captures, suffix, ok := m.Key.MatchPrefix(e.Key)
		if !ok {
			continue
		}
		if groupCaptureCount > len(captures) {
			groupCaptureCount = len(captures)
		}
		groupCaptures := captures[:groupCaptureCount]
		leafCaptures := captures[groupCaptureCount:]

		groupKey := KeyPath(groupCaptures).String()
		g, exists := index[groupKey]
		if !exists {
			g = &captureGroup{captures: groupCaptures}
			index[groupKey] = g
			groups = append(groups, g)
		}
		path := append(append(KeyPath{}, leafCaptures...), suffix...)
		g.members = append(g.members, suffixEntry{path: path, value: e.Value, source: e.Key})
		consumed = append(consumed, e.Key)
	}
	return groups, consumed
}

// buildGroupSubtree folds a capture group's members into one TermTree,
// keyed by each member's path (the leaf-naming captures, then the concrete
// suffix, beyond the group's identifying captures). A member whose path is
// empty - the same-length-match case, where the matched entry's key is
// exactly the group's instance with no child segment of its own - is
// folded under the entry's own last concrete key segment, since a tree
// cannot hold a value at its own root.
func buildGroupSubtree(g *captureGroup) *TermTree {
	tree := NewTermTree()
	for _, mem := range g.members {
		if len(mem.path) == 0 {
			leaf := mem.source[len(mem.source)-1]
			tree.Set(leaf, mem.value)
			continue
		}
		tree.insertPath(mem.path, mem.value)
	}
	return tree
}

// aggregateComplex handles a single Complex mapping: every matched group
// becomes one merged subtree inserted at the mapping's (captures-
// substituted) target key. Only as many leading captures as the target
// itself substitutes identify distinct groups; any further wildcard in
// m.Key names a child leaf within the single resulting subtree.
func aggregateComplex(m Mapping, table *workingTable) error {
	groups, consumed := groupByPrefix(m, table, targetWildcardCount(m))
	if len(groups) == 0 {
		return nil
	}

	table.DeleteAll(consumed)
	for _, g := range groups {
		subtree := buildGroupSubtree(g)
		target := aggregationTarget(m, g.captures)
		mergeAggregatedSubtree(table, target, subtree)
	}

	table.DeleteAll(consumed)
	return nil
}

// aggregateListComplex handles a List(Complex) mapping: every matched
// group becomes one item subtree, and all items are collected, in
// first-seen order, into a single list assigned to m.To if set, else to the
// mapping's key with its trailing wildcard segments stripped. Every capture in
// m.Key identifies a distinct list item (there is no single capture set to
// substitute into a fixed target, since the list holds every instance).
func aggregateListComplex(m Mapping, table *workingTable) error {
	groups, consumed := groupByPrefix(m, table, m.Key.WildcardCount())
	if len(groups) == 0 {
		return nil
	}

	items := make([]TypedValue, 0, len(groups))
	for _, g := range groups {
		subtree := buildGroupSubtree(g)
		items = append(items, Tree(subtree))
	}

	target := m.To
	if target == nil {
		target = listAggregationTarget(m.Key)
	}
	table.Upsert(target, List(items), 0)
	table.DeleteAll(consumed)
	return nil
}

// targetWildcardCount reports how many of a Complex mapping's leading
// captures identify its aggregation target: the wildcard count of To if
// set, else of the mapping's own Key (the historical behavior, where every
// capture substitutes into the key itself).
func targetWildcardCount(m Mapping) int {
	if m.To != nil {
		return m.To.WildcardCount()
	}
	return m.Key.WildcardCount()
}

// aggregationTarget computes where a Complex group's subtree lands: the
// mapping's To key if set (itself substituted with the group's captures),
// else the mapping's own key substituted with the group's captures.
func aggregationTarget(m Mapping, captures []string) KeyPath {
	if m.To != nil {
		return m.To.Substitute(captures)
	}
	return m.Key.Substitute(captures)
}

// listAggregationTarget strips trailing Wildcard segments from key, since a
// List(Complex) mapping's key typically ends in the wildcard that
// distinguishes one list item from the next.
func listAggregationTarget(key KeyPath) KeyPath {
	end := len(key)
	for end > 0 && key[end-1] == Wildcard {
		end--
	}
	if end == 0 {
		return key.Clone()
	}
	return key[:end].Clone()
}

// mergeAggregatedSubtree inserts subtree at target, keyword-unioning it
// with whatever tree-shaped value already lives there instead of
// overwriting it (spec.md §4.5 step 5).
func mergeAggregatedSubtree(table *workingTable, target KeyPath, subtree *TermTree) {
	existing, ok := table.Get(target)
	if ok && existing.Value.Kind == VTree {
		table.Replace(target, Tree(mergeKeywordUnion(existing.Value.Tree, subtree)))
		return
	}
	table.Upsert(target, Tree(subtree), 0)
}
