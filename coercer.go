// coercer.go: Coercer (C4) - applies each schema mapping's datatype to the
// working-table entries it matches, in descending key-length priority
// order, per spec.md §4.4.
//
// Grounded on the teacher's tagged-kind + type-switch dispatch style
// (config_binder.go's bindKind), here dispatching by Datatype.Parse instead
// of a fixed set of Go kinds.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// Coerce applies schema.Mappings, in the Schema's already-sorted
// descending-key-length, most-literal-first priority order, to table: for
// each mapping, every entry whose key exactly matches the mapping's
// key-path (wildcards bind positionally) is parsed through the mapping's
// datatype and replaced in place. A fixed (wildcard-free) mapping with no
// matching entry at all is materialized from its default, if one is set
// (spec.md §4.4's "absent raw value" case); with neither an entry nor a
// default it contributes nothing. Entries no mapping matches are left
// untouched, carrying their default Binary-shaped value.
//
// A concrete key can match more than one mapping (spec.md §8's wildcard
// specificity example: "a.*.c" and "a.b.c" both match "a.b.c"). claimed
// tracks which keys an earlier, higher-priority mapping has already
// coerced, so a later, less specific mapping that also matches does not
// clobber it.
func Coerce(schema *Schema, table *workingTable) error {
	claimed := map[string]bool{}
	for _, m := range schema.Mappings {
		if isAggregationMapping(m) {
			// Complex and List(Complex) mappings name a prefix the
			// aggregator (C5) folds together; they have no scalar
			// datatype of their own to coerce an exact-match entry into.
			continue
		}

		matches := table.MatchAll(m.Key)
		for _, entry := range matches {
			keyStr := entry.Key.String()
			if claimed[keyStr] {
				continue
			}
			value, err := m.Datatype.Parse(entry.Key.String(), entry.Raw)
			if err != nil {
				return err
			}
			table.Replace(entry.Key, value)
			claimed[keyStr] = true
		}

		if len(matches) == 0 && !m.Key.HasWildcard() && m.Default != nil {
			value, err := m.Datatype.Parse(m.Key.String(), *m.Default)
			if err != nil {
				return err
			}
			table.Upsert(m.Key, value, 0)
			claimed[m.Key.String()] = true
		}
	}
	return nil
}
