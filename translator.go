// translator.go: Translator (C6) - rewrites the value under each matched
// entry through its schema translation function, relocating the result one
// key segment up, per spec.md §4.6.
//
// Resolves the same kind of spec.md §4.6/§8 tension the aggregator does:
// "replace the entry... with the key truncated by one segment" would
// discard the leaf atom if taken literally, but §8's worked example still
// finds the value reachable under its original full key. We build a
// one-entry (leaf atom, translated value) subtree and merge it at the
// truncated key, the same insertion TermTreeBuilder (C7) performs for
// Complex aggregation results.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// runTranslations runs every schema translation, in the schema's
// declaration order, against table. Translations with a matching
// accumulator-threading (arity-3) function see the accumulator returned by
// the previous matched entry of the SAME translation, starting from nil;
// arity-2 functions are called independently per entry.
func runTranslations(schema *Schema, table *workingTable) error {
	for _, t := range schema.Translations {
		m, ok := schema.FindMapping(t.Key)
		if !ok {
			return newTranslationError(t.Key.String(), "translation has no corresponding mapping")
		}

		matches := table.MatchAll(t.Key)
		var acc interface{}
		for _, entry := range matches {
			if len(entry.Key) == 0 {
				return newTranslationError(t.Key.String(), "matched entry has an empty key")
			}
			leafKey := entry.Key[len(entry.Key)-1]
			leaf := AtomValue{Atom: leafKey, Value: entry.Value}

			var translated TypedValue
			var err error
			switch {
			case t.Fn2 != nil:
				translated, err = t.Fn2(m, leaf)
			case t.Fn3 != nil:
				translated, acc = t.Fn3(m, leaf, acc)
			default:
				err = newTranslationError(t.Key.String(), "translation has neither an arity-2 nor an arity-3 function")
			}
			if err != nil {
				return err
			}

			truncated := entry.Key[:len(entry.Key)-1]
			pairTree := NewTermTree()
			pairTree.Set(leafKey, translated)
			mergeAggregatedSubtree(table, truncated, pairTree)
			table.Delete(entry.Key)
		}
	}
	return nil
}
