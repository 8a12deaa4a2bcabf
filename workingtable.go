// workingtable.go: the mutable working table that flows through Coercer
// (C4), Aggregator (C5), and Translator (C6): an ordered collection of
// (key-path, typed-value) entries with a no-duplicate-keys invariant,
// per spec.md §3's "working table" type and §4.4-§4.6's "replace the
// matched entry in place" / "delete the consumed entries" operations.
//
// Grounded on the teacher's validation-result accumulator pattern
// (config_validation.go: a slice built up across passes, mutated and
// filtered in place rather than rebuilt from scratch each time).
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// workingEntry is one row of the working table: a key-path paired with its
// current typed value, carrying the source line for error reporting. Raw
// retains the original uninterpreted value so the coercer (C4) can apply a
// mapping's real datatype even when that mapping names a list or bracketed
// shape the default Binary coercion would otherwise flatten.
type workingEntry struct {
	Key   KeyPath
	Raw   RawValue
	Value TypedValue
	Line  int
}

// workingTable is an ordered collection of workingEntry with no two entries
// sharing an equal Key, maintained across the coerce/aggregate/translate
// passes described in spec.md §4.4-§4.6.
type workingTable struct {
	entries []workingEntry
}

// newWorkingTable builds a table from parsed entries, each carrying a
// Binary-typed (untyped) default value until Coercer assigns its real
// datatype for entries a mapping actually matches.
func newWorkingTable(parsed []Entry) *workingTable {
	t := &workingTable{entries: make([]workingEntry, 0, len(parsed))}
	for _, e := range parsed {
		t.entries = append(t.entries, workingEntry{
			Key:   e.Key,
			Raw:   e.Raw,
			Value: defaultTypedValue(e.Raw),
			Line:  e.Line,
		})
	}
	return t
}

// defaultTypedValue renders a raw .conf value the way the Binary datatype
// would, for entries no mapping matches (spec.md §4.4: "Default datatype
// when unspecified is Binary"). List and bracketed shapes without a
// matching mapping are rendered as a List of String values, one per
// element ("k=v" for each bracketed pair).
func defaultTypedValue(raw RawValue) TypedValue {
	switch raw.Kind {
	case RawScalar:
		return String(raw.Scalar)
	default:
		items := raw.AsStringList()
		out := make([]TypedValue, len(items))
		for i, s := range items {
			out[i] = String(s)
		}
		return List(out)
	}
}

// Len reports the number of entries currently in the table.
func (t *workingTable) Len() int { return len(t.entries) }

// All returns the table's entries in current order. Callers must not
// mutate the returned slice directly; use the table's mutators instead.
func (t *workingTable) All() []workingEntry {
	return t.entries
}

// indexOf returns the position of the entry whose key equals key, or -1.
func (t *workingTable) indexOf(key KeyPath) int {
	for i, e := range t.entries {
		if e.Key.Equal(key) {
			return i
		}
	}
	return -1
}

// Get returns the entry at key, if present.
func (t *workingTable) Get(key KeyPath) (workingEntry, bool) {
	i := t.indexOf(key)
	if i < 0 {
		return workingEntry{}, false
	}
	return t.entries[i], true
}

// Replace overwrites the value of the entry at key in place, preserving its
// position. It is a no-op if no entry has that key.
func (t *workingTable) Replace(key KeyPath, value TypedValue) {
	i := t.indexOf(key)
	if i < 0 {
		return
	}
	t.entries[i].Value = value
}

// Upsert replaces the entry at key if one exists, else appends a new entry.
// This enforces the table's no-duplicate-keys invariant.
func (t *workingTable) Upsert(key KeyPath, value TypedValue, line int) {
	i := t.indexOf(key)
	if i >= 0 {
		t.entries[i].Value = value
		return
	}
	t.entries = append(t.entries, workingEntry{Key: key, Value: value, Line: line})
}

// Delete removes the entry at key, if present.
func (t *workingTable) Delete(key KeyPath) {
	i := t.indexOf(key)
	if i < 0 {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
}

// DeleteAll removes every entry whose key is in keys.
func (t *workingTable) DeleteAll(keys []KeyPath) {
	for _, k := range keys {
		t.Delete(k)
	}
}

// MatchAll returns every entry whose key matches pattern exactly (same
// length, wildcard segments captured), in table order.
func (t *workingTable) MatchAll(pattern KeyPath) []workingEntry {
	var out []workingEntry
	for _, e := range t.entries {
		if _, ok := pattern.Match(e.Key); ok {
			out = append(out, e)
		}
	}
	return out
}

// MatchPrefixAll returns every entry whose key has pattern as a proper or
// equal-length prefix (captures plus the remaining suffix), in table order.
func (t *workingTable) MatchPrefixAll(pattern KeyPath) []workingEntry {
	var out []workingEntry
	for _, e := range t.entries {
		if _, _, ok := pattern.MatchPrefix(e.Key); ok {
			out = append(out, e)
		}
	}
	return out
}
