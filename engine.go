// engine.go: the top-level entry point wiring ConfParser -> Coercer ->
// Aggregator -> Translator -> TermTreeBuilder into the single synchronous
// Translate operation spec.md §1/§9 describes: no concurrency, no
// cancellation, a single result-or-error return.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// Translate runs the full pipeline over confText against schema, merging
// the result on top of baseline (which may be nil for an empty starting
// point), and returns the resulting term tree. Every stage runs in the
// fixed order spec.md §9 mandates: parse, coerce, aggregate, translate,
// build, merge.
func Translate(schema *Schema, confText []byte, baseline *TermTree) (*TermTree, error) {
	return TranslateWithAudit(schema, confText, baseline, nil)
}

// TranslateWithAudit is Translate with an optional AuditLogger observing
// the run. Passing a nil logger is equivalent to calling Translate.
func TranslateWithAudit(schema *Schema, confText []byte, baseline *TermTree, audit *AuditLogger) (*TermTree, error) {
	run := newRunStats(schema)

	entries, err := ParseConf(confText)
	if err != nil {
		audit.record(run.withError(err))
		return nil, err
	}
	run.Parsed = len(entries)

	table := newWorkingTable(entries)

	if err := Coerce(schema, table); err != nil {
		audit.record(run.withError(err))
		return nil, err
	}
	run.Coerced = table.Len()

	if err := Aggregate(schema, table); err != nil {
		audit.record(run.withError(err))
		return nil, err
	}
	run.Aggregated = table.Len()

	if err := runTranslations(schema, table); err != nil {
		audit.record(run.withError(err))
		return nil, err
	}
	run.Translated = table.Len()

	fresh := BuildTermTree(table.All())
	merged := MergeBaseline(baseline, fresh)
	run.Merged = merged.Len()

	audit.record(run.ok())
	return merged, nil
}
