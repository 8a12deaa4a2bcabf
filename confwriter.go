// confwriter.go: ConfWriter (C8) - renders a schema's mappings back into an
// annotated default .conf document, per spec.md §4.8.
//
// Grounded on the teacher's zero-allocation config writer (config_writer.go,
// now removed): pre-size a single strings.Builder and write straight into
// it rather than accumulating and joining intermediate strings, and render
// deterministically in one pass with no temp-file/atomic-rename step, since
// this produces in-memory documentation text rather than a live config file
// on disk.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import "strings"

// WriteDefaults renders schema's mappings, in the Schema's sorted priority
// order (descending key length, as BuildSchema leaves them), as an
// annotated default .conf document: each mapping
// contributes its doc comment, an "# Allowed values: ..." line for Enum
// datatypes, any documentation a Custom datatype's module contributes, and
// finally either "key =" (no default) or "key = <formatted default>".
// Mappings with a wildcard in their key are skipped, since a wildcard
// mapping has no single concrete .conf line to emit.
func WriteDefaults(schema *Schema) (string, error) {
	var b strings.Builder

	for i, m := range schema.Mappings {
		if m.Key.HasWildcard() {
			continue
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		writeMappingDoc(&b, m)

		b.WriteString(m.Key.String())
		b.WriteString(" =")
		if m.Default != nil {
			parsed, err := m.Datatype.Parse(m.Key.String(), *m.Default)
			if err != nil {
				return "", err
			}
			formatted, err := m.Datatype.Format(parsed)
			if err != nil {
				return "", err
			}
			b.WriteByte(' ')
			b.WriteString(formatted)
		}
		b.WriteByte('\n')
	}

	return b.String(), nil
}

func writeMappingDoc(b *strings.Builder, m Mapping) {
	if m.Doc != "" {
		for _, line := range strings.Split(m.Doc, "\n") {
			b.WriteString("# ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	if m.Datatype.Kind == TEnum && len(m.Datatype.Enum) > 0 {
		b.WriteString("# Allowed values: ")
		b.WriteString(strings.Join(m.Datatype.Enum, ", "))
		b.WriteByte('\n')
	}
	if doc, ok := m.Datatype.Doc(); ok {
		b.WriteString("# ")
		b.WriteString(doc)
		b.WriteByte('\n')
	}
}
