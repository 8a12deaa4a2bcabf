// schema.go: SchemaModel (C3) - the declarative mapping/translation schema
// that drives the whole engine, and its shape validation.
//
// Grounded on the teacher's validation-result accumulator pattern
// (config_validation.go: walk a declared set of fields, accumulate
// violations, fail closed on the first structural defect) generalized from
// validating a config document to validating the schema document itself.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import "sort"

// Mapping is one schema mapping (spec.md §3): a key-path (possibly
// containing wildcards) bound to a datatype, with optional default and
// documentation.
type Mapping struct {
	Key      KeyPath
	Datatype Datatype
	Default  *RawValue
	Doc      string
	// To is the aggregation target for a Complex or List(Complex) mapping
	// (spec.md §4.5): the key-path, possibly itself containing wildcards
	// bound from Key's captures, that the aggregated subtree is inserted
	// under. Nil for every other mapping, in which case the aggregator
	// uses the mapping's own (substituted) Key as the target.
	To KeyPath
}

// TranslationFn2 is a translation function of arity 2 (spec.md §4.6): given
// the matched mapping and the leaf (atom, value) pair, produce the
// translated value.
type TranslationFn2 func(m Mapping, leaf AtomValue) (TypedValue, error)

// TranslationFn3 is a translation function of arity 3 (spec.md §4.6): given
// the matched mapping, the leaf pair, and an accumulator from the prior
// invocation within the same translation run, produce the translated value
// and the next accumulator.
type TranslationFn3 func(m Mapping, leaf AtomValue, acc interface{}) (TypedValue, interface{})

// Translation is one schema translation (spec.md §3): a key-path matched
// exactly against a mapping, plus a function of arity 2 or 3. Exactly one
// of Fn2 or Fn3 must be set; BuildSchema rejects a Translation with both or
// neither set (spec.md §9's redesign note: reject bad arity at schema-build
// time rather than at translate time).
type Translation struct {
	Key KeyPath
	Fn2 TranslationFn2
	Fn3 TranslationFn3
}

// MappingSpec is the serializable form of a Mapping, using a dotted key
// string in place of a pre-split KeyPath. BuildSchema normalizes these.
type MappingSpec struct {
	Key      string
	Datatype Datatype
	Default  *RawValue
	Doc      string
	// To is the dotted form of Mapping.To. Empty means "use Key itself".
	To string
}

// TranslationSpec is the serializable form of a Translation.
type TranslationSpec struct {
	Key string
	Fn2 TranslationFn2
	Fn3 TranslationFn3
}

// Schema is the fully-built, validated schema: mappings sorted by
// descending key length, then ascending wildcard count (spec.md §4.4's and
// §8's priority order - more specific, longer keys coerce before shorter,
// more general ones, and among equal-length keys a more literal one, with
// fewer wildcards, outranks a more wildcarded one) and translations kept in
// declaration order (spec.md §4.6 - later translations observe earlier
// ones' effects).
type Schema struct {
	Mappings     []Mapping
	Translations []Translation
}

// BuildSchema normalizes and validates a list of mapping and translation
// specs into a Schema, per spec.md §3/§9. It returns a SchemaShapeError if
// either list is nil, if any key is empty, or if a translation's function
// arity is not exactly one of Fn2/Fn3.
func BuildSchema(mappingSpecs []MappingSpec, translationSpecs []TranslationSpec) (*Schema, error) {
	if mappingSpecs == nil {
		return nil, newSchemaShapeError("schema is missing its mappings list")
	}
	if translationSpecs == nil {
		return nil, newSchemaShapeError("schema is missing its translations list")
	}

	mappings := make([]Mapping, 0, len(mappingSpecs))
	for _, ms := range mappingSpecs {
		if ms.Key == "" {
			return nil, newSchemaShapeError("mapping has an empty key")
		}
		var to KeyPath
		if ms.To != "" {
			to = ParseKeyPath(ms.To)
		}
		mappings = append(mappings, Mapping{
			Key:      ParseKeyPath(ms.Key),
			Datatype: ms.Datatype,
			Default:  ms.Default,
			Doc:      ms.Doc,
			To:       to,
		})
	}
	sort.SliceStable(mappings, func(i, j int) bool {
		li, lj := len(mappings[i].Key), len(mappings[j].Key)
		if li != lj {
			return li > lj
		}
		// Same length: the more literal key (fewer wildcards) takes
		// priority, so e.g. "a.b.c" coerces before "a.*.c" for the
		// concrete key "a.b.c" regardless of declaration order.
		return mappings[i].Key.WildcardCount() < mappings[j].Key.WildcardCount()
	})

	translations := make([]Translation, 0, len(translationSpecs))
	for _, ts := range translationSpecs {
		if ts.Key == "" {
			return nil, newSchemaShapeError("translation has an empty key")
		}
		hasFn2 := ts.Fn2 != nil
		hasFn3 := ts.Fn3 != nil
		if hasFn2 == hasFn3 {
			return nil, newSchemaShapeError("translation " + ts.Key + " must set exactly one of Fn2 or Fn3")
		}
		translations = append(translations, Translation{
			Key: ParseKeyPath(ts.Key),
			Fn2: ts.Fn2,
			Fn3: ts.Fn3,
		})
	}

	return &Schema{Mappings: mappings, Translations: translations}, nil
}

// FindMapping returns the mapping whose Key equals key exactly, if any.
func (s *Schema) FindMapping(key KeyPath) (Mapping, bool) {
	for _, m := range s.Mappings {
		if m.Key.Equal(key) {
			return m, true
		}
	}
	return Mapping{}, false
}

// FindTranslation returns the translation whose Key equals key exactly, if
// any.
func (s *Schema) FindTranslation(key KeyPath) (Translation, bool) {
	for _, t := range s.Translations {
		if t.Key.Equal(key) {
			return t, true
		}
	}
	return Translation{}, false
}
