// Package confschema implements a schema-driven translation engine from
// flat, sysctl-style .conf text into a nested, ordered term tree.
//
// # Pipeline
//
// A Translate run moves a .conf document through six fixed stages, always
// in this order: ConfParser (C1) turns the text into an ordered list of
// (key-path, raw-value) entries; Coercer (C4) applies each schema mapping's
// datatype, in descending key-length priority; Aggregator (C5) folds the
// entries a Complex or List(Complex) mapping names into one aggregated
// subtree; Translator (C6) rewrites matched entries through their schema
// translation functions; TermTreeBuilder (C7) materializes the nested tree;
// and finally the result is merged on top of any pre-existing baseline
// tree. There is no concurrency and no cancellation inside a run: Translate
// is a single synchronous call that returns a result or an error.
//
// # Schema
//
// A Schema (C3) is built once, ahead of any Translate call, from a list of
// MappingSpec and TranslationSpec values via BuildSchema. A mapping binds a
// dotted key - which may contain "*" wildcard segments - to a Datatype
// (C2): Atom, Binary, CharList, Boolean, Integer, Float, IP, Enum,
// List(T), NestedList(T), PairedAtom(T), Complex, or a pluggable Custom
// type. A translation rewrites the value already sitting under a mapping's
// key through a caller-supplied function of arity 2 or 3.
//
// # Errors
//
// Every error this package returns carries one of the codes in errors.go
// (CONFSCHEMA_PARSE_ERROR, CONFSCHEMA_COERCE_ERROR,
// CONFSCHEMA_SCHEMA_SHAPE_ERROR, CONFSCHEMA_TRANSLATION_ERROR,
// CONFSCHEMA_CUSTOM_TYPE_ERROR), retrievable with ErrorCode, plus whatever
// contextual key/value pairs that error's constructor attached.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package confschema
