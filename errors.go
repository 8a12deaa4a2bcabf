// errors.go: the translation engine's error taxonomy, normalised onto a
// single result-or-error return per spec.md §7 / §9 ("normalise to a
// single error taxonomy ... propagated via a result-or-error return").
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import "github.com/agilira/go-errors"

// Error codes, one per taxonomy entry in spec.md §7.
const (
	ErrCodeParse       = "CONFSCHEMA_PARSE_ERROR"
	ErrCodeCoerce      = "CONFSCHEMA_COERCE_ERROR"
	ErrCodeSchemaShape = "CONFSCHEMA_SCHEMA_SHAPE_ERROR"
	ErrCodeTranslation = "CONFSCHEMA_TRANSLATION_ERROR"
	ErrCodeCustomType  = "CONFSCHEMA_CUSTOM_TYPE_ERROR"
)

// newParseError reports a .conf grammar mismatch or Latin-1 encoding
// failure, carrying the offending line number (spec.md §4.1, §7 ParseError).
func newParseError(line int, reason string) error {
	return errors.New(ErrCodeParse, reason).
		WithContext("line", line)
}

// newCoerceError reports a value that does not satisfy its mapping's
// datatype (spec.md §7 CoerceError), carrying the dotted setting key.
func newCoerceError(setting string, datatype Datatype, reason string) error {
	return errors.New(ErrCodeCoerce, reason).
		WithContext("setting", setting).
		WithContext("datatype", datatype.String())
}

// newSchemaShapeError reports a schema missing its mappings or translations
// field (spec.md §7 SchemaShapeError).
func newSchemaShapeError(reason string) error {
	return errors.New(ErrCodeSchemaShape, reason)
}

// newTranslationError reports a wrong-arity or failing translation function
// (spec.md §7 TranslationError), carrying the translation's dotted key.
func newTranslationError(key string, reason string) error {
	return errors.New(ErrCodeTranslation, reason).
		WithContext("key", key)
}

// newCustomTypeError reports a datatype that Datatype.Format cannot render:
// a List, NestedList or PairedAtom missing its inner type, a Complex value,
// or an unknown kind. A Custom datatype with no module is not an error; it
// is parsed and formatted as Binary.
func newCustomTypeError(module string, reason string) error {
	return errors.New(ErrCodeCustomType, reason).
		WithContext("module", module)
}

// ErrorCode extracts the taxonomy code from an error produced by this
// package, or "" if err did not originate here.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if coder, ok := err.(errors.ErrorCoder); ok {
		return string(coder.ErrorCode())
	}
	return ""
}
