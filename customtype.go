// customtype.go: an optional name-based registry for CustomType modules.
//
// spec.md §1 scopes the *discovery* mechanism for custom-type plug-ins out
// of this engine - callers may always embed a CustomType value directly in
// a MappingSpec. This registry is a convenience for callers who'd rather
// name a custom type by string in a schema built from serialized input
// (resolving the name is up to the caller; BuildSchema takes a CustomType
// value, not a name); it mirrors the teacher's pluggable-parser
// registry (parsers.go's RegisterParser/customParsers) one for one.
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import "sync"

var (
	customTypeRegistry = map[string]CustomType{}
	customTypeMu        sync.RWMutex
)

// RegisterCustomType makes a CustomType module available under name for use
// by schemas built from serialized input. It does not affect schemas that
// embed a CustomType value directly.
func RegisterCustomType(name string, module CustomType) {
	customTypeMu.Lock()
	defer customTypeMu.Unlock()
	customTypeRegistry[name] = module
}

// LookupCustomType returns the module registered under name, if any.
func LookupCustomType(name string) (CustomType, bool) {
	customTypeMu.RLock()
	defer customTypeMu.RUnlock()
	m, ok := customTypeRegistry[name]
	return m, ok
}
