// datatype.go: Datatype (C2) - the algebra of supported value datatypes,
// their parse-string and format-value operations, and the custom-type
// extension point.
//
// Mirrors the tagged-kind + type-switch dispatch style the teacher uses for
// its configuration bindings (config_binder.go's bindKind), generalized from
// a fixed set of Go scalar kinds into the richer datatype algebra spec.md §3
// requires (lists, enums, pairs, and a pluggable custom variant).
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

import (
	"strconv"
	"strings"
)

// DatatypeKind tags which arm of Datatype is populated.
type DatatypeKind uint8

const (
	TBinary DatatypeKind = iota
	TAtom
	TCharList
	TBoolean
	TInteger
	TFloat
	TIP
	TEnum
	TList
	TNestedList
	TPairedAtom
	TComplex
	TCustom
)

func (k DatatypeKind) String() string {
	switch k {
	case TAtom:
		return "atom"
	case TBinary:
		return "binary"
	case TCharList:
		return "charlist"
	case TBoolean:
		return "boolean"
	case TInteger:
		return "integer"
	case TFloat:
		return "float"
	case TIP:
		return "ip"
	case TEnum:
		return "enum"
	case TList:
		return "list"
	case TNestedList:
		return "nested_list"
	case TPairedAtom:
		return "paired_atom"
	case TComplex:
		return "complex"
	case TCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// CustomType is the capability set a Custom datatype's module must satisfy
// (spec.md §4.2). The discovery mechanism that locates such a module is an
// external collaborator per spec.md §1; this interface is the only contract
// the engine depends on.
type CustomType interface {
	Parse(args interface{}, raw RawValue) (TypedValue, error)
	Format(args interface{}, value TypedValue) (string, error)
	// Doc returns documentation text to append to the default .conf entry,
	// or ok=false if the type contributes none.
	Doc(args interface{}) (doc string, ok bool)
}

// Datatype is the tagged variant described in spec.md §3. The default value
// (zero value) is TBinary, matching "Default datatype when unspecified is
// Binary."
type Datatype struct {
	Kind   DatatypeKind
	Inner  *Datatype // List, NestedList, PairedAtom
	Enum   []string  // TEnum: allowed atoms, in declaration order
	Module CustomType
	Args   interface{}
}

func (d Datatype) String() string {
	if d.Kind == TList || d.Kind == TNestedList || d.Kind == TPairedAtom {
		if d.Inner != nil {
			return d.Kind.String() + "(" + d.Inner.String() + ")"
		}
	}
	return d.Kind.String()
}

// Constructors mirroring spec.md §3's datatype constants.

func BinaryType() Datatype   { return Datatype{Kind: TBinary} }
func AtomType() Datatype     { return Datatype{Kind: TAtom} }
func CharListType() Datatype { return Datatype{Kind: TCharList} }
func BooleanType() Datatype  { return Datatype{Kind: TBoolean} }
func IntegerType() Datatype  { return Datatype{Kind: TInteger} }
func FloatType() Datatype    { return Datatype{Kind: TFloat} }
func IPType() Datatype       { return Datatype{Kind: TIP} }
func ComplexType() Datatype  { return Datatype{Kind: TComplex} }

func EnumType(values ...string) Datatype {
	return Datatype{Kind: TEnum, Enum: values}
}

func ListType(inner Datatype) Datatype {
	return Datatype{Kind: TList, Inner: &inner}
}

func NestedListType(inner Datatype) Datatype {
	return Datatype{Kind: TNestedList, Inner: &inner}
}

func PairedAtomType(inner Datatype) Datatype {
	return Datatype{Kind: TPairedAtom, Inner: &inner}
}

func CustomDatatype(module CustomType, args interface{}) Datatype {
	return Datatype{Kind: TCustom, Module: module, Args: args}
}

func (d Datatype) isEnumMember(atom string) bool {
	for _, v := range d.Enum {
		if v == atom {
			return true
		}
	}
	return false
}

// Parse converts a .conf raw value into a TypedValue per the coercions in
// spec.md §4.2. The setting parameter is the dotted key used only for error
// reporting.
func (d Datatype) Parse(setting string, raw RawValue) (TypedValue, error) {
	switch d.Kind {
	case TAtom:
		return Atom(raw.Scalar), nil

	case TBinary:
		return String(raw.Scalar), nil

	case TCharList:
		return CharList([]rune(raw.Scalar)), nil

	case TBoolean:
		switch raw.Scalar {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		default:
			return TypedValue{}, newCoerceError(setting, d, "boolean must be exactly \"true\" or \"false\", got "+strconv.Quote(raw.Scalar))
		}

	case TInteger:
		n, err := strconv.ParseInt(strings.TrimSpace(raw.Scalar), 10, 64)
		if err != nil {
			return TypedValue{}, newCoerceError(setting, d, "not an integer: "+strconv.Quote(raw.Scalar))
		}
		return Int(n), nil

	case TFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw.Scalar), 64)
		if err != nil {
			return TypedValue{}, newCoerceError(setting, d, "not a float: "+strconv.Quote(raw.Scalar))
		}
		return Float(f), nil

	case TIP:
		host, port, ok := splitHostPort(raw.Scalar)
		if !ok {
			return TypedValue{}, newCoerceError(setting, d, "expected host:port, got "+strconv.Quote(raw.Scalar))
		}
		return HostPort(host, port), nil

	case TEnum:
		atom := raw.Scalar
		if !d.isEnumMember(atom) {
			return TypedValue{}, newCoerceError(setting, d, strconv.Quote(atom)+" is not one of: "+strings.Join(d.Enum, ", "))
		}
		return Atom(atom), nil

	case TList:
		return d.parseList(setting, raw)

	case TNestedList:
		return TypedValue{}, newCoerceError(setting, d, "nested_list is format-only and cannot be parsed from .conf input")

	case TPairedAtom:
		return TypedValue{}, newCoerceError(setting, d, "paired_atom is format-only and cannot be parsed from .conf input")

	case TComplex:
		return TypedValue{}, newCoerceError(setting, d, "complex is an aggregation marker produced by the aggregator, not parsed directly")

	case TCustom:
		if d.Module == nil {
			return BinaryType().Parse(setting, raw)
		}
		v, err := d.Module.Parse(d.Args, raw)
		if err != nil {
			return TypedValue{}, newCoerceError(setting, d, err.Error())
		}
		return v, nil

	default:
		return TypedValue{}, newCoerceError(setting, d, "unknown datatype")
	}
}

func (d Datatype) parseList(setting string, raw RawValue) (TypedValue, error) {
	if d.Inner == nil {
		return TypedValue{}, newCoerceError(setting, d, "list datatype missing inner type")
	}
	items := raw.AsStringList()
	out := make([]TypedValue, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		v, err := d.Inner.Parse(setting, NewRawScalar(trimmed))
		if err != nil {
			return TypedValue{}, err
		}
		out = append(out, v)
	}
	return List(out), nil
}

// splitHostPort splits on the LAST ':' per spec.md §4.2, so IPv6-style
// host segments containing colons still separate correctly from the port.
func splitHostPort(s string) (host, port string, ok bool) {
	idx := strings.LastIndex(s, ":")
	if idx < 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// Format produces the canonical .conf RHS representation of value, per
// spec.md §4.2 and used by ConfWriter (C8).
func (d Datatype) Format(value TypedValue) (string, error) {
	switch d.Kind {
	case TAtom:
		return value.Atom, nil
	case TBinary:
		return value.Str, nil
	case TCharList:
		return string(value.Chars), nil
	case TBoolean:
		if value.Bool {
			return "true", nil
		}
		return "false", nil
	case TInteger:
		return strconv.FormatInt(value.Int, 10), nil
	case TFloat:
		return strconv.FormatFloat(value.Flt, 'g', -1, 64), nil
	case TIP:
		return value.Host + ":" + value.Port, nil
	case TEnum:
		return value.Atom, nil
	case TList:
		if d.Inner == nil {
			return "", newCustomTypeError("", "list datatype missing inner type")
		}
		parts := make([]string, len(value.List))
		for i, v := range value.List {
			s, err := d.Inner.Format(v)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ", "), nil
	case TNestedList:
		if d.Inner == nil {
			return "", newCustomTypeError("", "nested_list datatype missing inner type")
		}
		parts := make([]string, len(value.List))
		for i, v := range value.List {
			inner, err := d.Inner.Format(v)
			if err != nil {
				return "", err
			}
			parts[i] = "[" + inner + "]"
		}
		return strings.Join(parts, ", "), nil
	case TPairedAtom:
		if d.Inner == nil {
			return "", newCustomTypeError("", "paired_atom datatype missing inner type")
		}
		if len(value.Pairs) == 0 {
			return "", nil
		}
		pair := value.Pairs[0]
		formatted, err := d.Inner.Format(pair.Value)
		if err != nil {
			return "", err
		}
		return pair.Atom + " = " + formatted, nil
	case TComplex:
		return "", newCustomTypeError("", "complex values have no scalar .conf representation")
	case TCustom:
		if d.Module == nil {
			return BinaryType().Format(value)
		}
		return d.Module.Format(d.Args, value)
	default:
		return "", newCustomTypeError("", "unknown datatype")
	}
}

// Doc returns documentation contributed by a Custom datatype's module, for
// ConfWriter's custom-doc line (spec.md §4.8). Enum "allowed values" lines
// are written by ConfWriter itself, not through Doc.
func (d Datatype) Doc() (string, bool) {
	if d.Kind != TCustom || d.Module == nil {
		return "", false
	}
	return d.Module.Doc(d.Args)
}
