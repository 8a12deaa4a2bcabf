// rawvalue.go: the uninterpreted value shape produced by the .conf parser (C1).
//
// Copyright (c) 2025 AGILira
// Series: AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package confschema

// RawKind tags the shape a .conf RHS was parsed into.
type RawKind uint8

const (
	// RawScalar is a single trimmed value, quoted or bare.
	RawScalar RawKind = iota
	// RawList is a comma-separated sequence of scalars.
	RawList
	// RawPairs is a bracketed list of inline key=value pairs, e.g. "[a=1, b=2]".
	RawPairs
)

// RawPair is one element of a RawPairs value.
type RawPair struct {
	Key   string
	Value string
}

// RawValue is the uninterpreted byte sequence associated with a .conf key,
// as produced by ConfParser and consumed by Datatype.Parse.
type RawValue struct {
	Kind   RawKind
	Scalar string
	List   []string
	Pairs  []RawPair
}

// NewRawScalar builds a scalar RawValue.
func NewRawScalar(s string) RawValue { return RawValue{Kind: RawScalar, Scalar: s} }

// NewRawList builds a list RawValue.
func NewRawList(items []string) RawValue { return RawValue{Kind: RawList, List: items} }

// NewRawPairs builds a bracketed-pairs RawValue.
func NewRawPairs(pairs []RawPair) RawValue { return RawValue{Kind: RawPairs, Pairs: pairs} }

// IsScalar reports whether the raw value is a bare scalar.
func (r RawValue) IsScalar() bool { return r.Kind == RawScalar }

// AsStringList returns the raw value as a slice of strings regardless of
// whether it originated as a scalar or a list: a scalar yields a single
// element. Used by List(T) coercion, which accepts either shape.
func (r RawValue) AsStringList() []string {
	switch r.Kind {
	case RawScalar:
		return []string{r.Scalar}
	case RawList:
		return r.List
	default:
		items := make([]string, len(r.Pairs))
		for i, p := range r.Pairs {
			items[i] = p.Key + "=" + p.Value
		}
		return items
	}
}
