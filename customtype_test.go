package confschema

import (
	"strings"
	"testing"
)

type upperCaseType struct{}

func (upperCaseType) Parse(args interface{}, raw RawValue) (TypedValue, error) {
	return Atom(strings.ToUpper(raw.Scalar)), nil
}
func (upperCaseType) Format(args interface{}, value TypedValue) (string, error) {
	return value.Atom, nil
}
func (upperCaseType) Doc(args interface{}) (string, bool) {
	return "stored in upper case", true
}

func TestRegisterAndLookupCustomType(t *testing.T) {
	RegisterCustomType("test.uppercase", upperCaseType{})
	module, ok := LookupCustomType("test.uppercase")
	if !ok {
		t.Fatalf("expected the registered module to be found")
	}
	v, err := module.Parse(nil, NewRawScalar("hi"))
	if err != nil || v.Atom != "HI" {
		t.Fatalf("Parse = %v, %v", v, err)
	}
}

func TestLookupCustomTypeUnknown(t *testing.T) {
	if _, ok := LookupCustomType("test.does-not-exist"); ok {
		t.Fatalf("expected no module registered under an unused name")
	}
}
