package confschema

import "testing"

func TestDatatypeParseInteger(t *testing.T) {
	v, err := IntegerType().Parse("app.port", NewRawScalar("8080"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if v.Int != 8080 {
		t.Fatalf("Int = %d, want 8080", v.Int)
	}
}

func TestDatatypeParseIntegerInvalid(t *testing.T) {
	_, err := IntegerType().Parse("app.port", NewRawScalar("not-a-number"))
	if err == nil {
		t.Fatalf("expected a coerce error")
	}
	if ErrorCode(err) != ErrCodeCoerce {
		t.Fatalf("ErrorCode = %q, want %q", ErrorCode(err), ErrCodeCoerce)
	}
}

func TestDatatypeParseBoolean(t *testing.T) {
	v, err := BooleanType().Parse("app.enabled", NewRawScalar("true"))
	if err != nil || !v.Bool {
		t.Fatalf("Parse(true) = %v, %v", v, err)
	}
	if _, err := BooleanType().Parse("app.enabled", NewRawScalar("yes")); err == nil {
		t.Fatalf("expected error for non-exact boolean literal")
	}
}

func TestDatatypeParseEnum(t *testing.T) {
	dt := EnumType("debug", "info", "warn")
	v, err := dt.Parse("app.level", NewRawScalar("info"))
	if err != nil || v.Atom != "info" {
		t.Fatalf("Parse(info) = %v, %v", v, err)
	}
	if _, err := dt.Parse("app.level", NewRawScalar("trace")); err == nil {
		t.Fatalf("expected error for a value outside the enum")
	}
}

func TestDatatypeParseIP(t *testing.T) {
	v, err := IPType().Parse("app.listen", NewRawScalar("127.0.0.1:8080"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if v.Host != "127.0.0.1" || v.Port != "8080" {
		t.Fatalf("host/port = %q/%q", v.Host, v.Port)
	}
}

func TestDatatypeParseListOfInteger(t *testing.T) {
	dt := ListType(IntegerType())
	v, err := dt.Parse("app.ports", NewRawList([]string{"1", "2", "3"}))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(v.List) != 3 || v.List[0].Int != 1 || v.List[2].Int != 3 {
		t.Fatalf("List = %v", v.List)
	}
}

func TestDatatypeFormatRoundTrip(t *testing.T) {
	cases := []Datatype{
		AtomType(), BinaryType(), BooleanType(), IntegerType(), FloatType(), IPType(),
	}
	inputs := []string{"idle", "hello", "true", "42", "3.5", "host:9000"}
	for i, dt := range cases {
		v, err := dt.Parse("setting", NewRawScalar(inputs[i]))
		if err != nil {
			t.Fatalf("Parse(%v) error: %v", dt, err)
		}
		s, err := dt.Format(v)
		if err != nil {
			t.Fatalf("Format(%v) error: %v", dt, err)
		}
		if s != inputs[i] {
			t.Fatalf("round trip for %v: got %q, want %q", dt, s, inputs[i])
		}
	}
}

func TestDatatypeIPSplitsOnLastColon(t *testing.T) {
	host, port, ok := splitHostPort("::1:9000")
	if !ok || host != "::1" || port != "9000" {
		t.Fatalf("splitHostPort = %q, %q, %v", host, port, ok)
	}
}
