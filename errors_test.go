package confschema

import "testing"

func TestErrorCodeOfOwnErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"parse", newParseError(3, "bad grammar"), ErrCodeParse},
		{"coerce", newCoerceError("app.port", IntegerType(), "not an integer"), ErrCodeCoerce},
		{"schema shape", newSchemaShapeError("missing mappings"), ErrCodeSchemaShape},
		{"translation", newTranslationError("app.level", "no mapping"), ErrCodeTranslation},
		{"custom type", newCustomTypeError("geoip", "bad module"), ErrCodeCustomType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ErrorCode(c.err); got != c.want {
				t.Fatalf("ErrorCode = %q, want %q", got, c.want)
			}
		})
	}
}

func TestErrorCodeOfNilError(t *testing.T) {
	if got := ErrorCode(nil); got != "" {
		t.Fatalf("ErrorCode(nil) = %q, want empty", got)
	}
}
