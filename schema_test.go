package confschema

import "testing"

func TestBuildSchemaSortsByDescendingKeyLength(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{
		{Key: "app.name", Datatype: BinaryType()},
		{Key: "app.server.port", Datatype: IntegerType()},
		{Key: "app", Datatype: BinaryType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}
	if len(schema.Mappings[0].Key) < len(schema.Mappings[1].Key) ||
		len(schema.Mappings[1].Key) < len(schema.Mappings[2].Key) {
		t.Fatalf("mappings not sorted by descending key length: %v", schema.Mappings)
	}
}

func TestBuildSchemaBreaksEqualLengthTiesByWildcardCount(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{
		{Key: "a.*.c", Datatype: AtomType()},
		{Key: "a.b.c", Datatype: IntegerType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}
	if !schema.Mappings[0].Key.Equal(KeyPath{"a", "b", "c"}) {
		t.Fatalf("the literal key must sort ahead of the equal-length wildcarded one, got %v", schema.Mappings[0].Key)
	}
}

func TestBuildSchemaRejectsNilLists(t *testing.T) {
	if _, err := BuildSchema(nil, []TranslationSpec{}); err == nil {
		t.Fatalf("expected a schema shape error for nil mappings")
	} else if ErrorCode(err) != ErrCodeSchemaShape {
		t.Fatalf("ErrorCode = %q, want %q", ErrorCode(err), ErrCodeSchemaShape)
	}
	if _, err := BuildSchema([]MappingSpec{}, nil); err == nil {
		t.Fatalf("expected a schema shape error for nil translations")
	}
}

func TestBuildSchemaRejectsBadTranslationArity(t *testing.T) {
	fn2 := func(m Mapping, leaf AtomValue) (TypedValue, error) { return leaf.Value, nil }
	fn3 := func(m Mapping, leaf AtomValue, acc interface{}) (TypedValue, interface{}) { return leaf.Value, acc }

	_, err := BuildSchema([]MappingSpec{{Key: "a", Datatype: BinaryType()}}, []TranslationSpec{
		{Key: "a", Fn2: fn2, Fn3: fn3},
	})
	if err == nil {
		t.Fatalf("expected an error when both Fn2 and Fn3 are set")
	}

	_, err = BuildSchema([]MappingSpec{{Key: "a", Datatype: BinaryType()}}, []TranslationSpec{
		{Key: "a"},
	})
	if err == nil {
		t.Fatalf("expected an error when neither Fn2 nor Fn3 is set")
	}
}

func TestSchemaFindMapping(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{
		{Key: "app.name", Datatype: BinaryType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}
	m, ok := schema.FindMapping(KeyPath{"app", "name"})
	if !ok || m.Datatype.Kind != TBinary {
		t.Fatalf("FindMapping = %v, %v", m, ok)
	}
	if _, ok := schema.FindMapping(KeyPath{"app", "missing"}); ok {
		t.Fatalf("expected no mapping for an unknown key")
	}
}
