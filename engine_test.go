package confschema

import "testing"

func TestTranslateEndToEnd(t *testing.T) {
	def9090 := NewRawScalar("9090")
	schema, err := BuildSchema([]MappingSpec{
		{Key: "app.name", Datatype: BinaryType()},
		{Key: "app.port", Datatype: IntegerType(), Default: &def9090},
		{Key: "db", Datatype: ComplexType()},
		{Key: "db.host", Datatype: BinaryType()},
		{Key: "db.port", Datatype: IntegerType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}

	conf := []byte("app.name = billing\ndb.host = localhost\ndb.port = 5432\n")
	tree, err := Translate(schema, conf, nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}

	app, ok := tree.Get("app")
	if !ok || app.Kind != VTree {
		t.Fatalf("expected a tree at \"app\"")
	}
	name, _ := app.Tree.Get("name")
	if name.Str != "billing" {
		t.Fatalf("app.name = %v, want \"billing\"", name)
	}
	port, ok := app.Tree.Get("port")
	if !ok || port.Int != 9090 {
		t.Fatalf("app.port = %v, want default 9090", port)
	}

	db, ok := tree.Get("db")
	if !ok || db.Kind != VTree {
		t.Fatalf("expected an aggregated tree at \"db\"")
	}
	host, _ := db.Tree.Get("host")
	dbPort, _ := db.Tree.Get("port")
	if host.Str != "localhost" || dbPort.Int != 5432 {
		t.Fatalf("db = {host: %v, port: %v}", host, dbPort)
	}
}

func TestTranslateMergesOntoBaseline(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{
		{Key: "app.port", Datatype: IntegerType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}

	baseline := NewTermTree()
	appBaseline := NewTermTree()
	appBaseline.Set("port", Int(80))
	appBaseline.Set("region", Atom("us-east"))
	baseline.Set("app", Tree(appBaseline))

	tree, err := Translate(schema, []byte("app.port = 8080\n"), baseline)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}

	app, _ := tree.Get("app")
	port, _ := app.Tree.Get("port")
	region, ok := app.Tree.Get("region")
	if port.Int != 8080 {
		t.Fatalf("app.port = %v, want overridden 8080", port)
	}
	if !ok || region.Atom != "us-east" {
		t.Fatalf("app.region = %v, want baseline's \"us-east\" preserved", region)
	}
}

func TestTranslatePropagatesParseError(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}
	_, err = Translate(schema, []byte("bad line without equals\n"), nil)
	if err == nil {
		t.Fatalf("expected a parse error to propagate")
	}
	if ErrorCode(err) != ErrCodeParse {
		t.Fatalf("ErrorCode = %q, want %q", ErrorCode(err), ErrCodeParse)
	}
}

func TestTranslateIdempotentOnOwnOutput(t *testing.T) {
	schema, err := BuildSchema([]MappingSpec{
		{Key: "app.name", Datatype: BinaryType()},
	}, []TranslationSpec{})
	if err != nil {
		t.Fatalf("BuildSchema error: %v", err)
	}
	conf := []byte("app.name = steady\n")
	first, err := Translate(schema, conf, nil)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	second, err := Translate(schema, conf, first)
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if !first.Equal(second) {
		t.Fatalf("re-translating the same input onto its own prior output must be idempotent")
	}
}
