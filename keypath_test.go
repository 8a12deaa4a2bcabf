package confschema

import "testing"

func TestParseKeyPathEscapedDot(t *testing.T) {
	got := ParseKeyPath(`a.b\.c.d`)
	want := KeyPath{"a", "b.c", "d"}
	if !got.Equal(want) {
		t.Fatalf("ParseKeyPath = %v, want %v", got, want)
	}
}

func TestKeyPathStringRoundTrip(t *testing.T) {
	k := KeyPath{"a", "b.c", "d"}
	s := k.String()
	got := ParseKeyPath(s)
	if !got.Equal(k) {
		t.Fatalf("round trip = %v, want %v (via %q)", got, k, s)
	}
}

func TestKeyPathMatch(t *testing.T) {
	pattern := KeyPath{"listeners", Wildcard, "port"}
	concrete := KeyPath{"listeners", "http", "port"}
	captures, ok := pattern.Match(concrete)
	if !ok {
		t.Fatalf("expected match")
	}
	if len(captures) != 1 || captures[0] != "http" {
		t.Fatalf("captures = %v, want [http]", captures)
	}

	if _, ok := pattern.Match(KeyPath{"listeners", "http", "host"}); ok {
		t.Fatalf("expected no match for differing final segment")
	}
	if _, ok := pattern.Match(KeyPath{"listeners", "http", "port", "extra"}); ok {
		t.Fatalf("expected no match for differing length")
	}
}

func TestKeyPathMatchPrefix(t *testing.T) {
	pattern := KeyPath{"listeners", Wildcard}
	concrete := KeyPath{"listeners", "http", "port"}
	captures, suffix, ok := pattern.MatchPrefix(concrete)
	if !ok {
		t.Fatalf("expected prefix match")
	}
	if len(captures) != 1 || captures[0] != "http" {
		t.Fatalf("captures = %v, want [http]", captures)
	}
	if !suffix.Equal(KeyPath{"port"}) {
		t.Fatalf("suffix = %v, want [port]", suffix)
	}

	// Equal-length match yields an empty suffix, not a non-match.
	exact, empty, ok := pattern.MatchPrefix(KeyPath{"listeners", "http"})
	if !ok || len(empty) != 0 {
		t.Fatalf("expected equal-length prefix match with empty suffix, got ok=%v suffix=%v", ok, empty)
	}
	if len(exact) != 1 || exact[0] != "http" {
		t.Fatalf("captures = %v, want [http]", exact)
	}
}

func TestKeyPathSubstitute(t *testing.T) {
	template := KeyPath{"services", Wildcard, "config"}
	got := template.Substitute([]string{"auth"})
	want := KeyPath{"services", "auth", "config"}
	if !got.Equal(want) {
		t.Fatalf("Substitute = %v, want %v", got, want)
	}
}
