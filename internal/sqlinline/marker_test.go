package sqlinline

import (
	"strings"
	"testing"
)

func TestEveryQueryCarriesAMarker(t *testing.T) {
	queries := map[string]string{
		"QCreateKVTable": QCreateKVTable,
		"QGetKV":         QGetKV,
		"QSetKV":         QSetKV,
	}
	seen := make(map[string]string, len(queries))
	for name, query := range queries {
		marker, statement, err := Marker(query)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.TrimSpace(statement) == "" {
			t.Fatalf("%s: empty statement", name)
		}
		if prev, dup := seen[marker]; dup {
			t.Fatalf("%s reuses marker %s from %s", name, marker, prev)
		}
		seen[marker] = name
	}
}

func TestMarkerRejectsUntaggedQuery(t *testing.T) {
	if _, _, err := Marker("select 1;"); err == nil {
		t.Fatal("untagged query accepted")
	}
	if _, _, err := Marker("--sql not-a-uuid\nselect 1;"); err == nil {
		t.Fatal("malformed marker accepted")
	}
}
