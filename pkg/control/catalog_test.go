package control

import (
	"net/url"
	"testing"
	"time"
)

func parseQuery(raw string) (map[string]string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k := range values {
		out[k] = values.Get(k)
	}
	return out, nil
}

func TestCatalogIdentifiersUnique(t *testing.T) {
	seen := make(map[OperationID]bool)
	for _, e := range Catalog() {
		if seen[e.ID] {
			t.Fatalf("duplicate operation %q", e.ID)
		}
		seen[e.ID] = true
		if e.Descriptor.Path == "" {
			t.Fatalf("operation %q has empty path", e.ID)
		}
		switch e.Descriptor.Method {
		case MethodGet, MethodPost, MethodPut, MethodDelete:
		default:
			t.Fatalf("operation %q has unsupported method %q", e.ID, e.Descriptor.Method)
		}
	}
	if len(seen) != 29 {
		t.Fatalf("expected 29 operations, got %d", len(seen))
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	entries := Catalog()
	entries[0].Descriptor.Path = "mutated"

	d, ok := Lookup(entries[0].ID)
	if !ok {
		t.Fatalf("Lookup(%q) failed", entries[0].ID)
	}
	if d.Path == "mutated" {
		t.Fatalf("catalog was mutated through a returned copy")
	}
	if Catalog()[0].Descriptor.Path == "mutated" {
		t.Fatalf("catalog listing was mutated through a returned copy")
	}
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(FilteringRemoveFilter)
	if !ok {
		t.Fatalf("expected filtering_remove_filter in catalog")
	}
	if d.Path != "filtering/remove_url" || d.Method != MethodDelete {
		t.Fatalf("unexpected descriptor %#v", d)
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatalf("unexpected descriptor for unknown operation")
	}
}

func TestDayWindowKeepsLocation(t *testing.T) {
	zone := time.FixedZone("", -7*3600)
	start, end := DayWindow(time.Date(2023, time.July, 9, 0, 0, 0, 0, zone))
	if got := start.Format(TimestampLayout); got != "2023-07-09T00:00:00-07:00" {
		t.Fatalf("unexpected start %s", got)
	}
	if got := end.Format(TimestampLayout); got != "2023-07-09T23:59:59-07:00" {
		t.Fatalf("unexpected end %s", got)
	}
}
