package backlog

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ============================================================
// Encoding
// ============================================================

func TestMarshalEmptyBacklogHasAllKeys(t *testing.T) {
	data, err := json.Marshal(Backlog{})
	if err != nil {
		t.Fatal(err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		t.Fatal(err)
	}
	if string(top["prefix"]) != `"gameBacklog"` {
		t.Fatalf("prefix = %s", top["prefix"])
	}
	for _, key := range []string{"epic", "nintendo", "playstation", "steam", "xbox", "wishlist"} {
		if string(top[key]) != "[]" {
			t.Fatalf("%s = %s, want []", key, top[key])
		}
	}
}

func TestMarshalKeyOrder(t *testing.T) {
	data, _ := json.Marshal(New())
	s := string(data)
	keys := []string{`"prefix"`, `"epic"`, `"nintendo"`, `"playstation"`, `"steam"`, `"xbox"`, `"wishlist"`}
	last := -1
	for _, k := range keys {
		i := strings.Index(s, k)
		if i <= last {
			t.Fatalf("key %s out of order in %s", k, s)
		}
		last = i
	}
}

func TestMarshalRecordShape(t *testing.T) {
	b := sampleBacklog()
	data, _ := json.Marshal(b)
	if !strings.Contains(string(data), `{"title":"Hades","status":"Completed","month":"Jun","year":"2023"}`) {
		t.Fatalf("game record not in {title,status,month,year} shape: %s", data)
	}
	if !strings.Contains(string(data), `"wishlist":[{"title":"Hollow Knight: Silksong"}]`) {
		t.Fatalf("wishlist record not in {title} shape: %s", data)
	}
}

// ============================================================
// Parsing
// ============================================================

func TestParseDocumentRoundTrip(t *testing.T) {
	b := sampleBacklog()
	data, _ := json.Marshal(b)

	got, rep, err := ParseDocument(data)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Skipped != 0 || rep.Games != 4 || rep.Wishlist != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, b)
	}
}

func TestParseDocumentMalformed(t *testing.T) {
	for _, payload := range []string{``, `not json`, `[1,2,3]`, `"gameBacklog"`, `null`, `{"steam": [`} {
		_, _, err := ParseDocument([]byte(payload))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("ParseDocument(%q) error = %v, want ErrMalformedDocument", payload, err)
		}
	}
}

func TestParseDocumentDefaults(t *testing.T) {
	payload := `{"steam":[{"title":"Hades"}]}`
	b, _, err := ParseDocument([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	g, ok := b.Game(Steam, 0)
	if !ok {
		t.Fatal("record missing")
	}
	if g.Status != NotStarted || g.Month != "" || g.Year != "" {
		t.Fatalf("defaults not applied: %+v", g)
	}
	for _, p := range Platforms {
		if b.Games[p] == nil {
			t.Fatalf("platform %s should be present after parse", p)
		}
	}
}

func TestParseDocumentSkipsBadRecords(t *testing.T) {
	payload := `{
		"prefix": "gameBacklog",
		"steam": [
			{"title": "Hades", "status": "Completed", "month": "Jun", "year": "2023"},
			42,
			{"title": "   "},
			{"status": "InProgress"},
			{"title": 7},
			{"title": "Celeste", "year": 2018}
		],
		"xbox": {"title": "not an array"},
		"wishlist": [{"title": "Silksong"}, "oops", {"title": ""}]
	}`
	b, rep, err := ParseDocument([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Games[Steam]) != 2 {
		t.Fatalf("expected 2 steam games, got %d", len(b.Games[Steam]))
	}
	if b.Games[Steam][1].Year != "2018" {
		t.Fatalf("numeric year should be stringified, got %q", b.Games[Steam][1].Year)
	}
	if len(b.Games[Xbox]) != 0 {
		t.Fatal("non-array platform should be treated as empty")
	}
	if len(b.Wishlist) != 1 {
		t.Fatalf("expected 1 wishlist item, got %d", len(b.Wishlist))
	}
	if rep.Skipped != 6 {
		t.Fatalf("expected 6 skipped records, got %d", rep.Skipped)
	}
}

func TestParseDocumentKeepsUnknownStatus(t *testing.T) {
	b, _, err := ParseDocument([]byte(`{"epic":[{"title":"Control","status":"Abandoned"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if b.Games[Epic][0].Status != "Abandoned" {
		t.Fatalf("unknown status should be preserved, got %q", b.Games[Epic][0].Status)
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var b Backlog
	if err := json.Unmarshal([]byte(`{"nintendo":[{"title":"Metroid Dread","status":"Hundred"}]}`), &b); err != nil {
		t.Fatal(err)
	}
	if b.Games[Nintendo][0].Status != Hundred {
		t.Fatalf("unexpected record: %+v", b.Games[Nintendo][0])
	}
	if err := json.Unmarshal([]byte(`[]`), &b); err == nil {
		t.Fatal("expected error for array payload")
	}
}
