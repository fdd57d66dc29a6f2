package torn

import (
	"encoding/json"
	"sort"
	"testing"
)

func docFrom(t *testing.T, jsonStr string) RawDocument {
	t.Helper()
	var doc RawDocument
	if err := json.Unmarshal([]byte(jsonStr), &doc); err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return doc
}

func TestParseSnapshotDefaults(t *testing.T) {
	snap := ParseSnapshot(docFrom(t, `{"name": "Boss", "level": 42}`))

	if snap.Name != "Boss" || snap.Level != 42 {
		t.Errorf("got name=%q level=%d", snap.Name, snap.Level)
	}
	if snap.Energy.Full() || snap.Nerve.Full() {
		t.Error("absent bars must never report full")
	}
	if snap.Travel.TimeLeft != 0 || snap.Education.TimeLeft != 0 {
		t.Error("absent travel/education must decode to zero")
	}
	if len(snap.Events) != 0 || len(snap.Messages) != 0 {
		t.Error("absent feeds must decode to empty slices")
	}
}

func TestParseSnapshotMalformedFieldIsZero(t *testing.T) {
	snap := ParseSnapshot(docFrom(t, `{
		"energy": "not an object",
		"events": [1, 2, 3]
	}`))
	if snap.Energy.Maximum != 0 {
		t.Errorf("malformed energy decoded to %+v", snap.Energy)
	}
	if snap.Events != nil {
		t.Errorf("malformed events decoded to %v", snap.Events)
	}
}

func TestBarFull(t *testing.T) {
	tests := []struct {
		name string
		bar  Bar
		want bool
	}{
		{"at capacity", Bar{Current: 150, Maximum: 150}, true},
		{"over capacity", Bar{Current: 155, Maximum: 150}, true},
		{"partial", Bar{Current: 149, Maximum: 150}, false},
		{"zero maximum", Bar{Current: 0, Maximum: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.bar.Full(); got != tt.want {
			t.Errorf("%s: Full() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseSnapshotFeeds(t *testing.T) {
	snap := ParseSnapshot(docFrom(t, `{
		"events": {
			"a7f3": {"event": "someone mugged you", "timestamp": 1500},
			"0b2c": {"event": "bought an item", "timestamp": 900}
		},
		"messages": {
			"15": {"name": "Vito", "title": "offer", "text": "hi", "timestamp": 2000}
		}
	}`))

	if len(snap.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(snap.Events))
	}
	sort.Slice(snap.Events, func(i, j int) bool { return snap.Events[i].Timestamp < snap.Events[j].Timestamp })
	if snap.Events[0].ID != "0b2c" || snap.Events[0].Text != "bought an item" {
		t.Errorf("unexpected first event: %+v", snap.Events[0])
	}
	if len(snap.Messages) != 1 || snap.Messages[0].Name != "Vito" {
		t.Fatalf("unexpected messages: %+v", snap.Messages)
	}
}

func TestParseSnapshotEducationShapes(t *testing.T) {
	nested := ParseSnapshot(docFrom(t, `{"education": {"timeleft": 3000}}`))
	if nested.Education.TimeLeft != 3000 {
		t.Errorf("nested shape: timeleft = %d, want 3000", nested.Education.TimeLeft)
	}

	flat := ParseSnapshot(docFrom(t, `{"education_timeleft": 45}`))
	if flat.Education.TimeLeft != 45 {
		t.Errorf("flat shape: timeleft = %d, want 45", flat.Education.TimeLeft)
	}
}

func TestParseCompanyStockShapes(t *testing.T) {
	asMap := ParseCompany(docFrom(t, `{
		"company_stock": {
			"Beer": {"in_stock": 12, "sold_amount": 5},
			"Wine": {"in_stock": 0, "sold_amount": 9}
		}
	}`))
	if len(asMap.Stock) != 2 {
		t.Fatalf("map shape: got %d items, want 2", len(asMap.Stock))
	}
	sort.Slice(asMap.Stock, func(i, j int) bool { return asMap.Stock[i].Name < asMap.Stock[j].Name })
	if asMap.Stock[0].Name != "Beer" || asMap.Stock[0].InStock != 12 {
		t.Errorf("map shape: unexpected first item %+v", asMap.Stock[0])
	}

	asList := ParseCompany(docFrom(t, `{
		"company_stock": [{"name": "Rum", "in_stock": 7}]
	}`))
	if len(asList.Stock) != 1 || asList.Stock[0].Name != "Rum" {
		t.Fatalf("list shape: unexpected stock %+v", asList.Stock)
	}
}

func TestParseCompanyEmployees(t *testing.T) {
	c := ParseCompany(docFrom(t, `{
		"company": {"name": "Bada Bing"},
		"company_employees": {
			"101": {"name": "Paulie", "position": "Manager", "last_action": {"timestamp": 1700000000}}
		}
	}`))
	if c.Name != "Bada Bing" {
		t.Errorf("name = %q", c.Name)
	}
	emp, ok := c.Employees["101"]
	if !ok || emp.Name != "Paulie" || emp.LastAction != 1700000000 {
		t.Fatalf("unexpected employee: %+v (ok=%v)", emp, ok)
	}
}

func TestParseProfileSelections(t *testing.T) {
	doc := docFrom(t, `{
		"criminalrecord": {"theft": 120, "fraud_crimes": 3},
		"strength": 1000.5, "speed": 800, "defense": 600, "dexterity": 400,
		"personalstats": {"attackswon": 512, "xantaken": 64}
	}`)

	rec := ParseCriminalRecord(doc)
	if rec["theft"] != 120 {
		t.Errorf("criminal record: %v", rec)
	}

	bs := ParseBattleStats(doc)
	if bs.Total() != 2800.5 {
		t.Errorf("battle stats total = %v, want 2800.5", bs.Total())
	}

	ps := ParsePersonalStats(doc)
	if ps["attackswon"] != 512 {
		t.Errorf("personal stats: %v", ps)
	}
}
