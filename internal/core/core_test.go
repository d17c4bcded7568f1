package core

import (
	"encoding/json"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"scientific", KindScientific, false},
		{" QUOTE ", KindQuote, false},
		{"Route", KindRoute, false},
		{"EVENT", KindEvent, false},
		{"podcast", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseKind(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDifficulty(t *testing.T) {
	cases := []struct {
		raw  string
		want Difficulty
	}{
		{"niveau difficile", DifficultyHard},
		{"easy walk", DifficultyEasy},
		{"moderate", DifficultyMedium},
		{"Facile", DifficultyEasy},
		{"HARD trail", DifficultyHard},
		{"", DifficultyMedium},
	}

	for _, tc := range cases {
		if got := NormalizeDifficulty(tc.raw); got != tc.want {
			t.Errorf("NormalizeDifficulty(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestItemKindExhaustive(t *testing.T) {
	items := []Item{
		&ScientificItem{ID: "s1"},
		&QuoteItem{ID: "q1"},
		&RouteItem{ID: "r1"},
		&EventItem{ID: "e1"},
	}

	seen := make(map[Kind]bool)
	for _, it := range items {
		k := it.ItemKind()
		if !k.Valid() {
			t.Errorf("item %s reports invalid kind %q", it.ItemID(), k)
		}
		seen[k] = true
	}

	for _, k := range Kinds {
		if !seen[k] {
			t.Errorf("no item variant covers kind %q", k)
		}
	}
}

func TestMarshalItemRoundTrip(t *testing.T) {
	route := &RouteItem{
		ID:          "r42",
		Title:       "Canal towpath loop",
		Location:    "Lille",
		DistanceKm:  4.5,
		DurationMin: 55,
		Difficulty:  DifficultyEasy,
		Description: "Flat loop along the Deûle canal.",
		Image:       "https://images.example.com/canal.jpg",
	}

	data, err := MarshalItem(route)
	if err != nil {
		t.Fatalf("MarshalItem failed: %v", err)
	}

	var probe map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		t.Fatalf("marshaled item is not valid JSON: %v", err)
	}
	if probe["kind"] != string(KindRoute) {
		t.Errorf("expected kind discriminator %q, got %v", KindRoute, probe["kind"])
	}

	back, err := UnmarshalItem(data)
	if err != nil {
		t.Fatalf("UnmarshalItem failed: %v", err)
	}
	got, ok := back.(*RouteItem)
	if !ok {
		t.Fatalf("expected *RouteItem back, got %T", back)
	}
	if got.Title != route.Title || got.DistanceKm != route.DistanceKm || got.Difficulty != route.Difficulty {
		t.Errorf("round trip lost fields: got %+v", got)
	}
}

func TestItemListMarshalsMixedKinds(t *testing.T) {
	list := ItemList{
		&QuoteItem{ID: "q1", Text: "One step at a time", Author: "Anonymous", Background: "sunrise"},
		&EventItem{ID: "e1", Title: "Parkrun", Date: "2026-09-12", Location: "Paris"},
	}

	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("failed to marshal item list: %v", err)
	}

	var back ItemList
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("failed to unmarshal item list: %v", err)
	}
	if len(back) != 2 {
		t.Fatalf("expected 2 items back, got %d", len(back))
	}
	if back[0].ItemKind() != KindQuote || back[1].ItemKind() != KindEvent {
		t.Errorf("kinds lost in round trip: %q, %q", back[0].ItemKind(), back[1].ItemKind())
	}
}

func TestSearchTextIsLowercased(t *testing.T) {
	s := &ScientificItem{Title: "Walking BOOSTS Mood", Body: "A 30-minute Walk"}
	text := s.SearchText()
	if text != "walking boosts mood a 30-minute walk" {
		t.Errorf("unexpected search text: %q", text)
	}
}
