package core

import (
	"strings"
	"testing"
)

func TestValidateItemAcceptsSoundItems(t *testing.T) {
	items := []Item{
		&ScientificItem{ID: "s1", Title: "Walking helps", Body: "A short body."},
		&QuoteItem{ID: "q1", Text: "Keep walking.", Author: "Anon", Background: "sunrise"},
		&RouteItem{ID: "r1", Title: "River loop", DistanceKm: 3, DurationMin: 40, Difficulty: DifficultyEasy},
		&EventItem{ID: "e1", Title: "Group walk", Date: "Saturday mornings"},
	}
	for _, item := range items {
		if problems := ValidateItem(item); len(problems) != 0 {
			t.Errorf("%s: unexpected problems: %v", item.ItemID(), problems)
		}
	}
}

func TestValidateItemReportsRouteProblems(t *testing.T) {
	r := &RouteItem{Title: "Broken route", DistanceKm: 0, DurationMin: -5, Difficulty: "EXTREME"}
	problems := ValidateItem(r)
	if len(problems) != 4 {
		t.Fatalf("expected 4 problems, got %d: %v", len(problems), problems)
	}
	joined := strings.Join(problems, "\n")
	for _, want := range []string{"missing id", "distance", "duration", "difficulty"} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q: %v", want, problems)
		}
	}
}

func TestValidateItemReportsEmptyQuote(t *testing.T) {
	problems := ValidateItem(&QuoteItem{ID: "q1"})
	if len(problems) != 1 || !strings.Contains(problems[0], "no text") {
		t.Errorf("unexpected problems: %v", problems)
	}
}

func TestValidateItemNil(t *testing.T) {
	if problems := ValidateItem(nil); len(problems) != 1 {
		t.Errorf("expected a single problem for nil item, got %v", problems)
	}
}
