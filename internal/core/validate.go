package core

import "fmt"

// ValidateItem runs structural checks on a finished feed item and returns a
// list of human-readable problems. An empty slice means the item is sound.
// Problems are advisory: callers log them, they do not drop the item.
func ValidateItem(item Item) []string {
	var problems []string
	if item == nil {
		return []string{"item is nil"}
	}
	if item.ItemID() == "" {
		problems = append(problems, "missing id")
	}
	if !item.ItemKind().Valid() {
		problems = append(problems, fmt.Sprintf("unknown kind %q", string(item.ItemKind())))
	}

	switch v := item.(type) {
	case *ScientificItem:
		if v.Title == "" {
			problems = append(problems, "scientific item has no title")
		}
		if v.Body == "" {
			problems = append(problems, "scientific item has no body")
		}
	case *QuoteItem:
		if v.Text == "" {
			problems = append(problems, "quote has no text")
		}
	case *RouteItem:
		if v.Title == "" {
			problems = append(problems, "route has no title")
		}
		if v.DistanceKm <= 0 {
			problems = append(problems, fmt.Sprintf("route distance %.1f km is not positive", v.DistanceKm))
		}
		if v.DurationMin <= 0 {
			problems = append(problems, fmt.Sprintf("route duration %d min is not positive", v.DurationMin))
		}
		if !v.Difficulty.Valid() {
			problems = append(problems, fmt.Sprintf("unknown route difficulty %q", string(v.Difficulty)))
		}
	case *EventItem:
		if v.Title == "" {
			problems = append(problems, "event has no title")
		}
		if v.Date == "" {
			problems = append(problems, "event has no date")
		}
	}
	return problems
}
