package core

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind identifies the content archetype of a feed item.
type Kind string

const (
	KindScientific Kind = "SCIENTIFIC" // Science-backed walking/wellness snippet
	KindQuote      Kind = "QUOTE"      // Motivational quote card
	KindRoute      Kind = "ROUTE"      // Suggested walking/jogging route
	KindEvent      Kind = "EVENT"      // Local outdoor/wellness event
)

// Kinds lists every content kind in canonical order.
var Kinds = []Kind{KindScientific, KindQuote, KindRoute, KindEvent}

// ParseKind converts a free-text kind label into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToUpper(strings.TrimSpace(s)))
	switch k {
	case KindScientific, KindQuote, KindRoute, KindEvent:
		return k, nil
	}
	return "", fmt.Errorf("unknown content kind %q", s)
}

// Valid reports whether k is one of the four content kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindScientific, KindQuote, KindRoute, KindEvent:
		return true
	}
	return false
}

// Difficulty grades a route. Free-text difficulty labels are normalized into
// this enum; anything that doesn't read as easy or hard lands on MEDIUM.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// NormalizeDifficulty maps raw difficulty text (French or English) onto the
// Difficulty enum. Substring match: "easy"/"facile" wins EASY, "hard"/
// "difficile" wins HARD, everything else is MEDIUM.
func NormalizeDifficulty(raw string) Difficulty {
	s := strings.ToLower(raw)
	switch {
	case strings.Contains(s, "easy") || strings.Contains(s, "facile"):
		return DifficultyEasy
	case strings.Contains(s, "hard") || strings.Contains(s, "difficile"):
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Valid reports whether d is one of the three difficulty grades.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Item is the interface shared by the four feed post variants. Consumers
// switch exhaustively on the concrete type (or ItemKind) so that adding a
// fifth kind surfaces every consumption site.
type Item interface {
	ItemID() string
	ItemKind() Kind
	ItemTags() []string
	// SearchText returns the lower-cased title+body text used for keyword
	// matching by the relevance scorer and the content filter.
	SearchText() string
	// ImageRef returns the item's image URL, or "" for kinds without one.
	ImageRef() string
	// SetImage assigns an image URL. No-op for kinds without an image slot.
	SetImage(url string)
	// Relevance returns the advisory relevance score assigned to the item.
	// The score orders display, it never gates inclusion.
	Relevance() int
	SetRelevance(score int)
}

// ScientificItem is a science-backed snippet on walking, movement or mental
// wellbeing, sourced from an article or generated.
type ScientificItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	Published time.Time `json:"published"`
	Source    string    `json:"source"` // Citation: publication or feed name
	Image     string    `json:"image"`
	Tags      []string  `json:"tags,omitempty"`
	Score     int       `json:"score,omitempty"`
}

func (s *ScientificItem) ItemID() string      { return s.ID }
func (s *ScientificItem) ItemKind() Kind      { return KindScientific }
func (s *ScientificItem) ItemTags() []string  { return s.Tags }
func (s *ScientificItem) ImageRef() string    { return s.Image }
func (s *ScientificItem) SetImage(url string) { s.Image = url }
func (s *ScientificItem) Relevance() int      { return s.Score }
func (s *ScientificItem) SetRelevance(v int)  { s.Score = v }
func (s *ScientificItem) SearchText() string {
	return strings.ToLower(s.Title + " " + s.Body)
}

// QuoteItem is a motivational quote card. It renders on a colored background
// instead of an image.
type QuoteItem struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Author     string   `json:"author"`
	Background string   `json:"background"` // Background color token, e.g. "sunrise"
	Tags       []string `json:"tags,omitempty"`
	Score      int      `json:"score,omitempty"`
}

func (q *QuoteItem) ItemID() string     { return q.ID }
func (q *QuoteItem) ItemKind() Kind     { return KindQuote }
func (q *QuoteItem) ItemTags() []string { return q.Tags }
func (q *QuoteItem) ImageRef() string   { return "" }
func (q *QuoteItem) SetImage(string)    {}
func (q *QuoteItem) Relevance() int     { return q.Score }
func (q *QuoteItem) SetRelevance(v int) { q.Score = v }
func (q *QuoteItem) SearchText() string {
	return strings.ToLower(q.Text + " " + q.Author)
}

// RouteItem is a suggested walking or jogging route.
type RouteItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Location    string     `json:"location"`
	DistanceKm  float64    `json:"distance_km"`  // Must be > 0
	DurationMin int        `json:"duration_min"` // Must be > 0
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	Tags        []string   `json:"tags,omitempty"`
	Score       int        `json:"score,omitempty"`
}

func (r *RouteItem) ItemID() string      { return r.ID }
func (r *RouteItem) ItemKind() Kind      { return KindRoute }
func (r *RouteItem) ItemTags() []string  { return r.Tags }
func (r *RouteItem) ImageRef() string    { return r.Image }
func (r *RouteItem) SetImage(url string) { r.Image = url }
func (r *RouteItem) Relevance() int      { return r.Score }
func (r *RouteItem) SetRelevance(v int)  { r.Score = v }
func (r *RouteItem) SearchText() string {
	return strings.ToLower(r.Title + " " + r.Description)
}

// EventItem is a local outdoor or wellness event.
type EventItem struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Date             string   `json:"date"` // ISO date or recurring schedule, e.g. "Saturday mornings"
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	RegistrationLink string   `json:"registration_link,omitempty"`
	Image            string   `json:"image"`
	Tags             []string `json:"tags,omitempty"`
	Score            int      `json:"score,omitempty"`
}

func (e *EventItem) ItemID() string      { return e.ID }
func (e *EventItem) ItemKind() Kind      { return KindEvent }
func (e *EventItem) ItemTags() []string  { return e.Tags }
func (e *EventItem) ImageRef() string    { return e.Image }
func (e *EventItem) SetImage(url string) { e.Image = url }
func (e *EventItem) Relevance() int      { return e.Score }
func (e *EventItem) SetRelevance(v int)  { e.Score = v }
func (e *EventItem) SearchText() string {
	return strings.ToLower(e.Title + " " + e.Description)
}

// Article is a raw candidate fetched from an RSS/Atom feed, before it is
// filtered, scored and promoted into a ScientificItem.
type Article struct {
	ID          string    `json:"id"`          // Deterministic ID derived from the link
	Title       string    `json:"title"`       // Item title
	Link        string    `json:"link"`        // Item URL
	Description string    `json:"description"` // Item description/summary
	Published   time.Time `json:"published"`   // Publication date
	SourceName  string    `json:"source_name"` // Feed the article came from
	Author      string    `json:"author"`      // Byline when the feed carries one
}

// SearchText returns the lower-cased title+description text used for keyword
// matching.
func (a Article) SearchText() string {
	return strings.ToLower(a.Title + " " + a.Description)
}

// MarshalItem encodes an item flat with a "kind" discriminator so clients can
// dispatch on it.
func MarshalItem(it Item) ([]byte, error) {
	switch v := it.(type) {
	case *ScientificItem:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*ScientificItem
		}{KindScientific, v})
	case *QuoteItem:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*QuoteItem
		}{KindQuote, v})
	case *RouteItem:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*RouteItem
		}{KindRoute, v})
	case *EventItem:
		return json.Marshal(struct {
			Kind Kind `json:"kind"`
			*EventItem
		}{KindEvent, v})
	default:
		return nil, fmt.Errorf("cannot marshal item of unknown type %T", it)
	}
}

// UnmarshalItem decodes a flat item object by its "kind" discriminator.
func UnmarshalItem(data []byte) (Item, error) {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to read item kind: %w", err)
	}

	switch probe.Kind {
	case KindScientific:
		var it ScientificItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("failed to decode scientific item: %w", err)
		}
		return &it, nil
	case KindQuote:
		var it QuoteItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("failed to decode quote item: %w", err)
		}
		return &it, nil
	case KindRoute:
		var it RouteItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("failed to decode route item: %w", err)
		}
		return &it, nil
	case KindEvent:
		var it EventItem
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("failed to decode event item: %w", err)
		}
		return &it, nil
	default:
		return nil, fmt.Errorf("unknown content kind %q", probe.Kind)
	}
}

// ItemList wraps a slice of items so responses marshal each element with its
// kind discriminator.
type ItemList []Item

// MarshalJSON implements json.Marshaler.
func (l ItemList) MarshalJSON() ([]byte, error) {
	parts := make([]json.RawMessage, 0, len(l))
	for _, it := range l {
		b, err := MarshalItem(it)
		if err != nil {
			return nil, err
		}
		parts = append(parts, b)
	}
	return json.Marshal(parts)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *ItemList) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	items := make([]Item, 0, len(parts))
	for _, p := range parts {
		it, err := UnmarshalItem(p)
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	*l = items
	return nil
}
