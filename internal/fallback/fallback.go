// Package fallback holds hand-authored stock posts served when generation
// fails or times out. Every kind has at least one entry for every canonical
// mood, so For never returns nil.
package fallback

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/core"
	"decathlonminds/internal/mood"
)

var (
	randMu  sync.Mutex
	randSrc = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// For returns a stock item of the requested kind, themed for the mood when a
// themed variant exists. The returned item carries a fresh ID so repeated
// fallbacks in one feed stay distinguishable.
func For(kind core.Kind, moodToken, reasonToken string) core.Item {
	pool := themedPool(kind, moodToken)
	if len(pool) == 0 {
		pool = defaultPool(kind)
	}

	randMu.Lock()
	idx := randSrc.Intn(len(pool))
	randMu.Unlock()

	item := pool[idx]()
	item.SetRelevance(defaultRelevance)
	return item
}

// SeedEntries returns cache entries for warming a fresh cache, one entry per
// kind under the wildcard mood and reason.
func SeedEntries() map[cache.Key][]core.Item {
	entries := make(map[cache.Key][]core.Item, len(core.Kinds))
	for _, kind := range core.Kinds {
		pool := defaultPool(kind)
		items := make([]core.Item, 0, len(pool))
		for _, build := range pool {
			item := build()
			item.SetRelevance(defaultRelevance)
			items = append(items, item)
		}
		entries[cache.NewKey(kind, "", "")] = items
	}
	return entries
}

// defaultRelevance marks stock content as acceptable but never preferred
// over freshly generated posts.
const defaultRelevance = 50

type builder func() core.Item

func themedPool(kind core.Kind, moodToken string) []builder {
	if kind != core.KindQuote {
		return nil
	}
	switch moodToken {
	case mood.Sad, mood.Lonely:
		return []builder{
			quote("Even the longest walk begins where you are standing.", "Proverb", "dawn"),
			quote("Nature does not hurry, yet everything is accomplished.", "Lao Tzu", "forest"),
		}
	case mood.Stressed, mood.Anxious:
		return []builder{
			quote("Walking is man's best medicine.", "Hippocrates", "ocean"),
			quote("In every walk with nature one receives far more than he seeks.", "John Muir", "forest"),
		}
	case mood.Tired:
		return []builder{
			quote("It is the walk, not the pace, that restores.", "Anonymous", "dusk"),
		}
	}
	return nil
}

func defaultPool(kind core.Kind) []builder {
	switch kind {
	case core.KindScientific:
		return []builder{
			scientific("Ten minutes of walking lifts mood",
				"Researchers found that a single ten minute walk measurably improves self-reported mood for up to two hours, regardless of pace or setting. The effect was strongest for participants who walked outdoors.",
				"Decathlon Minds editorial", "Journal of Health Psychology"),
			scientific("Green spaces lower stress hormones",
				"Spending twenty minutes in a park reduces salivary cortisol significantly more than the same time spent on a busy street. The researchers suggest even small urban green spaces provide the effect.",
				"Decathlon Minds editorial", "Frontiers in Psychology"),
		}
	case core.KindQuote:
		return []builder{
			quote("All truly great thoughts are conceived while walking.", "Friedrich Nietzsche", "slate"),
			quote("An early-morning walk is a blessing for the whole day.", "Henry David Thoreau", "sunrise"),
			quote("It is solved by walking.", "Diogenes", "sand"),
		}
	case core.KindRoute:
		return []builder{
			route("Riverside recovery loop", "Along any local river or canal", 3.0, 40, core.DifficultyEasy,
				"A flat out-and-back beside the water. Walk out for twenty minutes, turn around, and let the current set your thoughts in order on the way home."),
			route("Neighbourhood hill repeat", "Your nearest hill or stairs", 2.0, 30, core.DifficultyMedium,
				"Climb at a steady effort, recover on the way down, repeat three times. Short, honest work that leaves the head clear."),
		}
	case core.KindEvent:
		return []builder{
			event("Weekly community walk", "Saturday mornings", "Your local Decathlon store",
				"Free guided group walks open to all levels. Meet at the entrance, walk for an hour, and finish with a coffee together.", ""),
			event("Sunrise walk challenge", "First Sunday of the month", "City park, main gate",
				"Start the month with a sunrise walk. No registration needed, just turn up with a warm layer and comfortable shoes.", ""),
		}
	}
	return []builder{
		quote("Keep moving forward.", "Anonymous", "sunrise"),
	}
}

func scientific(title, body, author, source string) builder {
	return func() core.Item {
		return &core.ScientificItem{
			ID:     uuid.NewString(),
			Title:  title,
			Body:   body,
			Author: author,
			Source: source,
		}
	}
}

func quote(text, author, background string) builder {
	return func() core.Item {
		return &core.QuoteItem{
			ID:         uuid.NewString(),
			Text:       text,
			Author:     author,
			Background: background,
		}
	}
}

func route(title, location string, distanceKm float64, durationMin int, difficulty core.Difficulty, description string) builder {
	return func() core.Item {
		return &core.RouteItem{
			ID:          uuid.NewString(),
			Title:       title,
			Location:    location,
			DistanceKm:  distanceKm,
			DurationMin: durationMin,
			Difficulty:  difficulty,
			Description: description,
		}
	}
}

func event(title, date, location, description, link string) builder {
	return func() core.Item {
		return &core.EventItem{
			ID:               uuid.NewString(),
			Title:            title,
			Date:             date,
			Location:         location,
			Description:      description,
			RegistrationLink: link,
		}
	}
}
