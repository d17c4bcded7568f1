// Package feed assembles mood-aware content feeds from generated posts,
// cached entries and stock fallbacks.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/config"
	"decathlonminds/internal/core"
	"decathlonminds/internal/fallback"
	"decathlonminds/internal/images"
	"decathlonminds/internal/logger"
	"decathlonminds/internal/mood"
	"decathlonminds/internal/relevance"
)

var (
	// ErrUpstreamTimeout marks a generation slot that exceeded its per-item
	// deadline and was substituted with stock content.
	ErrUpstreamTimeout = errors.New("upstream generation timed out")
	// ErrMalformedResponse marks a generation reply that could not be decoded.
	ErrMalformedResponse = errors.New("malformed generation response")
	// ErrAllSourcesFailed is returned when every configured article feed
	// failed to fetch.
	ErrAllSourcesFailed = errors.New("all article sources failed")
)

// Generator produces one feed item of a kind. Implemented by llm.Client.
type Generator interface {
	GeneratePost(ctx context.Context, kind core.Kind, moodToken, reasonToken string) (core.Item, error)
}

// ArticleSource fetches candidate articles from the configured feeds.
// Implemented by feeds.Manager.
type ArticleSource interface {
	FetchAll(ctx context.Context, feedURLs []string) ([]core.Article, error)
}

// Request describes one feed assembly.
type Request struct {
	Mood    string `json:"mood"`
	Reason  string `json:"reason"`
	Count   int    `json:"count"`
	Refresh bool   `json:"refresh"`
}

// Response is an assembled feed.
type Response struct {
	Items  core.ItemList `json:"items"`
	Count  int           `json:"count"`
	Mood   string        `json:"mood"`
	Reason string        `json:"reason"`
}

// Assembler builds feeds.
type Assembler struct {
	gen      Generator
	source   ArticleSource
	cache    *cache.FeedCache
	selector *images.Selector
	feedURLs []string
	cfg      config.AssemblyConfig
}

// NewAssembler wires an assembler from its collaborators.
func NewAssembler(gen Generator, source ArticleSource, c *cache.FeedCache, sel *images.Selector, feedURLs []string, cfg config.AssemblyConfig) *Assembler {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 8
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 20
	}
	if cfg.ItemTimeout <= 0 {
		cfg.ItemTimeout = 12 * time.Second
	}
	return &Assembler{
		gen:      gen,
		source:   source,
		cache:    c,
		selector: sel,
		feedURLs: feedURLs,
		cfg:      cfg,
	}
}

// kindRotation returns the kind cycle for a mood. Positive high-energy moods
// lead with events and routes; low moods lead with quotes and gentle routes;
// everything else starts from science.
func kindRotation(moodToken string) []core.Kind {
	switch moodToken {
	case mood.Happy, mood.Excited:
		return []core.Kind{core.KindEvent, core.KindRoute, core.KindQuote, core.KindScientific}
	case mood.Sad, mood.Anxious, mood.Lonely:
		return []core.Kind{core.KindQuote, core.KindRoute, core.KindScientific, core.KindEvent}
	default:
		return []core.Kind{core.KindScientific, core.KindQuote, core.KindRoute, core.KindEvent}
	}
}

// Assemble builds a feed for the request. It never returns an empty feed for
// a positive count: failed generation slots are filled from the cache when
// possible and from stock fallbacks otherwise.
func (a *Assembler) Assemble(ctx context.Context, req Request) (*Response, error) {
	moodToken, knownMood := mood.Canonicalize(req.Mood)
	reasonToken, _ := mood.CanonicalizeReason(req.Reason)
	if !knownMood {
		logger.Info("assembling with unrecognized mood", "mood", req.Mood, "token", moodToken)
	}

	count := req.Count
	if count <= 0 {
		count = a.cfg.DefaultCount
	}
	if count > a.cfg.MaxCount {
		count = a.cfg.MaxCount
	}

	if req.Refresh {
		a.selector.Reset()
	}

	rotation := kindRotation(moodToken)
	logger.Debug("assembling feed",
		"mood", moodToken, "reason", reasonToken, "count", count,
		"rotation", describeKinds(rotation))

	slots := make([]core.Item, count)
	failed := make([]bool, count)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < count; i++ {
		kind := rotation[i%len(rotation)]
		g.Go(func() error {
			// Stagger launches so a burst of slots does not hit the
			// generation quota at once.
			if a.cfg.LaunchInterval > 0 {
				select {
				case <-time.After(time.Duration(i) * a.cfg.LaunchInterval):
				case <-gctx.Done():
					slots[i] = fallback.For(kind, moodToken, reasonToken)
					failed[i] = true
					return nil
				}
			}

			item, err := a.generateSlot(gctx, kind, moodToken, reasonToken)
			if err != nil {
				logger.Warn("generation slot failed, using fallback",
					"kind", string(kind), "error", err.Error())
				slots[i] = fallback.For(kind, moodToken, reasonToken)
				failed[i] = true
				return nil
			}
			slots[i] = item
			return nil
		})
	}
	_ = g.Wait()

	successes := 0
	for i := range slots {
		if !failed[i] {
			successes++
		}
	}

	// On a bad run, prefer previously served content over stock text.
	if successes < count/2 {
		a.padFromCache(slots, failed, rotation, moodToken, reasonToken)
	}

	for _, item := range slots {
		a.fillImage(item, moodToken)
	}

	return &Response{
		Items:  slots,
		Count:  len(slots),
		Mood:   moodToken,
		Reason: reasonToken,
	}, nil
}

// generateSlot runs one generation with its own deadline, scores the result
// and records it in the cache.
func (a *Assembler) generateSlot(ctx context.Context, kind core.Kind, moodToken, reasonToken string) (core.Item, error) {
	slotCtx, cancel := context.WithTimeout(ctx, a.cfg.ItemTimeout)
	defer cancel()

	item, err := a.gen.GeneratePost(slotCtx, kind, moodToken, reasonToken)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(slotCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if problems := core.ValidateItem(item); len(problems) > 0 {
		logger.Warn("generated item failed structural checks",
			"kind", string(kind), "id", item.ItemID(), "problems", strings.Join(problems, "; "))
	}

	item.SetRelevance(relevance.Score(item, moodToken, reasonToken))
	a.cache.Put(cache.NewKey(kind, moodToken, reasonToken), item)
	return item, nil
}

// padFromCache swaps fallback items for cached ones where the cache has a
// matching entry. The mood-and-reason key is preferred, then the wildcard
// seed entry for the kind.
func (a *Assembler) padFromCache(slots []core.Item, failed []bool, rotation []core.Kind, moodToken, reasonToken string) {
	for i := range slots {
		if !failed[i] {
			continue
		}
		kind := rotation[i%len(rotation)]
		if item, ok := a.cache.Get(cache.NewKey(kind, moodToken, reasonToken)); ok {
			slots[i] = item
			continue
		}
		if item, ok := a.cache.Get(cache.NewKey(kind, "", "")); ok {
			slots[i] = item
		}
	}
}

// fillImage assigns an illustration to items that carry one and do not have
// one yet.
func (a *Assembler) fillImage(item core.Item, moodToken string) {
	if item == nil || item.ImageRef() != "" {
		return
	}
	category, ok := imageCategory(item.ItemKind())
	if !ok {
		return
	}
	item.SetImage(a.selector.Select(category, moodToken, item.ItemTags()))
}

func imageCategory(kind core.Kind) (string, bool) {
	switch kind {
	case core.KindScientific:
		return "scientific", true
	case core.KindRoute:
		return "route", true
	case core.KindEvent:
		return "event", true
	}
	return "", false
}

// AssembleScientific builds the bulk science feed from the configured RSS
// sources: fetch everything, filter for walking and wellbeing relevance,
// score against the mood, and return the top entries.
func (a *Assembler) AssembleScientific(ctx context.Context, moodLabel, reasonLabel string, limit int) ([]core.Item, error) {
	moodToken, _ := mood.Canonicalize(moodLabel)
	reasonToken, _ := mood.CanonicalizeReason(reasonLabel)
	if limit <= 0 {
		limit = a.cfg.DefaultCount
	}

	articles, err := a.source.FetchAll(ctx, a.feedURLs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllSourcesFailed, err)
	}

	filtered := relevance.Filter(articles, moodToken, reasonToken)

	items := make([]core.Item, 0, len(filtered))
	for _, article := range filtered {
		item := &core.ScientificItem{
			ID:        article.ID,
			Title:     article.Title,
			Body:      article.Description,
			Author:    article.Author,
			Published: article.Published,
			Source:    article.SourceName,
		}
		item.SetRelevance(relevance.Score(&article, moodToken, reasonToken))
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Relevance() > items[j].Relevance()
	})
	if len(items) > limit {
		items = items[:limit]
	}

	key := cache.NewKey(core.KindScientific, moodToken, reasonToken)
	for _, item := range items {
		a.fillImage(item, moodToken)
		a.cache.Put(key, item)
	}
	return items, nil
}

// describeKinds is a small helper for logging the rotation.
func describeKinds(kinds []core.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ",")
}
