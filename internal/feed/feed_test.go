package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/config"
	"decathlonminds/internal/core"
	"decathlonminds/internal/images"
	"decathlonminds/internal/mood"
)

type stubGenerator struct {
	mu    sync.Mutex
	delay time.Duration
	fail  bool
	calls int
}

func (s *stubGenerator) GeneratePost(ctx context.Context, kind core.Kind, moodToken, reasonToken string) (core.Item, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.fail {
		return nil, errors.New("model said no")
	}
	switch kind {
	case core.KindQuote:
		return &core.QuoteItem{ID: fmt.Sprintf("q-%d", n), Text: "generated quote"}, nil
	case core.KindRoute:
		return &core.RouteItem{ID: fmt.Sprintf("r-%d", n), Title: "generated route", Location: "somewhere"}, nil
	case core.KindEvent:
		return &core.EventItem{ID: fmt.Sprintf("e-%d", n), Title: "generated event"}, nil
	default:
		return &core.ScientificItem{ID: fmt.Sprintf("s-%d", n), Title: "generated science", Body: "marche et bienfait"}, nil
	}
}

type stubSource struct {
	articles []core.Article
	err      error
}

func (s *stubSource) FetchAll(ctx context.Context, urls []string) ([]core.Article, error) {
	return s.articles, s.err
}

func testConfig() config.AssemblyConfig {
	return config.AssemblyConfig{
		DefaultCount: 8,
		MaxCount:     20,
		ItemTimeout:  200 * time.Millisecond,
	}
}

func newTestAssembler(gen Generator, source ArticleSource) *Assembler {
	return NewAssembler(gen, source, cache.New(30*time.Minute), images.NewSelector(), nil, testConfig())
}

func TestAssembleFollowsHappyRotation(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(gen, &stubSource{})

	resp, err := a.Assemble(context.Background(), Request{Mood: "HEUREUX(SE)", Count: 8})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if resp.Count != 8 {
		t.Fatalf("count = %d, want 8", resp.Count)
	}
	if resp.Mood != mood.Happy {
		t.Errorf("mood = %q, want %q", resp.Mood, mood.Happy)
	}

	want := []core.Kind{
		core.KindEvent, core.KindRoute, core.KindQuote, core.KindScientific,
		core.KindEvent, core.KindRoute, core.KindQuote, core.KindScientific,
	}
	for i, item := range resp.Items {
		if item.ItemKind() != want[i] {
			t.Errorf("slot %d kind = %s, want %s", i, item.ItemKind(), want[i])
		}
	}
}

func TestAssembleDefaultRotationLeadsWithScience(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(gen, &stubSource{})

	resp, err := a.Assemble(context.Background(), Request{Mood: "CALM", Count: 4})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if resp.Items[0].ItemKind() != core.KindScientific {
		t.Errorf("first kind = %s, want %s", resp.Items[0].ItemKind(), core.KindScientific)
	}
}

func TestAssembleSubstitutesFallbackOnTimeout(t *testing.T) {
	gen := &stubGenerator{delay: 2 * time.Second}
	a := newTestAssembler(gen, &stubSource{})

	start := time.Now()
	resp, err := a.Assemble(context.Background(), Request{Mood: "SAD", Count: 4})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 1500*time.Millisecond {
		t.Errorf("assembly took %v, per-item timeout did not bound it", elapsed)
	}
	if resp.Count != 4 {
		t.Fatalf("count = %d, want 4 despite every slot timing out", resp.Count)
	}
	for i, item := range resp.Items {
		if item == nil {
			t.Fatalf("slot %d is nil", i)
		}
	}
}

func TestAssembleSubstitutesFallbackOnMalformedReply(t *testing.T) {
	gen := &stubGenerator{fail: true}
	a := newTestAssembler(gen, &stubSource{})

	resp, err := a.Assemble(context.Background(), Request{Count: 4})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	for i, item := range resp.Items {
		if item == nil {
			t.Fatalf("slot %d is nil", i)
		}
	}
}

func TestAssemblePrefersCachedOverStockOnBadRun(t *testing.T) {
	gen := &stubGenerator{fail: true}
	c := cache.New(30 * time.Minute)
	cached := &core.QuoteItem{ID: "cached-quote", Text: "from the cache"}
	c.Put(cache.NewKey(core.KindQuote, mood.Sad, ""), cached)

	a := NewAssembler(gen, &stubSource{}, c, images.NewSelector(), nil, testConfig())
	resp, err := a.Assemble(context.Background(), Request{Mood: "SAD", Count: 4})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// SAD rotation leads with QUOTE, so slot 0 should come from the cache.
	if resp.Items[0].ItemID() != "cached-quote" {
		t.Errorf("slot 0 = %s, want the cached quote", resp.Items[0].ItemID())
	}
}

func TestAssembleCachesGeneratedItems(t *testing.T) {
	gen := &stubGenerator{}
	c := cache.New(30 * time.Minute)
	a := NewAssembler(gen, &stubSource{}, c, images.NewSelector(), nil, testConfig())

	if _, err := a.Assemble(context.Background(), Request{Mood: "SAD", Count: 4}); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if _, ok := c.Get(cache.NewKey(core.KindQuote, mood.Sad, "")); !ok {
		t.Error("generated quote was not cached")
	}
}

func TestAssembleAssignsImages(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(gen, &stubSource{})

	resp, err := a.Assemble(context.Background(), Request{Mood: "HAPPY", Count: 8})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	for _, item := range resp.Items {
		if item.ItemKind() == core.KindQuote {
			if item.ImageRef() != "" {
				t.Errorf("quote %s has an image", item.ItemID())
			}
			continue
		}
		if item.ImageRef() == "" {
			t.Errorf("%s item %s has no image", item.ItemKind(), item.ItemID())
		}
	}
}

func TestAssembleRefreshResetsImageRotation(t *testing.T) {
	gen := &stubGenerator{}
	sel := images.NewSelector()
	a := NewAssembler(gen, &stubSource{}, cache.New(30*time.Minute), sel, nil, testConfig())

	if _, err := a.Assemble(context.Background(), Request{Mood: "HAPPY", Count: 4}); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if sel.UsedCount() == 0 {
		t.Fatal("first assembly used no images")
	}

	// Without refresh, the used set keeps growing across assemblies.
	if _, err := a.Assemble(context.Background(), Request{Mood: "HAPPY", Count: 4}); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	before := sel.UsedCount()

	if _, err := a.Assemble(context.Background(), Request{Mood: "HAPPY", Count: 4, Refresh: true}); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	after := sel.UsedCount()
	if after >= before {
		t.Errorf("refresh did not reset image rotation: before=%d after=%d", before, after)
	}
}

func TestAssembleClampsCount(t *testing.T) {
	gen := &stubGenerator{}
	a := newTestAssembler(gen, &stubSource{})

	resp, err := a.Assemble(context.Background(), Request{Count: 100})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if resp.Count != 20 {
		t.Errorf("count = %d, want clamped to 20", resp.Count)
	}

	resp, err = a.Assemble(context.Background(), Request{})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if resp.Count != 8 {
		t.Errorf("count = %d, want default 8", resp.Count)
	}
}

func TestAssembleScientificSortsByRelevance(t *testing.T) {
	articles := []core.Article{
		{ID: "low", Title: "Quarterly earnings report", Description: "finance news"},
		{ID: "high", Title: "Marcher dans la nature réduit le stress", Description: "une étude sur la marche, la respiration et le bien-être au travail"},
		{ID: "mid", Title: "Walking your way to health", Description: "a walk a day"},
	}
	a := newTestAssembler(&stubGenerator{}, &stubSource{articles: articles})

	items, err := a.AssembleScientific(context.Background(), "STRESSÉ(E)", "TRAVAIL", 10)
	if err != nil {
		t.Fatalf("AssembleScientific() error = %v", err)
	}
	if len(items) == 0 {
		t.Fatal("no items returned")
	}
	for i := 1; i < len(items); i++ {
		if items[i].Relevance() > items[i-1].Relevance() {
			t.Errorf("items not sorted by relevance at position %d", i)
		}
	}
	if items[0].ItemID() != "high" {
		t.Errorf("top item = %s, want the stress-and-walking article", items[0].ItemID())
	}
}

func TestAssembleScientificAllSourcesFailed(t *testing.T) {
	a := newTestAssembler(&stubGenerator{}, &stubSource{err: errors.New("network down")})

	_, err := a.AssembleScientific(context.Background(), "", "", 5)
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Fatalf("error = %v, want ErrAllSourcesFailed", err)
	}
}

func TestAssembleScientificTrimsToLimit(t *testing.T) {
	var articles []core.Article
	for i := 0; i < 12; i++ {
		articles = append(articles, core.Article{
			ID:          fmt.Sprintf("a-%d", i),
			Title:       "A walk in the park",
			Description: "walking and wellbeing",
		})
	}
	a := newTestAssembler(&stubGenerator{}, &stubSource{articles: articles})

	items, err := a.AssembleScientific(context.Background(), "", "", 5)
	if err != nil {
		t.Fatalf("AssembleScientific() error = %v", err)
	}
	if len(items) != 5 {
		t.Errorf("got %d items, want 5", len(items))
	}
}
