package handlers

import (
	"context"
	"fmt"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/config"
	"decathlonminds/internal/fallback"
	"decathlonminds/internal/feed"
	"decathlonminds/internal/feeds"
	"decathlonminds/internal/images"
	"decathlonminds/internal/llm"
)

// buildAssembler wires the feed assembler and its collaborators from the
// loaded configuration. The cache is seeded with stock content and swept in
// the background until ctx is cancelled.
func buildAssembler(ctx context.Context, cfg *config.Config) (*feed.Assembler, *cache.FeedCache, error) {
	gen, err := llm.NewClient(cfg.AI.Gemini.Model)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	feedCache := cache.New(cfg.Cache.TTL)
	feedCache.Seed(fallback.SeedEntries())
	feedCache.StartSweeper(ctx, cfg.Cache.SweepInterval)

	source := feeds.NewManager(cfg.Feeds.Timeout, "")

	assembler := feed.NewAssembler(gen, source, feedCache, images.NewSelector(), cfg.Feeds.URLs, cfg.Assembly)
	return assembler, feedCache, nil
}
