package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"decathlonminds/internal/config"
	"decathlonminds/internal/core"
	"decathlonminds/internal/feed"
)

// NewFeedCmd creates the feed command for one-shot assembly to stdout.
func NewFeedCmd() *cobra.Command {
	var (
		moodLabel   string
		reasonLabel string
		count       int
		articles    bool
	)

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Assemble a feed once and print it as JSON",
		Long: `Assemble one feed and print it to stdout, without starting the server.

Examples:
  # Eight items for a stressed reader
  decathlonminds feed --mood "STRESSÉ(E)" --reason TRAVAIL

  # The bulk science feed instead of a mixed feed
  decathlonminds feed --articles --mood HAPPY`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeed(cmd.Context(), moodLabel, reasonLabel, count, articles)
		},
	}

	cmd.Flags().StringVar(&moodLabel, "mood", "", "reader mood label (accepts French labels)")
	cmd.Flags().StringVar(&reasonLabel, "reason", "", "reason behind the mood")
	cmd.Flags().IntVar(&count, "count", 0, "number of items (default from config: 8)")
	cmd.Flags().BoolVar(&articles, "articles", false, "print the bulk science feed from RSS sources")

	return cmd
}

func runFeed(ctx context.Context, moodLabel, reasonLabel string, count int, articles bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	assemblyCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	assembler, _, err := buildAssembler(assemblyCtx, cfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if articles {
		items, err := assembler.AssembleScientific(ctx, moodLabel, reasonLabel, count)
		if err != nil {
			return err
		}
		return enc.Encode(map[string]any{"items": core.ItemList(items), "count": len(items)})
	}

	resp, err := assembler.Assemble(ctx, feed.Request{
		Mood:   moodLabel,
		Reason: reasonLabel,
		Count:  count,
	})
	if err != nil {
		return err
	}
	return enc.Encode(resp)
}
