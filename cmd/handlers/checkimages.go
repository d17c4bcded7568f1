package handlers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"decathlonminds/internal/fetch"
	"decathlonminds/internal/images"
)

// NewCheckImagesCmd creates the check-images command, which probes every
// curated image URL and reports the unreachable ones.
func NewCheckImagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-images",
		Short: "Probe the curated image pools for dead URLs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckImages(cmd.Context())
		},
	}
}

func runCheckImages(ctx context.Context) error {
	checker := fetch.NewChecker()

	urls := images.AllCuratedURLs()
	dead := 0
	for _, u := range urls {
		result := checker.CheckAccessibility(ctx, u)
		if result.IsAccessible {
			continue
		}
		dead++
		if result.Error != "" {
			fmt.Printf("DEAD %s (%s)\n", u, result.Error)
		} else {
			fmt.Printf("DEAD %s (status %d)\n", u, result.Status)
		}
	}

	fmt.Printf("checked %d urls, %d unreachable\n", len(urls), dead)
	if dead > 0 {
		return fmt.Errorf("%d image URLs are unreachable", dead)
	}
	return nil
}
