package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "decathlonminds",
		Short: "DecathlonMinds serves mood-aware wellness content feeds.",
		Long: `DecathlonMinds assembles feeds of scientific posts, quotes, route
suggestions and events, themed to the reader's mood and its reason.

Content is generated with Gemini, enriched from public science RSS feeds,
scored for relevance and illustrated from a curated image rotation. Stock
fallbacks keep the feed full when generation is slow or unavailable.`,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewFeedCmd())
	rootCmd.AddCommand(NewCheckImagesCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
