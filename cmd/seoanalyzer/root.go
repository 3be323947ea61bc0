package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seoanalyzer/internal/config"
	"seoanalyzer/internal/log"
)

var flagEnvFile string

var rootCmd = &cobra.Command{
	Use:   "seoanalyzer",
	Short: "Analyze on-page SEO signals of a web page against a focus keyphrase",
	Long: `seoanalyzer fetches a single page, runs a fixed set of on-page SEO checks
for a focus keyphrase and reports a score with recommendations.

Usage:
  seoanalyzer serve
  seoanalyzer analyze <url> --keyphrase "blue widgets"`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadEnv(flagEnvFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log.InitLogger(cfg.IsDev)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Optional env file read before the process environment")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
