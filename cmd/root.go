package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/conference-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "conference-cli",
	Short: "Conference document extraction pipeline",
	Long:  "Parses conference PDFs (attendee rosters, speaker agendas), extracts company records with rule-based heuristics, and reconciles them into canonical company profiles.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
