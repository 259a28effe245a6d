package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/triagekit/triagekit/internal/adapters/outbound/config"
	"github.com/triagekit/triagekit/internal/adapters/outbound/history"
	"github.com/triagekit/triagekit/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var (
		jsonOutput bool
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show past scan runs for a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.Load(absPath)
			if err != nil {
				return err
			}

			histPath := cfg.History.Path
			if histPath == "" {
				return fmt.Errorf("history is disabled for this project (empty history.path)")
			}
			if !filepath.IsAbs(histPath) {
				histPath = filepath.Join(absPath, histPath)
			}

			hist, err := history.Open(histPath)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer hist.Close()

			entries, err := hist.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}
