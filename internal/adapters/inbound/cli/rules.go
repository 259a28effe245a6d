package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/triagekit/triagekit/internal/adapters/outbound/config"
	"github.com/triagekit/triagekit/internal/adapters/outbound/tui"
	"github.com/triagekit/triagekit/internal/domain"
)

func newRulesCmd() *cobra.Command {
	var (
		jsonOutput bool
		extraPacks []string
		noBuiltin  bool
	)

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "List the rules a scan would run",
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

			registry, err := buildRegistry(cfg, extraPacks, noBuiltin, absPath)
			if err != nil {
				return err
			}

			if jsonOutput {
				type ruleInfo struct {
					ID       string          `json:"id"`
					Category domain.Category `json:"category"`
					Files    []string        `json:"files,omitempty"`
				}
				infos := make([]ruleInfo, 0, registry.Len())
				for _, r := range registry.Rules() {
					infos = append(infos, ruleInfo{ID: r.ID, Category: r.Category, Files: r.FilePatterns})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRuleList(registry.Rules()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output rules as JSON")
	cmd.Flags().StringSliceVar(&extraPacks, "rules", nil, "Additional YAML rule packs to load")
	cmd.Flags().BoolVar(&noBuiltin, "no-builtin", false, "Skip the built-in rule set")

	return cmd
}
