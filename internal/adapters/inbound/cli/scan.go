package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/triagekit/triagekit/internal/adapters/outbound/config"
	"github.com/triagekit/triagekit/internal/adapters/outbound/gitinfo"
	"github.com/triagekit/triagekit/internal/adapters/outbound/history"
	"github.com/triagekit/triagekit/internal/adapters/outbound/rulepack"
	"github.com/triagekit/triagekit/internal/adapters/outbound/source"
	"github.com/triagekit/triagekit/internal/adapters/outbound/store"
	"github.com/triagekit/triagekit/internal/adapters/outbound/tui"
	"github.com/triagekit/triagekit/internal/application"
	"github.com/triagekit/triagekit/internal/domain"
	"github.com/triagekit/triagekit/internal/domain/scan"
	"github.com/triagekit/triagekit/internal/logging"
	"github.com/triagekit/triagekit/internal/rules"
)

func newScanCmd() *cobra.Command {
	var (
		jsonOutput bool
		outPath    string
		save       bool
		extraPacks []string
		noBuiltin  bool
		debug      bool
		workers    int
		maxFiles   int
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a project and produce a prioritized remediation report",
		Long:  "Run every registered rule against the project's files, classify and prioritize the findings, and render a remediation report.",
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

			log, err := logging.New(debug)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			cfg, err := config.Load(absPath)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if maxFiles > 0 {
				cfg.MaxFiles = maxFiles
			}

			registry, err := buildRegistry(cfg, extraPacks, noBuiltin, absPath)
			if err != nil {
				return err
			}

			priority, err := cfg.PriorityTable()
			if err != nil {
				return err
			}

			svc := application.NewScanService(source.New(), gitinfo.New(), log)
			report, err := svc.Run(application.ScanRequest{
				Root:     absPath,
				Registry: registry,
				Filters:  cfg.Filters(),
				Priority: priority,
				Steps:    cfg.StepTable(),
				Options:  scan.Options{Workers: cfg.Workers, MaxFiles: cfg.MaxFiles},
			})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			runID := uuid.NewString()
			saveHistory(cfg, absPath, runID, report, log)

			if save && outPath == "" {
				outPath = filepath.Join(absPath, cfg.Reporting.OutDir, "report-"+runID+".json")
			}
			if outPath != "" {
				if err := store.New().Write(outPath, report); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "report written to", outPath)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().StringVar(&outPath, "out", "", "Also write the report to a JSON file")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report into the project's reports directory")
	cmd.Flags().StringSliceVar(&extraPacks, "rules", nil, "Additional YAML rule packs to load")
	cmd.Flags().BoolVar(&noBuiltin, "no-builtin", false, "Skip the built-in rule set")
	cmd.Flags().BoolVar(&debug, "debug", false, "Verbose logging")
	cmd.Flags().IntVar(&workers, "workers", 0, "Scanning worker count (0 = default)")
	cmd.Flags().IntVar(&maxFiles, "max-files", 0, "Stop after scanning this many files (0 = unlimited)")

	return cmd
}

// buildRegistry assembles the rule set for one run: built-in rules plus
// any packs from configuration and flags. Duplicate IDs abort here,
// before any file is read.
func buildRegistry(cfg config.Config, extraPacks []string, noBuiltin bool, root string) (*domain.Registry, error) {
	var base []domain.Rule
	if !noBuiltin {
		base = rules.Builtin()
	}

	registry, err := domain.NewRegistry(base...)
	if err != nil {
		return nil, err
	}

	packs := make([]string, 0, len(cfg.RulePacks)+len(extraPacks))
	for _, p := range cfg.RulePacks {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		packs = append(packs, p)
	}
	packs = append(packs, extraPacks...)

	for _, p := range packs {
		if _, err := rulepack.LoadInto(registry, p); err != nil {
			return nil, fmt.Errorf("loading rule pack %s: %w", p, err)
		}
	}

	if registry.Len() == 0 {
		return nil, fmt.Errorf("no rules registered; nothing to scan for")
	}
	return registry, nil
}

// saveHistory records the run in the local SQLite history. Best-effort:
// a failure is logged, never fatal.
func saveHistory(cfg config.Config, root, runID string, report *domain.Report, log *zap.SugaredLogger) {
	histPath := cfg.History.Path
	if histPath == "" {
		return
	}
	if !filepath.IsAbs(histPath) {
		histPath = filepath.Join(root, histPath)
	}

	hist, err := history.Open(histPath)
	if err != nil {
		log.Warnw("opening history store", "path", histPath, "error", err)
		return
	}
	defer hist.Close()

	entry := domain.RunEntry{
		ID:            runID,
		StartedAt:     report.GeneratedAt,
		RootPath:      report.RootPath,
		CommitHash:    report.CommitHash,
		TotalFindings: report.TotalFindings,
		Criticals:     report.CountsBySeverity[domain.SeverityCritical],
		Highs:         report.CountsBySeverity[domain.SeverityHigh],
		Report:        report,
	}
	if err := hist.SaveRun(entry); err != nil {
		log.Warnw("saving run history", "error", err)
	}
}
