// Package config loads engine configuration from .triagekit.yaml. Rules
// and the category-priority table are data, not engine logic, so the same
// binary can run different rule sets for different domains.
package config

import (
	"fmt"

	"github.com/triagekit/triagekit/internal/domain"
)

// Config is the project-level configuration.
type Config struct {
	// Priority lists categories most urgent first. Empty means the
	// shipped default ordering.
	Priority []string `yaml:"priority"`

	// RulePacks are paths to YAML rule packs loaded in addition to the
	// built-in rules.
	RulePacks []string `yaml:"rule_packs"`

	// Steps overrides per-category implementation step templates.
	Steps map[string][]string `yaml:"steps"`

	Include      []string `yaml:"include"`
	ExcludePaths []string `yaml:"exclude_paths"`

	Workers  int `yaml:"workers"`
	MaxFiles int `yaml:"max_files"`

	Reporting struct {
		OutDir string `yaml:"out_dir"`
	} `yaml:"reporting"`

	History struct {
		Path string `yaml:"path"` // SQLite file, relative to the project root
	} `yaml:"history"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	var c Config
	c.Reporting.OutDir = "reports"
	c.History.Path = ".triagekit/history.db"
	return c
}

// Validate catches typos before a scan starts; configuration errors are
// the only errors that suppress report generation entirely.
func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Priority))
	for _, p := range c.Priority {
		if !domain.Category(p).Valid() {
			return fmt.Errorf("unknown category %q in priority", p)
		}
		if seen[p] {
			return fmt.Errorf("category %q listed twice in priority", p)
		}
		seen[p] = true
	}
	for cat := range c.Steps {
		if !domain.Category(cat).Valid() {
			return fmt.Errorf("unknown category %q in steps", cat)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}
	if c.MaxFiles < 0 {
		return fmt.Errorf("max_files must be >= 0 (got %d)", c.MaxFiles)
	}
	return nil
}

// PriorityTable builds the category ranking from the configured order,
// falling back to the shipped default.
func (c Config) PriorityTable() (domain.PriorityTable, error) {
	if len(c.Priority) == 0 {
		return domain.DefaultPriorityTable(), nil
	}
	order := make([]domain.Category, len(c.Priority))
	for i, p := range c.Priority {
		order[i] = domain.Category(p)
	}
	return domain.NewPriorityTable(order)
}

// StepTable merges configured step overrides over the shipped defaults.
func (c Config) StepTable() domain.StepTable {
	table := domain.DefaultStepTable()
	for cat, steps := range c.Steps {
		if len(steps) > 0 {
			table[domain.Category(cat)] = steps
		}
	}
	return table
}

// Filters returns the file filters for a scan.
func (c Config) Filters() domain.Filters {
	return domain.Filters{Include: c.Include, Exclude: c.ExcludePaths}
}
