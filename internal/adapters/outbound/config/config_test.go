package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagekit/triagekit/internal/adapters/outbound/config"
	"github.com/triagekit/triagekit/internal/domain"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
	assert.Equal(t, "reports", cfg.Reporting.OutDir)
	assert.Equal(t, ".triagekit/history.db", cfg.History.Path)
}

func TestLoad_ReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	content := `
priority:
  - security
  - schema
rule_packs:
  - rules/extra.yaml
include:
  - "*.ts"
exclude_paths:
  - generated
workers: 8
max_files: 100
steps:
  security:
    - "Audit {file}"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".triagekit.yaml"), []byte(content), 0644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"security", "schema"}, cfg.Priority)
	assert.Equal(t, []string{"rules/extra.yaml"}, cfg.RulePacks)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 100, cfg.MaxFiles)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".triagekit.yaml"), []byte("priority: ["), 0644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("unknown priority category", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Priority = []string{"networking"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate priority category", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Priority = []string{"schema", "schema"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown steps category", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Steps = map[string][]string{"mystery": {"step"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative workers", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Workers = -1
		assert.Error(t, cfg.Validate())
	})
}

func TestPriorityTable_ConfiguredOrderWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Priority = []string{"performance", "schema"}

	table, err := cfg.PriorityTable()
	require.NoError(t, err)
	assert.Less(t, table.Rank(domain.CategoryPerformance), table.Rank(domain.CategorySchema))
}

func TestPriorityTable_EmptyMeansDefault(t *testing.T) {
	table, err := config.DefaultConfig().PriorityTable()
	require.NoError(t, err)
	assert.Less(t, table.Rank(domain.CategorySchema), table.Rank(domain.CategoryPerformance))
}

func TestStepTable_OverridesMergeOverDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Steps = map[string][]string{"security": {"Custom audit of {file}"}}

	table := cfg.StepTable()
	assert.Equal(t, []string{"Custom audit of {file}"}, table.Steps(domain.CategorySecurity))
	assert.NotEmpty(t, table.Steps(domain.CategorySchema), "untouched categories keep defaults")
}
