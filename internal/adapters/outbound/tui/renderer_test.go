package tui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/triagekit/triagekit/internal/adapters/outbound/tui"
	"github.com/triagekit/triagekit/internal/domain"
)

func renderedReport() string {
	findings := []domain.PrioritizedFinding{
		{
			Finding: domain.Finding{
				RuleID:        "dead-column-reference",
				FilePath:      "server/api.ts",
				Category:      domain.CategorySchema,
				Severity:      domain.SeverityCritical,
				Message:       "references a missing column",
				FixSuggestion: "remove the reference",
				Line:          14,
			},
			PriorityIndex:       1,
			ImplementationSteps: []string{"Remove the reference", "Run the migration"},
		},
		{
			Finding: domain.Finding{
				RuleID:   "cache-disabled-queries",
				FilePath: "src/queries.ts",
				Category: domain.CategoryPerformance,
				Severity: domain.SeverityMedium,
				Message:  "cache fully disabled",
			},
			PriorityIndex: 2,
		},
	}
	report := domain.Assemble(findings, domain.DefaultStepTable(),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	report.CommitHash = "0123456789abcdef"
	return tui.RenderReport(report)
}

func TestRenderReport_ShowsFindingsInOrder(t *testing.T) {
	out := renderedReport()

	assert.Contains(t, out, "triagekit")
	assert.Contains(t, out, "2 findings")
	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "Dead Column Reference")
	assert.Contains(t, out, "Cache Disabled Queries")
	assert.Contains(t, out, "server/api.ts:14")
	assert.Contains(t, out, "references a missing column")
	assert.Contains(t, out, "@0123456")
}

func TestRenderReport_EmptyRun(t *testing.T) {
	report := domain.Assemble(nil, domain.DefaultStepTable(),
		time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	out := tui.RenderReport(report)
	assert.Contains(t, out, "No findings")
}

func TestRenderRuleList(t *testing.T) {
	out := tui.RenderRuleList([]domain.Rule{
		{ID: "one", Category: domain.CategorySchema, FilePatterns: []string{"*.ts"}},
		{ID: "two", Category: domain.CategorySecurity},
	})

	assert.Contains(t, out, "Registered Rules (2)")
	assert.Contains(t, out, "one")
	assert.Contains(t, out, "*.ts")
	assert.Contains(t, out, "all files")
}

func TestRenderHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Contains(t, tui.RenderHistory(nil), "No run history")
	})

	t.Run("entries", func(t *testing.T) {
		out := tui.RenderHistory([]domain.RunEntry{
			{
				ID:            "run-1",
				StartedAt:     time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
				CommitHash:    "0123456789abcdef",
				TotalFindings: 7,
				Criticals:     1,
				Highs:         2,
			},
		})
		assert.Contains(t, out, "Run History")
		assert.Contains(t, out, "2025-06-01 10:30")
		assert.Contains(t, out, "7 findings")
		assert.Contains(t, out, "1 critical")
		assert.Contains(t, out, "2 high")
	})
}
