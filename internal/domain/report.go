package domain

import (
	"strings"
	"time"
)

// StepTable maps categories to ordered remediation step templates. Step
// strings support the {file} placeholder.
type StepTable map[Category][]string

// FallbackSteps is used for categories the table does not cover.
var FallbackSteps = []string{"Manual analysis required"}

// DefaultStepTable returns the shipped step templates per category.
func DefaultStepTable() StepTable {
	return StepTable{
		CategorySchema: {
			"Remove references to columns missing from the live schema in {file}",
			"Update queries to match the deployed schema",
			"Exercise the affected endpoints against a migrated database",
		},
		CategorySecurity: {
			"Wrap the failing path in {file} with explicit error handling",
			"Log and surface authentication failures instead of swallowing them",
			"Add regression coverage for the failure path",
		},
		CategoryFunctionality: {
			"Reproduce the failing operation touching {file}",
			"Add constraint-aware error handling or cascading behavior",
			"Verify the operation end to end with existing related records",
		},
		CategoryCacheSync: {
			"Invalidate the relevant query cache after each mutation in {file}",
			"Refetch affected queries immediately after invalidation",
			"Verify the UI reflects database state without a manual reload",
		},
		CategoryHTTPCaching: {
			"Add no-cache headers to the endpoint serving {file}'s data",
			"Confirm stale 304 responses no longer mask fresh data",
		},
		CategoryDataConsistency: {
			"Replace hardcoded temporal values in {file} with derived ones",
			"Update any display text tied to the hardcoded values",
			"Spot-check rendered data against the source of truth",
		},
		CategoryPerformance: {
			"Profile the hot path identified in {file}",
			"Apply the suggested fix and re-measure",
		},
		CategoryUIConsistency: {
			"Standardize the loading strategy used by {file}",
			"Verify preview and full views render identically",
		},
		CategoryFeatureRemoval: {
			"Delete the removed feature's logic from {file}",
			"Strip its UI elements and derived analytics",
		},
		CategoryEngine: {
			"Inspect the failing rule named in this finding",
			"Fix or disable the rule and re-run the scan",
		},
	}
}

// Steps returns the template sequence for a category, falling back to
// FallbackSteps for unknown categories.
func (t StepTable) Steps(c Category) []string {
	if steps, ok := t[c]; ok && len(steps) > 0 {
		return steps
	}
	return FallbackSteps
}

// Assemble builds the final report from an already prioritized finding
// sequence. The assembler derives implementation steps and tallies
// counts; it never re-sorts, so the report order is exactly the
// prioritizer's order.
func Assemble(findings []PrioritizedFinding, steps StepTable, generatedAt time.Time) *Report {
	report := &Report{
		GeneratedAt:      generatedAt,
		TotalFindings:    len(findings),
		Findings:         make([]PrioritizedFinding, len(findings)),
		CountsBySeverity: make(map[Severity]int),
		CountsByCategory: make(map[Category]int),
	}

	for i, pf := range findings {
		templates := steps.Steps(pf.Category)
		rendered := make([]string, len(templates))
		for j, s := range templates {
			rendered[j] = strings.ReplaceAll(s, "{file}", pf.FilePath)
		}
		pf.ImplementationSteps = rendered

		report.Findings[i] = pf
		report.CountsBySeverity[pf.Severity]++
		report.CountsByCategory[pf.Category]++
	}

	return report
}
