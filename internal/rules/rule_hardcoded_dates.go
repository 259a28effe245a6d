package rules

import "github.com/triagekit/triagekit/internal/domain"

func init() {
	register(domain.Rule{
		ID:           "hardcoded-month",
		Category:     domain.CategoryDataConsistency,
		FilePatterns: []string{"*.ts", "*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if ctx, ok := containsLine(content, "month=10"); ok {
				return ctx, true
			}
			return containsLine(content, "October")
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "{file} pins a specific month ({evidence}); displayed data drifts from the current period",
		FixTemplate:     "Derive the month from the current date instead of hardcoding it",
	})
}
