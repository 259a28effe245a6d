package rules

import "github.com/triagekit/triagekit/internal/domain"

// Dead column references surface as runtime database errors, so this is
// the only built-in rule that reports CRITICAL.
func init() {
	register(domain.Rule{
		ID:           "dead-column-reference",
		Category:     domain.CategorySchema,
		FilePatterns: []string{"server/*.ts"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			return containsLine(content, "monthly_target")
		},
		Severity:        domain.StaticSeverity(domain.SeverityCritical),
		MessageTemplate: "{file} references a column that does not exist in the deployed schema ({evidence})",
		FixTemplate:     "Remove the dead column reference or add the column via a migration",
	})
}
