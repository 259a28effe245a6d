package rules

import "github.com/triagekit/triagekit/internal/domain"

func init() {
	register(domain.Rule{
		ID:           "lazy-component-suspension",
		Category:     domain.CategoryUIConsistency,
		FilePatterns: []string{"*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			return containsLine(content, "React.lazy(")
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "Lazy-loaded component in {file} suspends mid-render, making preview and full views diverge",
		FixTemplate:     "Import the component directly or add a stable Suspense fallback",
	})
}
