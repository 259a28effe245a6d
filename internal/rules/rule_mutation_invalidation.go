package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "mutation-missing-invalidation",
		Category:     domain.CategoryCacheSync,
		FilePatterns: []string{"*.ts", "*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if strings.Contains(content, "invalidateQueries") {
				return domain.MatchContext{}, false
			}
			return containsLine(content, "useMutation")
		},
		Severity:        domain.StaticSeverity(domain.SeverityHigh),
		MessageTemplate: "Mutation in {file} never invalidates its query cache, so the UI keeps showing stale counts",
		FixTemplate:     "Invalidate the affected query keys in the mutation's onSuccess handler and refetch",
	})
}
