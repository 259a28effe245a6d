package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "unhandled-delete-constraint",
		Category:     domain.CategoryFunctionality,
		FilePatterns: []string{"server/*.ts"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if !strings.Contains(content, ".delete(") || strings.Contains(content, "catch") {
				return domain.MatchContext{}, false
			}
			return containsLine(content, ".delete(")
		},
		Severity:        domain.StaticSeverity(domain.SeverityHigh),
		MessageTemplate: "Delete in {file} ignores foreign-key constraint failures; the operation breaks once related records exist",
		FixTemplate:     "Handle constraint violations explicitly or cascade the delete",
	})
}
