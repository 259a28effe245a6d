package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "commission-residue",
		Category:     domain.CategoryFeatureRemoval,
		FilePatterns: []string{"*.ts", "*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			lower := strings.ToLower(content)
			idx := strings.Index(lower, "commission")
			if idx < 0 {
				return domain.MatchContext{}, false
			}
			return containsLine(content, content[idx:idx+len("commission")])
		},
		Severity:        domain.StaticSeverity(domain.SeverityLow),
		MessageTemplate: "{file} still carries logic for the removed commission feature",
		FixTemplate:     "Delete the leftover commission calculations and UI elements",
	})
}
