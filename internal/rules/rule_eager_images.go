package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "eager-image-loading",
		Category:     domain.CategoryPerformance,
		FilePatterns: []string{"*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			return containsLine(content, `loading="eager"`)
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "All images in {file} load eagerly, slowing the initial page",
		FixTemplate:     "Lazy-load below-the-fold images with an intersection observer",
	})

	register(domain.Rule{
		ID:           "missing-image-loading-strategy",
		Category:     domain.CategoryPerformance,
		FilePatterns: []string{"*.tsx"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if !strings.Contains(content, "<img") || strings.Contains(content, "loading=") {
				return domain.MatchContext{}, false
			}
			return containsLine(content, "<img")
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "Images in {file} declare no loading strategy",
		FixTemplate:     `Add loading="lazy" to non-critical images`,
	})
}
