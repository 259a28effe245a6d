package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

func init() {
	register(domain.Rule{
		ID:           "missing-no-cache-headers",
		Category:     domain.CategoryHTTPCaching,
		FilePatterns: []string{"server/*.ts"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if !strings.Contains(content, "app.get(") {
				return domain.MatchContext{}, false
			}
			if strings.Contains(content, "Cache-Control") {
				return domain.MatchContext{}, false
			}
			return containsLine(content, "app.get(")
		},
		Severity:        domain.StaticSeverity(domain.SeverityMedium),
		MessageTemplate: "Endpoints in {file} set no Cache-Control headers; 304 responses can serve stale data",
		FixTemplate:     "Add no-cache headers to endpoints whose data changes between requests",
	})
}
