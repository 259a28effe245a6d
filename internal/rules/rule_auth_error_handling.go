package rules

import (
	"regexp"
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

var tryCatchRe = regexp.MustCompile(`(?s)try\s*\{.*?\}\s*catch`)

func init() {
	register(domain.Rule{
		ID:           "auth-missing-try-catch",
		Category:     domain.CategorySecurity,
		FilePatterns: []string{"*auth*", "*middleware*"},
		Match: func(_, content string) (domain.MatchContext, bool) {
			if tryCatchRe.MatchString(content) {
				return domain.MatchContext{}, false
			}
			return domain.MatchContext{Evidence: "no try/catch block"}, true
		},
		// An error boundary further up still catches the crash, which
		// downgrades the exposure.
		Severity: func(_, content string, _ domain.MatchContext) domain.Severity {
			if strings.Contains(content, "ErrorBoundary") {
				return domain.SeverityMedium
			}
			return domain.SeverityHigh
		},
		MessageTemplate: "Authentication path in {file} has no error handling; failures are neither caught nor logged",
		FixTemplate:     "Wrap the authentication flow in try/catch and log failures with context",
	})
}
