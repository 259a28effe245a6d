// Package rules ships the built-in detection rule set. Each rule lives
// in its own file and registers itself at init time; Builtin hands the
// full set to a domain.Registry.
package rules

import (
	"strings"

	"github.com/triagekit/triagekit/internal/domain"
)

var builtin []domain.Rule

func register(r domain.Rule) {
	builtin = append(builtin, r)
}

// Builtin returns the built-in rule set in registration order.
func Builtin() []domain.Rule {
	out := make([]domain.Rule, len(builtin))
	copy(out, builtin)
	return out
}

// containsLine locates needle in content and returns the enclosing line
// as evidence, with its 1-based line number.
func containsLine(content, needle string) (domain.MatchContext, bool) {
	idx := strings.Index(content, needle)
	if idx < 0 {
		return domain.MatchContext{}, false
	}
	line := strings.Count(content[:idx], "\n") + 1

	start := strings.LastIndexByte(content[:idx], '\n') + 1
	end := strings.IndexByte(content[idx:], '\n')
	if end < 0 {
		end = len(content)
	} else {
		end += idx
	}

	return domain.MatchContext{
		Evidence: strings.TrimSpace(content[start:end]),
		Line:     line,
	}, true
}
