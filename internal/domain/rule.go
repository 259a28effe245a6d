package domain

import (
	"path"
	"strings"
)

// MatchContext carries the evidence a predicate extracted from a file.
type MatchContext struct {
	Evidence string
	Line     int
}

// Predicate decides whether a rule matches a file. It must be pure:
// identical input always yields identical output.
type Predicate func(filePath, content string) (MatchContext, bool)

// SeverityFunc computes a finding's severity from the surrounding
// evidence, allowing the same rule to report different tiers.
type SeverityFunc func(filePath, content string, ctx MatchContext) Severity

// Rule is a stateless, declarative detection unit. Rules are registered
// once and never mutated afterwards, so a Registry is safe for concurrent
// reads by any number of scanning workers.
type Rule struct {
	ID       string
	Category Category

	// FilePatterns restricts which paths the rule applies to. A pattern
	// without a slash matches the base name, otherwise the whole
	// slash-separated relative path. Empty means all files.
	FilePatterns []string

	Match    Predicate
	Severity SeverityFunc

	// MessageTemplate and FixTemplate support {file}, {evidence} and
	// {rule} placeholders.
	MessageTemplate string
	FixTemplate     string
}

// StaticSeverity returns a SeverityFunc that always yields s.
func StaticSeverity(s Severity) SeverityFunc {
	return func(string, string, MatchContext) Severity { return s }
}

// AppliesTo reports whether the rule should be evaluated against filePath.
func (r Rule) AppliesTo(filePath string) bool {
	if len(r.FilePatterns) == 0 {
		return true
	}
	for _, pattern := range r.FilePatterns {
		if PathMatch(pattern, filePath) {
			return true
		}
	}
	return false
}

// RenderMessage expands the message template for one match.
func (r Rule) RenderMessage(filePath string, ctx MatchContext) string {
	return renderTemplate(r.MessageTemplate, r.ID, filePath, ctx)
}

// RenderFix expands the fix template for one match.
func (r Rule) RenderFix(filePath string, ctx MatchContext) string {
	return renderTemplate(r.FixTemplate, r.ID, filePath, ctx)
}

func renderTemplate(tmpl, ruleID, filePath string, ctx MatchContext) string {
	replacer := strings.NewReplacer(
		"{file}", filePath,
		"{evidence}", ctx.Evidence,
		"{rule}", ruleID,
	)
	return replacer.Replace(tmpl)
}

// PathMatch matches a glob pattern against a slash-separated relative
// path. Patterns without a slash match the base name only. A malformed
// pattern matches nothing.
func PathMatch(pattern, filePath string) bool {
	filePath = strings.TrimPrefix(path.Clean(strings.ReplaceAll(filePath, "\\", "/")), "./")
	if !strings.Contains(pattern, "/") {
		ok, err := path.Match(pattern, path.Base(filePath))
		return err == nil && ok
	}
	ok, err := path.Match(pattern, filePath)
	return err == nil && ok
}
