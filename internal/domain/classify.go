package domain

// ClassificationWarning records a normalization applied to a degraded
// finding. It is never surfaced as an error; a malformed rule degrades
// gracefully instead of crashing report generation.
type ClassificationWarning struct {
	RuleID   string
	FilePath string
	Field    string
	Value    string
}

// Classify validates a finding's category and severity against the fixed
// enumerations. An unknown or missing severity is normalized to
// DefaultSeverity. An unknown category passes through unchanged so the
// assembler can apply its fallback steps, but is reported as a warning.
func Classify(f Finding) (Finding, []ClassificationWarning) {
	var warnings []ClassificationWarning

	if !f.Severity.Valid() {
		warnings = append(warnings, ClassificationWarning{
			RuleID:   f.RuleID,
			FilePath: f.FilePath,
			Field:    "severity",
			Value:    string(f.Severity),
		})
		f.Severity = DefaultSeverity
	}

	if !f.Category.Valid() {
		warnings = append(warnings, ClassificationWarning{
			RuleID:   f.RuleID,
			FilePath: f.FilePath,
			Field:    "category",
			Value:    string(f.Category),
		})
	}

	return f, warnings
}

// ClassifyAll normalizes every finding, collecting warnings.
func ClassifyAll(findings []Finding) ([]Finding, []ClassificationWarning) {
	out := make([]Finding, 0, len(findings))
	var warnings []ClassificationWarning
	for _, f := range findings {
		normalized, w := Classify(f)
		out = append(out, normalized)
		warnings = append(warnings, w...)
	}
	return out, warnings
}
