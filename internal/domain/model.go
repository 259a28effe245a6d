package domain

import "time"

// Severity is the ordinal urgency tier of a finding.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// DefaultSeverity is assigned when a rule reports no usable severity.
const DefaultSeverity = SeverityMedium

// Severities enumerates all valid tiers, most urgent first.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

var severityRanks = map[Severity]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Valid reports whether s is a member of the fixed severity enumeration.
func (s Severity) Valid() bool {
	_, ok := severityRanks[s]
	return ok
}

// Rank returns the sort position of s; lower sorts first. Unknown
// severities rank after LOW so degraded findings never outrank valid ones.
func (s Severity) Rank() int {
	if r, ok := severityRanks[s]; ok {
		return r
	}
	return len(severityRanks)
}

// Downgrade returns the next less urgent tier. LOW stays LOW.
func (s Severity) Downgrade() Severity {
	switch s {
	case SeverityCritical:
		return SeverityHigh
	case SeverityHigh:
		return SeverityMedium
	case SeverityMedium:
		return SeverityLow
	default:
		return SeverityLow
	}
}

// Category groups rules by the problem domain they detect.
type Category string

const (
	CategoryCacheSync       Category = "cache-sync"
	CategoryHTTPCaching     Category = "http-caching"
	CategoryDataConsistency Category = "data-consistency"
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategorySchema          Category = "schema"
	CategoryUIConsistency   Category = "ui-consistency"
	CategoryFeatureRemoval  Category = "feature-removal"
	CategoryFunctionality   Category = "functionality"

	// CategoryEngine marks findings the engine produces about itself,
	// such as a rule that failed to evaluate.
	CategoryEngine Category = "engine"
)

// Categories enumerates all valid categories.
var Categories = []Category{
	CategoryCacheSync, CategoryHTTPCaching, CategoryDataConsistency,
	CategorySecurity, CategoryPerformance, CategorySchema,
	CategoryUIConsistency, CategoryFeatureRemoval, CategoryFunctionality,
	CategoryEngine,
}

// Valid reports whether c is a member of the fixed category enumeration.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Finding is one match of one rule against one file. Only the scanning
// engine constructs Findings; they are immutable afterwards.
type Finding struct {
	RuleID        string   `json:"rule_id"`
	FilePath      string   `json:"file_path"`
	Category      Category `json:"category"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	FixSuggestion string   `json:"fix_suggestion,omitempty"`
	Evidence      string   `json:"evidence,omitempty"`
	Line          int      `json:"line,omitempty"`
}

// PrioritizedFinding wraps a Finding with its dense rank in the run's
// total order and the remediation steps derived for it.
type PrioritizedFinding struct {
	Finding
	PriorityIndex       int      `json:"priority_index"`
	ImplementationSteps []string `json:"implementation_steps,omitempty"`
}

// Report is the immutable aggregate of one scan run.
type Report struct {
	GeneratedAt      time.Time            `json:"generated_at"`
	RootPath         string               `json:"root_path,omitempty"`
	CommitHash       string               `json:"commit_hash,omitempty"`
	TotalFindings    int                  `json:"total_findings"`
	Findings         []PrioritizedFinding `json:"findings"`
	CountsBySeverity map[Severity]int     `json:"counts_by_severity"`
	CountsByCategory map[Category]int     `json:"counts_by_category"`
}

// RunEntry summarizes one completed scan for the run history.
type RunEntry struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	RootPath      string    `json:"root_path"`
	CommitHash    string    `json:"commit_hash,omitempty"`
	TotalFindings int       `json:"total_findings"`
	Criticals     int       `json:"criticals"`
	Highs         int       `json:"highs"`

	// Report is the full report for the run. Populated on save; history
	// listings may leave it nil.
	Report *Report `json:"-"`
}
