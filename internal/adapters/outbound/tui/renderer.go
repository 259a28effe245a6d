// Package tui renders reports for the terminal. It is a pure consumer of
// the report data structure: everything shown here exists in the
// machine-readable report.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/triagekit/triagekit/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	indexStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	criticalStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(danger)
	mediumStyle   = lipgloss.NewStyle().Foreground(warning)
	lowStyle      = lipgloss.NewStyle().Foreground(info)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a full remediation report, grouped by priority
// index in the order the prioritizer produced.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("triagekit")
	subtitle := dimStyle.Render("Remediation Report")
	total := titleStyle.Render(fmt.Sprintf("%d findings", report.TotalFindings))
	meta := dimStyle.Render(report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	if report.CommitHash != "" {
		hash := report.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		meta += dimStyle.Render("  @" + hash)
	}

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + total + "\n" + meta))
	b.WriteString("\n\n")

	// ── Severity summary ──
	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Severity"))
	b.WriteString("  ")
	b.WriteString(countTag(criticalStyle, "critical", report.CountsBySeverity[domain.SeverityCritical]))
	b.WriteString(countTag(highStyle, "high", report.CountsBySeverity[domain.SeverityHigh]))
	b.WriteString(countTag(mediumStyle, "medium", report.CountsBySeverity[domain.SeverityMedium]))
	b.WriteString(countTag(lowStyle, "low", report.CountsBySeverity[domain.SeverityLow]))
	b.WriteString("\n\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	if len(report.Findings) == 0 {
		b.WriteString("  " + passStyle.Render("No findings. Nothing to remediate.") + "\n")
		return b.String()
	}

	for _, f := range report.Findings {
		renderFinding(&b, f)
	}

	return b.String()
}

func renderFinding(b *strings.Builder, f domain.PrioritizedFinding) {
	index := indexStyle.Render(fmt.Sprintf("#%d", f.PriorityIndex))
	tag := severityTag(f.Severity)
	title := titleStyle.Render(humanizeRuleID(f.RuleID))
	cat := dimStyle.Render(string(f.Category))

	fmt.Fprintf(b, "  %s %s %s  %s\n", index, tag, title, cat)
	if f.FilePath != "" {
		loc := f.FilePath
		if f.Line > 0 {
			loc = fmt.Sprintf("%s:%d", f.FilePath, f.Line)
		}
		fmt.Fprintf(b, "       %s\n", fileStyle.Render(loc))
	}
	fmt.Fprintf(b, "       %s\n", dimStyle.Render(f.Message))
	if f.FixSuggestion != "" {
		fmt.Fprintf(b, "       %s %s\n", faintStyle.Render("fix:"), dimStyle.Render(f.FixSuggestion))
	}
	for i, step := range f.ImplementationSteps {
		fmt.Fprintf(b, "         %s %s\n", faintStyle.Render(fmt.Sprintf("%d.", i+1)), dimStyle.Render(step))
	}
	b.WriteString("\n")
}

func severityTag(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return criticalStyle.Render("CRIT")
	case domain.SeverityHigh:
		return highStyle.Render("HIGH")
	case domain.SeverityMedium:
		return mediumStyle.Render("MED ")
	default:
		return lowStyle.Render("LOW ")
	}
}

func countTag(style lipgloss.Style, label string, n int) string {
	if n == 0 {
		return faintStyle.Render(fmt.Sprintf("0 %s", label)) + "  "
	}
	return style.Render(fmt.Sprintf("%d %s", n, label)) + "  "
}

// humanizeRuleID turns "cache-disabled-queries" or "deadColumnRef" into
// a readable title.
func humanizeRuleID(id string) string {
	var words []string
	for _, part := range strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' }) {
		words = append(words, camelcase.Split(part)...)
	}
	for i, w := range words {
		if w == strings.ToUpper(w) {
			continue // keep acronyms
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RenderRuleList formats the registered rule set for the rules command.
func RenderRuleList(rules []domain.Rule) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("Registered Rules (%d)", len(rules))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for _, r := range rules {
		patterns := "all files"
		if len(r.FilePatterns) > 0 {
			patterns = strings.Join(r.FilePatterns, ", ")
		}
		fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render(r.ID), dimStyle.Render(string(r.Category)))
		fmt.Fprintf(&b, "       %s\n\n", faintStyle.Render(patterns))
	}
	return b.String()
}

// RenderHistory formats prior runs, newest first.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No run history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Run History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		counts := fmt.Sprintf("%d findings", e.TotalFindings)
		if e.Criticals > 0 {
			counts += criticalStyle.Render(fmt.Sprintf("  %d critical", e.Criticals))
		}
		if e.Highs > 0 {
			counts += highStyle.Render(fmt.Sprintf("  %d high", e.Highs))
		}

		fmt.Fprintf(&b, "  %s  %s  %s\n",
			dimStyle.Render(e.StartedAt.Format("2006-01-02 15:04")),
			faintStyle.Render(hash),
			counts,
		)
	}

	return b.String()
}
