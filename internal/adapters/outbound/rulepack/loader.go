// Package rulepack compiles YAML rule packs into domain rules, so
// detection logic can be shipped as data alongside the built-in set.
package rulepack

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/triagekit/triagekit/internal/domain"
)

type pack struct {
	Rules []packRule `yaml:"rules"`
}

type packRule struct {
	ID       string   `yaml:"id"`
	Category string   `yaml:"category"`
	Severity string   `yaml:"severity"` // CRITICAL|HIGH|MEDIUM|LOW
	Files    []string `yaml:"files"`    // path globs; empty = all files

	Match struct {
		Contains string `yaml:"contains"` // literal substring
		Regex    string `yaml:"regex"`    // alternative to contains
		Absent   string `yaml:"absent"`   // substring that must NOT appear
	} `yaml:"match"`

	// DowngradeWhen is a regex; when it matches the file content the
	// severity drops one tier (e.g. an existing try/catch block).
	DowngradeWhen string `yaml:"downgrade_when"`

	Message string `yaml:"message"`
	Fix     string `yaml:"fix"`
}

// Load reads and compiles a rule pack file.
func Load(path string) ([]domain.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}
	return Parse(data)
}

// Parse compiles rule pack bytes. Compile errors are construction-time
// failures: they abort before any scan starts.
func Parse(data []byte) ([]domain.Rule, error) {
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse rule pack yaml: %w", err)
	}

	rules := make([]domain.Rule, 0, len(p.Rules))
	for _, pr := range p.Rules {
		rule, err := compile(pr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", pr.ID, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// LoadInto compiles a pack file and registers every rule, returning the
// number registered.
func LoadInto(registry *domain.Registry, path string) (int, error) {
	rules, err := Load(path)
	if err != nil {
		return 0, err
	}
	for i, r := range rules {
		if err := registry.Register(r); err != nil {
			return i, err
		}
	}
	return len(rules), nil
}

func compile(pr packRule) (domain.Rule, error) {
	if pr.ID == "" || pr.Category == "" || pr.Message == "" {
		return domain.Rule{}, fmt.Errorf("missing required fields (id/category/message)")
	}
	if pr.Match.Contains == "" && pr.Match.Regex == "" {
		return domain.Rule{}, fmt.Errorf("match needs contains or regex")
	}

	var matchRe *regexp.Regexp
	if pr.Match.Regex != "" {
		re, err := regexp.Compile(pr.Match.Regex)
		if err != nil {
			return domain.Rule{}, fmt.Errorf("match regex: %w", err)
		}
		matchRe = re
	}

	var downgradeRe *regexp.Regexp
	if pr.DowngradeWhen != "" {
		re, err := regexp.Compile(pr.DowngradeWhen)
		if err != nil {
			return domain.Rule{}, fmt.Errorf("downgrade_when regex: %w", err)
		}
		downgradeRe = re
	}

	base := domain.Severity(strings.ToUpper(strings.TrimSpace(pr.Severity)))
	if pr.Severity != "" && !base.Valid() {
		return domain.Rule{}, fmt.Errorf("unknown severity %q", pr.Severity)
	}
	if pr.Severity == "" {
		base = domain.DefaultSeverity
	}

	contains := pr.Match.Contains
	absent := pr.Match.Absent

	return domain.Rule{
		ID:           pr.ID,
		Category:     domain.Category(pr.Category),
		FilePatterns: pr.Files,
		Match: func(_, content string) (domain.MatchContext, bool) {
			if absent != "" && strings.Contains(content, absent) {
				return domain.MatchContext{}, false
			}
			if matchRe != nil {
				loc := matchRe.FindStringIndex(content)
				if loc == nil {
					return domain.MatchContext{}, false
				}
				return evidenceAt(content, loc[0], loc[1]), true
			}
			idx := strings.Index(content, contains)
			if idx < 0 {
				return domain.MatchContext{}, false
			}
			return evidenceAt(content, idx, idx+len(contains)), true
		},
		Severity: func(_, content string, _ domain.MatchContext) domain.Severity {
			if downgradeRe != nil && downgradeRe.MatchString(content) {
				return base.Downgrade()
			}
			return base
		},
		MessageTemplate: pr.Message,
		FixTemplate:     pr.Fix,
	}, nil
}

// evidenceAt returns the line enclosing content[start:end] as evidence.
func evidenceAt(content string, start, end int) domain.MatchContext {
	line := strings.Count(content[:start], "\n") + 1

	ls := strings.LastIndexByte(content[:start], '\n') + 1
	le := strings.IndexByte(content[end:], '\n')
	if le < 0 {
		le = len(content)
	} else {
		le += end
	}

	return domain.MatchContext{
		Evidence: strings.TrimSpace(content[ls:le]),
		Line:     line,
	}
}
