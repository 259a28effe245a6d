// Package scan implements the scanning engine: it applies a rule
// registry to a file source and produces findings. Files are independent,
// so scanning is file-parallel; the only serialization point is the final
// collection of findings.
package scan

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/triagekit/triagekit/internal/domain"
)

const defaultWorkers = 4

// Options tunes a scan run.
type Options struct {
	// Workers is the number of concurrent file workers. Zero means
	// defaultWorkers.
	Workers int
	// MaxFiles stops consuming the file source after this many files.
	// Zero means no limit.
	MaxFiles int
}

// Engine evaluates a read-only rule registry against file contents. The
// engine is the sole component that constructs Findings.
type Engine struct {
	registry *domain.Registry
	log      *zap.SugaredLogger
	opts     Options
}

// NewEngine creates an engine over a constructed registry.
func NewEngine(registry *domain.Registry, log *zap.SugaredLogger, opts Options) *Engine {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	return &Engine{registry: registry, log: log, opts: opts}
}

// Scan evaluates every applicable rule against every file the source
// yields. Each (file, rule) evaluation contributes at most one finding.
// A panicking rule is recorded as an engine-category LOW finding for that
// (rule, file) pair and never aborts the run; only a failing source
// aborts, before any partial results are returned.
func (e *Engine) Scan(src domain.FileSource, root string, filters domain.Filters) ([]domain.Finding, error) {
	jobs := make(chan domain.SourceFile)
	results := make(chan []domain.Finding)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				if fs := e.scanFile(f); len(fs) > 0 {
					results <- fs
				}
			}
		}()
	}

	var findings []domain.Finding
	done := make(chan struct{})
	go func() {
		defer close(done)
		for fs := range results {
			findings = append(findings, fs...)
		}
	}()

	var sent int
	err := src.List(root, filters, func(f domain.SourceFile) bool {
		if e.opts.MaxFiles > 0 && sent >= e.opts.MaxFiles {
			return false
		}
		jobs <- f
		sent++
		return true
	})

	close(jobs)
	wg.Wait()
	close(results)
	<-done

	if err != nil {
		return nil, err
	}
	e.log.Debugw("scan complete", "root", root, "files", sent, "findings", len(findings))
	return findings, nil
}

// scanFile evaluates all applicable rules against one file.
func (e *Engine) scanFile(f domain.SourceFile) []domain.Finding {
	var out []domain.Finding
	for _, rule := range e.registry.RulesFor(f.Path) {
		finding, matched, err := evalRule(rule, f)
		if err != nil {
			e.log.Warnw("rule evaluation failed", "rule", rule.ID, "file", f.Path, "error", err)
			out = append(out, engineFinding(rule, f, err))
			continue
		}
		if matched {
			out = append(out, finding)
		}
	}
	return out
}

// evalRule runs one (rule, file) evaluation, converting panics in the
// predicate or severity function into errors.
func evalRule(rule domain.Rule, f domain.SourceFile) (finding domain.Finding, matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			matched = false
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	ctx, ok := rule.Match(f.Path, f.Content)
	if !ok {
		return domain.Finding{}, false, nil
	}

	severity := domain.DefaultSeverity
	if rule.Severity != nil {
		severity = rule.Severity(f.Path, f.Content, ctx)
	}

	return domain.Finding{
		RuleID:        rule.ID,
		FilePath:      f.Path,
		Category:      rule.Category,
		Severity:      severity,
		Message:       rule.RenderMessage(f.Path, ctx),
		FixSuggestion: rule.RenderFix(f.Path, ctx),
		Evidence:      ctx.Evidence,
		Line:          ctx.Line,
	}, true, nil
}

func engineFinding(rule domain.Rule, f domain.SourceFile, err error) domain.Finding {
	return domain.Finding{
		RuleID:        rule.ID,
		FilePath:      f.Path,
		Category:      domain.CategoryEngine,
		Severity:      domain.SeverityLow,
		Message:       fmt.Sprintf("rule %s could not be evaluated: %v", rule.ID, err),
		FixSuggestion: "Fix or disable the failing rule and re-run the scan",
	}
}
