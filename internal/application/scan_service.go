package application

import (
	"time"

	"go.uber.org/zap"

	"github.com/triagekit/triagekit/internal/domain"
	"github.com/triagekit/triagekit/internal/domain/scan"
)

// ScanService orchestrates the report pipeline:
// file source -> scanning engine -> classifier -> prioritizer -> assembler.
type ScanService struct {
	source domain.FileSource
	git    domain.GitInfo
	log    *zap.SugaredLogger
}

func NewScanService(source domain.FileSource, git domain.GitInfo, log *zap.SugaredLogger) *ScanService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ScanService{source: source, git: git, log: log}
}

// ScanRequest carries everything one run needs. Each run produces a
// fresh Report; no state is shared between runs.
type ScanRequest struct {
	Root     string
	Registry *domain.Registry
	Filters  domain.Filters
	Priority domain.PriorityTable
	Steps    domain.StepTable
	Options  scan.Options

	// Timestamp overrides the report's generated_at; zero means now.
	Timestamp time.Time
}

// Run executes one full scan. A completed run always yields a Report;
// only input and configuration errors suppress it.
func (s *ScanService) Run(req ScanRequest) (*domain.Report, error) {
	engine := scan.NewEngine(req.Registry, s.log, req.Options)

	findings, err := engine.Scan(s.source, req.Root, req.Filters)
	if err != nil {
		return nil, err
	}

	normalized, warnings := domain.ClassifyAll(findings)
	for _, w := range warnings {
		s.log.Warnw("normalized degraded finding",
			"rule", w.RuleID, "file", w.FilePath, "field", w.Field, "value", w.Value)
	}

	prioritized := domain.Prioritize(normalized, req.Priority)

	generatedAt := req.Timestamp
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	report := domain.Assemble(prioritized, req.Steps, generatedAt)
	report.RootPath = req.Root

	// Commit stamping is best-effort; a missing repo never fails a run.
	if s.git != nil && s.git.IsGitRepo(req.Root) {
		if hash, err := s.git.CommitHash(req.Root); err == nil {
			report.CommitHash = hash
		}
	}

	s.log.Infow("report assembled",
		"root", req.Root, "findings", report.TotalFindings)
	return report, nil
}
