package application_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagekit/triagekit/internal/adapters/outbound/source"
	"github.com/triagekit/triagekit/internal/application"
	"github.com/triagekit/triagekit/internal/domain"
	"github.com/triagekit/triagekit/internal/domain/scan"
	"github.com/triagekit/triagekit/internal/rules"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"src/queries.ts": "useQuery({ staleTime: 0, gcTime: 0 })\n",
		"src/hooks.ts":   "const m = useMutation({ mutationFn: save })\n",
		"server/api.ts":  "app.get(\"/api/goals\", handler)\nselect monthly_target from goals\n",
		"src/clean.ts":   "export const ok = true\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func newRequest(t *testing.T, root string) application.ScanRequest {
	t.Helper()
	registry, err := domain.NewRegistry(rules.Builtin()...)
	require.NoError(t, err)
	return application.ScanRequest{
		Root:      root,
		Registry:  registry,
		Priority:  domain.DefaultPriorityTable(),
		Steps:     domain.DefaultStepTable(),
		Options:   scan.Options{Workers: 4},
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestScanService_Run_ProducesPrioritizedReport(t *testing.T) {
	root := writeProject(t)
	svc := application.NewScanService(source.New(), nil, nil)

	report, err := svc.Run(newRequest(t, root))
	require.NoError(t, err)

	require.NotZero(t, report.TotalFindings)
	assert.Equal(t, root, report.RootPath)
	assert.Empty(t, report.CommitHash, "not a git repository")

	assert.Equal(t, "dead-column-reference", report.Findings[0].RuleID,
		"the schema finding leads the report")

	for i, f := range report.Findings {
		assert.Equal(t, i+1, f.PriorityIndex, "indices are dense and 1-based")
		assert.NotEmpty(t, f.ImplementationSteps)
	}

	assert.Positive(t, report.CountsBySeverity[domain.SeverityCritical])
	assert.Positive(t, report.CountsByCategory[domain.CategoryCacheSync])
}

func TestScanService_Run_IsByteDeterministic(t *testing.T) {
	root := writeProject(t)
	svc := application.NewScanService(source.New(), nil, nil)

	first, err := svc.Run(newRequest(t, root))
	require.NoError(t, err)
	second, err := svc.Run(newRequest(t, root))
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b, "repeated runs over unchanged input serialize identically")
}

func TestScanService_Run_EmptyProjectYieldsEmptyReport(t *testing.T) {
	svc := application.NewScanService(source.New(), nil, nil)

	report, err := svc.Run(newRequest(t, t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalFindings)
	assert.Empty(t, report.Findings)
}

func TestScanService_Run_MissingRootFails(t *testing.T) {
	svc := application.NewScanService(source.New(), nil, nil)

	req := newRequest(t, filepath.Join(t.TempDir(), "missing"))
	_, err := svc.Run(req)
	require.Error(t, err)
	assert.True(t, domain.IsInputError(err))
}

func TestScanService_Run_DefaultsTimestampWhenZero(t *testing.T) {
	root := writeProject(t)
	svc := application.NewScanService(source.New(), nil, nil)

	req := newRequest(t, root)
	req.Timestamp = time.Time{}

	before := time.Now().UTC()
	report, err := svc.Run(req)
	require.NoError(t, err)
	assert.False(t, report.GeneratedAt.Before(before))
}
