package rulepack_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagekit/triagekit/internal/adapters/outbound/rulepack"
	"github.com/triagekit/triagekit/internal/domain"
)

const samplePack = `
rules:
  - id: no-console-log
    category: performance
    severity: LOW
    files: ["*.ts", "*.tsx"]
    match:
      contains: "console.log("
    message: "Debug logging left in {file}"
    fix: "Remove or guard the console.log call"

  - id: fetch-without-retry
    category: functionality
    severity: HIGH
    match:
      regex: 'fetch\('
      absent: "retry"
    downgrade_when: 'catch'
    message: "Unretried fetch in {file}"
`

func TestParse_CompilesRules(t *testing.T) {
	rules, err := rulepack.Parse([]byte(samplePack))
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, "no-console-log", rules[0].ID)
	assert.Equal(t, domain.CategoryPerformance, rules[0].Category)
	assert.Equal(t, []string{"*.ts", "*.tsx"}, rules[0].FilePatterns)
}

func TestParse_ContainsMatchWithEvidence(t *testing.T) {
	rules, err := rulepack.Parse([]byte(samplePack))
	require.NoError(t, err)

	r := rules[0]
	content := "function save() {\n  console.log(payload)\n}\n"
	ctx, ok := r.Match("src/save.ts", content)
	require.True(t, ok)
	assert.Equal(t, "console.log(payload)", ctx.Evidence)
	assert.Equal(t, 2, ctx.Line)
	assert.Equal(t, domain.SeverityLow, r.Severity("src/save.ts", content, ctx))

	_, ok = r.Match("src/clean.ts", "function save() {}\n")
	assert.False(t, ok)
}

func TestParse_RegexAbsentAndDowngrade(t *testing.T) {
	rules, err := rulepack.Parse([]byte(samplePack))
	require.NoError(t, err)

	r := rules[1]

	t.Run("matches unretried fetch", func(t *testing.T) {
		content := "const res = await fetch(url)\n"
		ctx, ok := r.Match("api.ts", content)
		require.True(t, ok)
		assert.Equal(t, domain.SeverityHigh, r.Severity("api.ts", content, ctx))
	})

	t.Run("absent clause suppresses the match", func(t *testing.T) {
		_, ok := r.Match("api.ts", "fetchWithRetry(url, { retry: 3 })\n")
		assert.False(t, ok)
	})

	t.Run("downgrade_when lowers severity", func(t *testing.T) {
		content := "try { await fetch(url) } catch (e) { report(e) }\n"
		ctx, ok := r.Match("api.ts", content)
		require.True(t, ok)
		assert.Equal(t, domain.SeverityMedium, r.Severity("api.ts", content, ctx))
	})
}

func TestParse_DefaultsMissingSeverity(t *testing.T) {
	rules, err := rulepack.Parse([]byte(`
rules:
  - id: bare
    category: performance
    match:
      contains: "slow()"
    message: "m"
`))
	require.NoError(t, err)
	ctx, ok := rules[0].Match("f.ts", "slow()\n")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultSeverity, rules[0].Severity("f.ts", "slow()\n", ctx))
}

func TestParse_RejectsInvalidPacks(t *testing.T) {
	cases := map[string]string{
		"missing id":        "rules:\n  - category: performance\n    match: {contains: x}\n    message: m\n",
		"missing match":     "rules:\n  - id: a\n    category: performance\n    message: m\n",
		"bad severity":      "rules:\n  - id: a\n    category: performance\n    severity: EXTREME\n    match: {contains: x}\n    message: m\n",
		"bad regex":         "rules:\n  - id: a\n    category: performance\n    match: {regex: '['}\n    message: m\n",
		"bad downgrade":     "rules:\n  - id: a\n    category: performance\n    match: {contains: x}\n    downgrade_when: '['\n    message: m\n",
		"not yaml":          "rules: [",
		"missing message":   "rules:\n  - id: a\n    category: performance\n    match: {contains: x}\n",
	}
	for name, pack := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rulepack.Parse([]byte(pack))
			assert.Error(t, err)
		})
	}
}

func TestLoadInto_RegistersAndCountsRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePack), 0644))

	registry, err := domain.NewRegistry()
	require.NoError(t, err)

	n, err := rulepack.LoadInto(registry, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, registry.Len())
}

func TestLoadInto_DuplicateAgainstExistingRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePack), 0644))

	registry, err := domain.NewRegistry(domain.Rule{
		ID:    "no-console-log",
		Match: func(string, string) (domain.MatchContext, bool) { return domain.MatchContext{}, false },
	})
	require.NoError(t, err)

	_, err = rulepack.LoadInto(registry, path)
	var dup *domain.DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "no-console-log", dup.ID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := rulepack.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
