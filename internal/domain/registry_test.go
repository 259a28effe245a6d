package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagekit/triagekit/internal/domain"
)

func matchNothing(string, string) (domain.MatchContext, bool) {
	return domain.MatchContext{}, false
}

func TestNewRegistry_RejectsDuplicateIDs(t *testing.T) {
	_, err := domain.NewRegistry(
		domain.Rule{ID: "dup", Match: matchNothing},
		domain.Rule{ID: "dup", Match: matchNothing},
	)
	require.Error(t, err)

	var dupErr *domain.DuplicateRuleError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dup", dupErr.ID)
}

func TestRegistry_Register_RejectsInvalidRules(t *testing.T) {
	r, err := domain.NewRegistry()
	require.NoError(t, err)

	assert.Error(t, r.Register(domain.Rule{Match: matchNothing}), "empty id")
	assert.Error(t, r.Register(domain.Rule{ID: "no-predicate"}), "nil predicate")
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Get(t *testing.T) {
	r, err := domain.NewRegistry(domain.Rule{ID: "known", Match: matchNothing})
	require.NoError(t, err)

	rule, ok := r.Get("known")
	assert.True(t, ok)
	assert.Equal(t, "known", rule.ID)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_RulesFor_FiltersByPattern(t *testing.T) {
	r, err := domain.NewRegistry(
		domain.Rule{ID: "ts", FilePatterns: []string{"*.ts"}, Match: matchNothing},
		domain.Rule{ID: "all", Match: matchNothing},
		domain.Rule{ID: "go", FilePatterns: []string{"*.go"}, Match: matchNothing},
	)
	require.NoError(t, err)

	applicable := r.RulesFor("src/app.ts")
	require.Len(t, applicable, 2)
	assert.Equal(t, "ts", applicable[0].ID, "registration order preserved")
	assert.Equal(t, "all", applicable[1].ID)
}

func TestRegistry_Rules_ReturnsCopy(t *testing.T) {
	r, err := domain.NewRegistry(domain.Rule{ID: "only", Match: matchNothing})
	require.NoError(t, err)

	rules := r.Rules()
	rules[0].ID = "mutated"

	kept, _ := r.Get("only")
	assert.Equal(t, "only", kept.ID)
}
