package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triagekit/triagekit/internal/domain"
)

func TestSeverity_Rank_OrdersMostUrgentFirst(t *testing.T) {
	assert.Less(t, domain.SeverityCritical.Rank(), domain.SeverityHigh.Rank())
	assert.Less(t, domain.SeverityHigh.Rank(), domain.SeverityMedium.Rank())
	assert.Less(t, domain.SeverityMedium.Rank(), domain.SeverityLow.Rank())
}

func TestSeverity_Rank_UnknownRanksAfterLow(t *testing.T) {
	assert.Greater(t, domain.Severity("URGENT").Rank(), domain.SeverityLow.Rank())
}

func TestSeverity_Valid(t *testing.T) {
	for _, s := range domain.Severities {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, domain.Severity("").Valid())
	assert.False(t, domain.Severity("critical").Valid(), "tiers are case-sensitive")
}

func TestSeverity_Downgrade(t *testing.T) {
	assert.Equal(t, domain.SeverityHigh, domain.SeverityCritical.Downgrade())
	assert.Equal(t, domain.SeverityMedium, domain.SeverityHigh.Downgrade())
	assert.Equal(t, domain.SeverityLow, domain.SeverityMedium.Downgrade())
	assert.Equal(t, domain.SeverityLow, domain.SeverityLow.Downgrade())
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range domain.Categories {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, domain.Category("networking").Valid())
	assert.False(t, domain.Category("").Valid())
}
