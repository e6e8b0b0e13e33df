package badge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startupquest/quest-api/internal/domain/badge"
)

func TestCatalogKeys(t *testing.T) {
	want := []string{
		"pitch-master",
		"ideation-expert",
		"validation-pro",
		"mvp-builder",
		"launch-champion",
		"feedback-guru",
		"monetization-master",
	}

	types := badge.Catalog()
	require.Len(t, types, len(want))
	for i, bt := range types {
		assert.Equal(t, want[i], bt.Key)
		assert.NotEmpty(t, bt.DisplayName)
	}
}

func TestCatalogIsACopy(t *testing.T) {
	types := badge.Catalog()
	types[0].DisplayName = "changed"

	bt, ok := badge.LookupBadgeType("pitch-master")
	require.True(t, ok)
	assert.Equal(t, "Pitch Master", bt.DisplayName)
	assert.Equal(t, "Pitch Master", badge.Catalog()[0].DisplayName)
}

func TestLookupBadgeType(t *testing.T) {
	_, ok := badge.LookupBadgeType("mvp-builder")
	assert.True(t, ok)

	_, ok = badge.LookupBadgeType("MVP-Builder")
	assert.False(t, ok, "keys are case sensitive")

	_, ok = badge.LookupBadgeType("")
	assert.False(t, ok)
}

func TestDescriptionFor(t *testing.T) {
	assert.Equal(t, "Awarded for completing the MVP phase.", badge.DescriptionFor("mvp-builder"))
	assert.Equal(t, badge.FallbackDescription, badge.DescriptionFor("unknown"))
}
