package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func testStyleRules() []domain.StyleCompatibilityRule {
	return []domain.StyleCompatibilityRule{
		{
			StyleAesthetic:     taxonomy.AestheticOldMoney,
			ApplicableSubtypes: []taxonomy.Subtype{taxonomy.ActivityBusiness, taxonomy.FormalityCocktail},
			MustNeverInclude:   []string{"logos"},
			Importance:         domain.ImportanceStrict,
			RiskLevel:          domain.RiskHigh,
		},
		{
			StyleAesthetic:     taxonomy.AestheticOldMoney,
			ApplicableSubtypes: []taxonomy.Subtype{taxonomy.FormalityCasual},
			ShouldAvoid:        []string{"logos"},
			Importance:         domain.ImportanceModerate,
			RiskLevel:          domain.RiskMedium,
		},
	}
}

func TestIndex_Lookup(t *testing.T) {
	idx, err := NewIndex(testStyleRules(), nil)
	require.NoError(t, err)

	rules := idx.Lookup(taxonomy.AestheticOldMoney, taxonomy.ActivityBusiness)
	require.Len(t, rules, 1)
	assert.Equal(t, domain.ImportanceStrict, rules[0].Importance)

	// Absence of a rule means no constraint, not an error.
	assert.Empty(t, idx.Lookup(taxonomy.AestheticGrunge, taxonomy.ActivityBusiness))
	assert.Empty(t, idx.Lookup(taxonomy.AestheticOldMoney, taxonomy.ActivityWorkout))
}

func TestIndex_ForContext(t *testing.T) {
	idx, err := NewIndex(testStyleRules(), nil)
	require.NoError(t, err)

	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticOldMoney,
		Activity:  taxonomy.ActivityBusiness,
	}
	applicable := idx.ForContext(ctx)
	require.Len(t, applicable, 1)
	assert.Equal(t, domain.ImportanceStrict, applicable[0].Importance)

	// Different aesthetic, no rules apply.
	ctx.Aesthetic = taxonomy.AestheticCoastal
	assert.Empty(t, idx.ForContext(ctx))
}

func TestIndex_Material_CaseInsensitive(t *testing.T) {
	idx, err := NewIndex(nil, []domain.MaterialCompatibilityRule{
		{BaseMaterial: "Silk", MustNeverLayerWith: []string{"velcro"}},
	})
	require.NoError(t, err)

	rule, ok := idx.Material("silk")
	require.True(t, ok)
	assert.Equal(t, []string{"velcro"}, rule.MustNeverLayerWith)

	_, ok = idx.Material(" SILK ")
	assert.True(t, ok)

	_, ok = idx.Material("wool")
	assert.False(t, ok)
}

func TestNewIndex_DuplicateMaterial(t *testing.T) {
	_, err := NewIndex(nil, []domain.MaterialCompatibilityRule{
		{BaseMaterial: "wool"},
		{BaseMaterial: "Wool"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewIndex_EmptyMaterial(t *testing.T) {
	_, err := NewIndex(nil, []domain.MaterialCompatibilityRule{{BaseMaterial: "  "}})
	assert.Error(t, err)
}

func TestIndex_MaterialCount(t *testing.T) {
	idx, err := NewIndex(nil, []domain.MaterialCompatibilityRule{
		{BaseMaterial: "wool"},
		{BaseMaterial: "silk"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, idx.MaterialCount())
}
