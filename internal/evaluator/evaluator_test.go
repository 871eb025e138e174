package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	idx, err := rules.LoadDefault()
	require.NoError(t, err)
	return New(idx)
}

func businessContext(aesthetic taxonomy.StyleAesthetic) domain.OutfitContext {
	return domain.OutfitContext{
		Aesthetic: aesthetic,
		Activity:  taxonomy.ActivityBusiness,
	}
}

func TestEvaluate_LogoHoodieFailsOldMoneyBusiness(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Logo Hoodie", Type: "top"},
		{Name: "Wool Trousers", Type: "bottom"},
		{Name: "Leather Loafers", Type: "shoes"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticOldMoney), domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.HardErrors)

	found := false
	for _, issue := range result.HardErrors {
		if issue.Kind == domain.IssueStyleConflict && issue.Keyword == "logos" {
			found = true
			assert.Equal(t, []string{"Logo Hoodie"}, issue.ItemRefs)
			assert.Equal(t, domain.ImportanceStrict, issue.Importance)
		}
	}
	assert.True(t, found, "expected a hard style conflict matching %q", "logos")
}

func TestEvaluate_BusinessCasualStaplesPass(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "White Dress Shirt", Type: "top", Color: "white"},
		{Name: "Black Slacks", Type: "bottom", Color: "black"},
		{Name: "Black Oxford Shoes", Type: "footwear", Color: "black"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticBusinessCasual), domain.NewDefaultRuleSet())

	assert.True(t, result.Valid)
	assert.Empty(t, result.HardErrors)
}

func TestEvaluate_SevenItemsFailsStructurally(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Shirt"}, {Name: "Slacks"}, {Name: "Shoes"},
		{Name: "Watch"}, {Name: "Belt"}, {Name: "Scarf"}, {Name: "Hat"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticClassic), domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.HardErrors)
	assert.Contains(t, result.HardErrors[0].Reason, "wrong item count: 7")

	// Structural failures short-circuit the compatibility checks.
	assert.Empty(t, result.SoftWarnings)
	assert.Empty(t, result.SituationalNotes)
}

func TestEvaluate_TierPrecedenceWithinOneRule(t *testing.T) {
	idx, err := rules.NewIndex([]domain.StyleCompatibilityRule{
		{
			StyleAesthetic:     taxonomy.AestheticMinimalist,
			ApplicableSubtypes: []taxonomy.Subtype{taxonomy.ActivityWork},
			MustNeverInclude:   []string{"neon windbreaker"},
			ShouldAvoid:        []string{"windbreaker"},
			Importance:         domain.ImportanceStrict,
			RiskLevel:          domain.RiskHigh,
		},
	}, nil)
	require.NoError(t, err)
	e := New(idx)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Neon Windbreaker", Type: "jacket"},
		{Name: "Jeans", Type: "bottom"},
		{Name: "Sneakers", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticMinimalist,
		Activity:  taxonomy.ActivityWork,
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	// The item matches both tiers of the same rule; only the most severe
	// tier reports.
	assert.False(t, result.Valid)
	assert.Len(t, result.HardErrors, 1)
	assert.Empty(t, result.SoftWarnings)
}

func TestEvaluate_MaterialMustNeverLayer(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Silk Blouse", Type: "top", Material: "silk"},
		{Name: "Chinos", Type: "bottom"},
		{Name: "Strap Sneakers", Type: "shoes", Material: "velcro"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticMinimalist), domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	require.Len(t, result.HardErrors, 1)
	issue := result.HardErrors[0]
	assert.Equal(t, domain.IssueMaterialPair, issue.Kind)
	assert.Equal(t, []string{"Silk Blouse", "Strap Sneakers"}, issue.ItemRefs)
}

func TestEvaluate_MaterialLookupIsDirectional(t *testing.T) {
	e := newTestEvaluator(t)

	// Leather's table forbids leather-on-leather; both directions of the
	// same pair hit that row, so the pair reports twice.
	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Leather Jacket", Type: "jacket", Material: "leather"},
		{Name: "Leather Pants", Type: "bottom", Material: "leather"},
		{Name: "Canvas Sneakers", Type: "shoes"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticEdgy), domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	assert.Len(t, result.HardErrors, 2)
}

func TestEvaluate_MaterialKeywordsMatchBareMaterials(t *testing.T) {
	e := newTestEvaluator(t)

	// Wool and silk each list the other in their should-avoid rows, so the
	// pair warns once per direction, each keyed by the bare material name.
	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Silk Blouse", Type: "top", Material: "silk"},
		{Name: "Wool Skirt", Type: "bottom", Material: "wool"},
		{Name: "Pumps", Type: "shoes"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticMinimalist), domain.NewDefaultRuleSet())

	assert.True(t, result.Valid)
	require.Len(t, result.SoftWarnings, 2)
	keywords := []string{result.SoftWarnings[0].Keyword, result.SoftWarnings[1].Keyword}
	assert.ElementsMatch(t, []string{"silk", "wool"}, keywords)
}

func TestEvaluate_MaterialClimateTooWarm(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Wool Sweater", Type: "top", Material: "wool"},
		{Name: "Shorts", Type: "bottom"},
		{Name: "Sandals", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic:      taxonomy.AestheticCoastal,
		TemperatureF:   85,
		HasTemperature: true,
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	found := false
	for _, issue := range result.SoftWarnings {
		if issue.Kind == domain.IssueMaterialClimate {
			found = true
			assert.Equal(t, "materialClimateRules.wool.maxTempF", issue.Rule)
		}
	}
	assert.True(t, found, "expected a material climate warning")
	assert.True(t, result.Valid, "climate issues are warnings, not hard errors")
}

func TestEvaluate_MaterialClimateSeasonMismatch(t *testing.T) {
	e := newTestEvaluator(t)

	// Fleece tops out at 60°F; summer's floor is 65°F.
	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Fleece Pullover", Type: "top", Material: "fleece"},
		{Name: "Shorts", Type: "bottom"},
		{Name: "Sandals", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticGorpcore,
		Season:    "summer",
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	require.NotEmpty(t, result.SoftWarnings)
	assert.Equal(t, "seasonalRules.summer.minTempF", result.SoftWarnings[0].Rule)
}

func TestEvaluate_WeddingRequiresJacket(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Dress Shirt", Type: "top"},
		{Name: "Suit Trousers", Type: "bottom"},
		{Name: "Derby Shoes", Type: "shoes"},
		{Name: "Silk Tie", Type: "accessory"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticClassic,
		Activity:  taxonomy.ActivityWedding,
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	found := false
	for _, issue := range result.HardErrors {
		if issue.Kind == domain.IssueOccasion {
			found = true
			assert.Contains(t, issue.Rule, "requiresJacket")
		}
	}
	assert.True(t, found, "expected a jacket requirement failure")
}

func TestEvaluate_OccasionMinItems(t *testing.T) {
	e := newTestEvaluator(t)

	// Three items satisfy structure but not the wedding minimum of four.
	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Blazer", Type: "jacket"},
		{Name: "Suit Trousers", Type: "bottom"},
		{Name: "Derby Shoes", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticClassic,
		Activity:  taxonomy.ActivityWedding,
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	assert.False(t, result.Valid)
	require.NotEmpty(t, result.HardErrors)
	assert.Contains(t, result.HardErrors[0].Rule, "minItems")
}

func TestEvaluate_ColdWeatherLayeringWarning(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Tee", Type: "top"},
		{Name: "Jeans", Type: "bottom"},
		{Name: "Boots", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic: taxonomy.AestheticStreetwear,
		Weather:   taxonomy.WeatherCold,
	}

	result := e.Evaluate(outfit, ctx, domain.NewDefaultRuleSet())

	assert.True(t, result.Valid)
	found := false
	for _, issue := range result.SoftWarnings {
		if issue.Rule == "layeringRules.minLayersCold" {
			found = true
		}
	}
	assert.True(t, found, "expected a cold weather layering warning")
}

func TestEvaluate_TooManyColors(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Tee", Type: "top", Color: "red"},
		{Name: "Jeans", Type: "bottom", Color: "blue"},
		{Name: "Sneakers", Type: "shoes", Color: "green"},
		{Name: "Cap", Type: "hat", Color: "yellow"},
		{Name: "Scarf", Type: "accessory", Color: "purple"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticStreetwear), domain.NewDefaultRuleSet())

	found := false
	for _, issue := range result.SoftWarnings {
		if issue.Rule == "colorRules.maxColors" {
			found = true
		}
	}
	assert.True(t, found, "expected a color count warning")
}

func TestEvaluate_RequireNeutralBase(t *testing.T) {
	e := newTestEvaluator(t)

	ruleset := domain.NewDefaultRuleSet()
	ruleset.ColorRules.RequireNeutralBase = true

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Tee", Type: "top", Color: "red"},
		{Name: "Joggers", Type: "bottom", Color: "orange"},
		{Name: "Sneakers", Type: "shoes", Color: "green"},
	}}

	result := e.Evaluate(outfit, businessContext(taxonomy.AestheticStreetwear), ruleset)

	assert.False(t, result.Valid)
	found := false
	for _, issue := range result.HardErrors {
		if issue.Rule == "colorRules.requireNeutralBase" {
			found = true
		}
	}
	assert.True(t, found, "expected a missing neutral base failure")
}

func TestEvaluate_DynamicThresholdChangesOutcome(t *testing.T) {
	e := newTestEvaluator(t)

	outfit := domain.Outfit{Items: []domain.ClothingItem{
		{Name: "Wool Sweater", Type: "top", Material: "wool"},
		{Name: "Chinos", Type: "bottom"},
		{Name: "Loafers", Type: "shoes"},
	}}
	ctx := domain.OutfitContext{
		Aesthetic:      taxonomy.AestheticOldMoney,
		TemperatureF:   75,
		HasTemperature: true,
	}

	ruleset := domain.NewDefaultRuleSet()
	before := e.Evaluate(outfit, ctx, ruleset)
	assert.NotEmpty(t, before.SoftWarnings, "75°F exceeds wool's default 70°F ceiling")

	_, err := ruleset.Apply("materialClimateRules.wool.maxTempF", 80.0)
	require.NoError(t, err)

	after := e.Evaluate(outfit, ctx, ruleset)
	for _, issue := range after.SoftWarnings {
		assert.NotEqual(t, "materialClimateRules.wool.maxTempF", issue.Rule)
	}
}
