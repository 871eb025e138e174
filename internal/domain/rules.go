package domain

import "github.com/stylesyncapp/stylesync-server/internal/taxonomy"

// Importance describes how strictly a style rule should be applied.
type Importance string

// Importance levels.
const (
	ImportanceStrict   Importance = "strict"
	ImportanceModerate Importance = "moderate"
	ImportanceLoose    Importance = "loose"
)

// RiskLevel describes how badly an outfit misses the aesthetic when the rule
// is violated.
type RiskLevel string

// Risk levels.
const (
	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

// StyleCompatibilityRule lists garment keywords that conflict with one
// aesthetic in specific contexts. Rules are loaded once from static
// configuration and never mutated at runtime.
//
// The three keyword tiers are ordered by severity: MustNeverInclude >
// ShouldAvoid > CanSometimesWork. When an item matches keywords in more than
// one tier of the same rule, only the most severe match is reported.
type StyleCompatibilityRule struct {
	StyleAesthetic     taxonomy.StyleAesthetic `json:"style_aesthetic" yaml:"style_aesthetic"`
	ApplicableSubtypes []taxonomy.Subtype      `json:"applicable_subtypes" yaml:"applicable_subtypes"`
	MustNeverInclude   []string                `json:"must_never_include" yaml:"must_never_include"`
	ShouldAvoid        []string                `json:"should_avoid" yaml:"should_avoid"`
	CanSometimesWork   []string                `json:"can_sometimes_work" yaml:"can_sometimes_work"`
	Importance         Importance              `json:"importance" yaml:"importance"`
	RiskLevel          RiskLevel               `json:"risk_level" yaml:"risk_level"`
}

// AppliesTo reports whether this rule is in scope for the given context:
// the aesthetic matches and at least one applicable subtype is declared.
func (r StyleCompatibilityRule) AppliesTo(ctx OutfitContext) bool {
	if r.StyleAesthetic != ctx.Aesthetic {
		return false
	}
	for _, s := range r.ApplicableSubtypes {
		if ctx.HasSubtype(s) {
			return true
		}
	}
	return false
}

// MaterialCompatibilityRule lists materials that conflict with a base
// material when layered. The relation is directional from BaseMaterial
// outward; pair checks look up each item's material as a base and test the
// other item against it. No symmetry is assumed.
type MaterialCompatibilityRule struct {
	BaseMaterial            string   `json:"base_material" yaml:"base_material"`
	MustNeverLayerWith      []string `json:"must_never_layer_with" yaml:"must_never_layer_with"`
	ShouldAvoidLayeringWith []string `json:"should_avoid_layering_with" yaml:"should_avoid_layering_with"`
	CanSometimesLayerWith   []string `json:"can_sometimes_layer_with" yaml:"can_sometimes_layer_with"`
}
