// Package evaluator decides whether a candidate outfit is acceptable for a
// styling context. Evaluation is a pure function of the outfit, the context,
// the static rule index, and a dynamic rule-set snapshot: no hidden state,
// no I/O, deterministic output for identical inputs.
package evaluator

import (
	"fmt"
	"strings"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/rules"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

// Evaluator validates outfits against the static rule index. The index is
// immutable after startup, so a single Evaluator may be shared freely across
// concurrent calls.
type Evaluator struct {
	index *rules.Index
}

// New creates an evaluator over the given rule index.
func New(index *rules.Index) *Evaluator {
	return &Evaluator{index: index}
}

// Evaluate validates one outfit against one context using the given dynamic
// rule-set snapshot. Structural failures short-circuit the compatibility
// checks: there is no point styling an outfit that is not an outfit. The
// result still carries every structural issue found.
func (e *Evaluator) Evaluate(outfit domain.Outfit, ctx domain.OutfitContext, ruleset *domain.DynamicRuleSet) *domain.ValidationResult {
	result := domain.NewValidationResult()

	structural := CheckStructure(outfit)
	if len(structural) > 0 {
		for _, issue := range structural {
			result.Add(issue)
		}
		return result
	}

	e.checkStyleRules(outfit, ctx, result)
	e.checkMaterialPairs(outfit, result)
	checkMaterialClimate(outfit, ctx, ruleset, result)
	checkOccasion(outfit, ctx, ruleset, result)
	checkLayering(outfit, ctx, ruleset, result)
	checkColors(outfit, ruleset, result)

	return result
}

// checkStyleRules tests every item against every applicable style rule.
// Within a single rule the most severe matching tier wins and lower tiers
// are suppressed for that item/rule pair. Across different rules no
// deduplication happens: two rules that both object to an item each report.
func (e *Evaluator) checkStyleRules(outfit domain.Outfit, ctx domain.OutfitContext, result *domain.ValidationResult) {
	applicable := e.index.ForContext(ctx)

	for _, item := range outfit.Items {
		identity := item.Identity()
		for _, rule := range applicable {
			ruleName := fmt.Sprintf("%s style rule", rule.StyleAesthetic)

			if kw, ok := domain.KeywordMatches(identity, rule.MustNeverInclude); ok {
				result.Add(domain.Issue{
					Kind:       domain.IssueStyleConflict,
					Severity:   domain.SeverityHard,
					ItemRefs:   []string{item.Ref()},
					Rule:       ruleName,
					Keyword:    kw,
					Importance: rule.Importance,
					RiskLevel:  rule.RiskLevel,
					Reason:     fmt.Sprintf("%q is never worn with the %s aesthetic in this context (matched %q)", item.Ref(), rule.StyleAesthetic, kw),
				})
				continue // most severe tier wins for this item/rule pair
			}

			if kw, ok := domain.KeywordMatches(identity, rule.ShouldAvoid); ok {
				result.Add(domain.Issue{
					Kind:       domain.IssueStyleConflict,
					Severity:   domain.SeveritySoft,
					ItemRefs:   []string{item.Ref()},
					Rule:       ruleName,
					Keyword:    kw,
					Importance: rule.Importance,
					RiskLevel:  rule.RiskLevel,
					Reason:     fmt.Sprintf("%q is usually avoided with the %s aesthetic in this context (matched %q)", item.Ref(), rule.StyleAesthetic, kw),
				})
				continue
			}

			if kw, ok := domain.KeywordMatches(identity, rule.CanSometimesWork); ok {
				result.Add(domain.Issue{
					Kind:       domain.IssueStyleConflict,
					Severity:   domain.SeveritySituational,
					ItemRefs:   []string{item.Ref()},
					Rule:       ruleName,
					Keyword:    kw,
					Importance: rule.Importance,
					RiskLevel:  rule.RiskLevel,
					Reason:     fmt.Sprintf("%q can sometimes work with the %s aesthetic (matched %q)", item.Ref(), rule.StyleAesthetic, kw),
				})
			}
		}
	}
}

// checkMaterialPairs tests every unordered item pair with known materials.
// Lookups are directional: each item's material is tried as a base against
// the other's. No symmetry is assumed beyond trying both directions.
func (e *Evaluator) checkMaterialPairs(outfit domain.Outfit, result *domain.ValidationResult) {
	items := outfit.Items
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if items[i].Material == "" || items[j].Material == "" {
				continue
			}
			e.checkMaterialDirection(items[i], items[j], result)
			e.checkMaterialDirection(items[j], items[i], result)
		}
	}
}

// checkMaterialDirection classifies one (base, other) material pairing.
func (e *Evaluator) checkMaterialDirection(base, other domain.ClothingItem, result *domain.ValidationResult) {
	rule, ok := e.index.Material(base.Material)
	if !ok {
		return
	}

	otherMaterial := strings.ToLower(other.Material)
	ruleName := fmt.Sprintf("%s layering rule", strings.ToLower(base.Material))
	refs := []string{base.Ref(), other.Ref()}

	if kw, matched := domain.KeywordMatches(otherMaterial, rule.MustNeverLayerWith); matched {
		result.Add(domain.Issue{
			Kind:     domain.IssueMaterialPair,
			Severity: domain.SeverityHard,
			ItemRefs: refs,
			Rule:     ruleName,
			Keyword:  kw,
			Reason:   fmt.Sprintf("%s must never be layered with %s", base.Material, other.Material),
		})
		return
	}

	if kw, matched := domain.KeywordMatches(otherMaterial, rule.ShouldAvoidLayeringWith); matched {
		result.Add(domain.Issue{
			Kind:     domain.IssueMaterialPair,
			Severity: domain.SeveritySoft,
			ItemRefs: refs,
			Rule:     ruleName,
			Keyword:  kw,
			Reason:   fmt.Sprintf("layering %s with %s is usually avoided", base.Material, other.Material),
		})
		return
	}

	if kw, matched := domain.KeywordMatches(otherMaterial, rule.CanSometimesLayerWith); matched {
		result.Add(domain.Issue{
			Kind:     domain.IssueMaterialPair,
			Severity: domain.SeveritySituational,
			ItemRefs: refs,
			Rule:     ruleName,
			Keyword:  kw,
			Reason:   fmt.Sprintf("%s can sometimes be layered with %s", base.Material, other.Material),
		})
	}
}

// checkMaterialClimate flags materials outside their comfortable temperature
// range, using the context's explicit temperature and, when supplied, the
// season window from the dynamic rules.
func checkMaterialClimate(outfit domain.Outfit, ctx domain.OutfitContext, ruleset *domain.DynamicRuleSet, result *domain.ValidationResult) {
	if ruleset == nil {
		return
	}

	for _, item := range outfit.Items {
		if item.Material == "" {
			continue
		}
		material := strings.ToLower(item.Material)
		climate, ok := ruleset.MaterialClimateRules[material]
		if !ok {
			continue
		}

		if ctx.HasTemperature {
			if ctx.TemperatureF > climate.MaxTempF {
				result.Add(domain.Issue{
					Kind:     domain.IssueMaterialClimate,
					Severity: domain.SeveritySoft,
					ItemRefs: []string{item.Ref()},
					Rule:     domain.MaterialClimatePath(material, "maxTempF"),
					Reason:   fmt.Sprintf("%s is too warm for %.0f°F (max %.0f°F)", material, ctx.TemperatureF, climate.MaxTempF),
				})
			} else if ctx.TemperatureF < climate.MinTempF {
				result.Add(domain.Issue{
					Kind:     domain.IssueMaterialClimate,
					Severity: domain.SeveritySoft,
					ItemRefs: []string{item.Ref()},
					Rule:     domain.MaterialClimatePath(material, "minTempF"),
					Reason:   fmt.Sprintf("%s is too light for %.0f°F (min %.0f°F)", material, ctx.TemperatureF, climate.MinTempF),
				})
			}
		}

		if ctx.Season != "" {
			season, known := ruleset.SeasonalRules[strings.ToLower(ctx.Season)]
			if known && climate.MaxTempF < season.MinTempF {
				result.Add(domain.Issue{
					Kind:     domain.IssueMaterialClimate,
					Severity: domain.SeveritySoft,
					ItemRefs: []string{item.Ref()},
					Rule:     fmt.Sprintf("seasonalRules.%s.minTempF", strings.ToLower(ctx.Season)),
					Reason:   fmt.Sprintf("%s is rated for at most %.0f°F, below typical %s temperatures", material, climate.MaxTempF, strings.ToLower(ctx.Season)),
				})
			}
		}
	}
}

// checkOccasion enforces the per-occasion minimums for the context's activity.
func checkOccasion(outfit domain.Outfit, ctx domain.OutfitContext, ruleset *domain.DynamicRuleSet, result *domain.ValidationResult) {
	if ruleset == nil || ctx.Activity == "" {
		return
	}
	occasion, ok := ruleset.OccasionRules[strings.ToLower(string(ctx.Activity))]
	if !ok {
		return
	}

	if len(outfit.Items) < occasion.MinItems {
		result.Add(domain.Issue{
			Kind:     domain.IssueOccasion,
			Severity: domain.SeverityHard,
			Rule:     fmt.Sprintf("occasionRules.%s.minItems", strings.ToLower(string(ctx.Activity))),
			Reason:   fmt.Sprintf("%s requires at least %d items, outfit has %d", ctx.Activity, occasion.MinItems, len(outfit.Items)),
		})
	}

	if occasion.RequiresJacket && CountByCategory(outfit)[CategoryOuterwear] == 0 {
		result.Add(domain.Issue{
			Kind:     domain.IssueOccasion,
			Severity: domain.SeverityHard,
			Rule:     fmt.Sprintf("occasionRules.%s.requiresJacket", strings.ToLower(string(ctx.Activity))),
			Reason:   fmt.Sprintf("%s requires a jacket or other outerwear", ctx.Activity),
		})
	}
}

// checkLayering warns when the outfit's layer count falls outside the
// configured limits for the weather.
func checkLayering(outfit domain.Outfit, ctx domain.OutfitContext, ruleset *domain.DynamicRuleSet, result *domain.ValidationResult) {
	if ruleset == nil {
		return
	}

	counts := CountByCategory(outfit)
	layers := counts[CategoryTop] + counts[CategoryOuterwear]
	limits := ruleset.LayeringRules

	if limits.MaxLayers > 0 && layers > limits.MaxLayers {
		result.Add(domain.Issue{
			Kind:     domain.IssueStructural,
			Severity: domain.SeveritySoft,
			Rule:     "layeringRules.maxLayers",
			Reason:   fmt.Sprintf("%d layers exceeds the maximum of %d", layers, limits.MaxLayers),
		})
	}

	switch ctx.Weather {
	case taxonomy.WeatherCold, taxonomy.WeatherSnowy:
		if limits.MinLayersCold > 0 && layers < limits.MinLayersCold {
			result.Add(domain.Issue{
				Kind:     domain.IssueStructural,
				Severity: domain.SeveritySoft,
				Rule:     "layeringRules.minLayersCold",
				Reason:   fmt.Sprintf("cold weather calls for at least %d layers, outfit has %d", limits.MinLayersCold, layers),
			})
		}
	case taxonomy.WeatherHot:
		if limits.MaxLayersHot > 0 && layers > limits.MaxLayersHot {
			result.Add(domain.Issue{
				Kind:     domain.IssueStructural,
				Severity: domain.SeveritySoft,
				Rule:     "layeringRules.maxLayersHot",
				Reason:   fmt.Sprintf("hot weather calls for at most %d layers, outfit has %d", limits.MaxLayersHot, layers),
			})
		}
	}
}

// checkColors enforces the color variety limits. Exceeding the count is a
// soft warning; a missing neutral base when one is required is a hard
// required-element failure, not a count failure.
func checkColors(outfit domain.Outfit, ruleset *domain.DynamicRuleSet, result *domain.ValidationResult) {
	if ruleset == nil {
		return
	}
	colors := outfit.DistinctColors()
	limits := ruleset.ColorRules

	if limits.MaxColors > 0 && len(colors) > limits.MaxColors {
		result.Add(domain.Issue{
			Kind:     domain.IssueColor,
			Severity: domain.SeveritySoft,
			Rule:     "colorRules.maxColors",
			Reason:   fmt.Sprintf("%d distinct colors exceeds the maximum of %d", len(colors), limits.MaxColors),
		})
	}

	if limits.RequireNeutralBase && !outfit.HasNeutralItem() {
		result.Add(domain.Issue{
			Kind:     domain.IssueColor,
			Severity: domain.SeverityHard,
			Rule:     "colorRules.requireNeutralBase",
			Reason:   "a neutral-colored base item is required and none is present",
		})
	}
}
