// Package rules loads the static compatibility rule tables and builds the
// immutable lookup structures the evaluator consults. Tables are loaded once
// at startup; the index is safe for concurrent use without locking.
package rules

import (
	"strings"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/errors"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

// styleKey identifies one (aesthetic, subtype) combination.
type styleKey struct {
	aesthetic taxonomy.StyleAesthetic
	subtype   taxonomy.Subtype
}

// Index holds the immutable rule lookups built at startup.
type Index struct {
	byStyleSubtype map[styleKey][]domain.StyleCompatibilityRule
	byAesthetic    map[taxonomy.StyleAesthetic][]domain.StyleCompatibilityRule
	materials      map[string]domain.MaterialCompatibilityRule
}

// NewIndex builds the lookup structures. A duplicate base material is a
// configuration error: that key must be unique, and two rows for the same
// material would silently shadow each other.
func NewIndex(styleRules []domain.StyleCompatibilityRule, materialRules []domain.MaterialCompatibilityRule) (*Index, error) {
	idx := &Index{
		byStyleSubtype: make(map[styleKey][]domain.StyleCompatibilityRule),
		byAesthetic:    make(map[taxonomy.StyleAesthetic][]domain.StyleCompatibilityRule),
		materials:      make(map[string]domain.MaterialCompatibilityRule, len(materialRules)),
	}

	for _, rule := range styleRules {
		idx.byAesthetic[rule.StyleAesthetic] = append(idx.byAesthetic[rule.StyleAesthetic], rule)
		for _, subtype := range rule.ApplicableSubtypes {
			key := styleKey{aesthetic: rule.StyleAesthetic, subtype: subtype}
			idx.byStyleSubtype[key] = append(idx.byStyleSubtype[key], rule)
		}
	}

	for _, rule := range materialRules {
		material := strings.ToLower(strings.TrimSpace(rule.BaseMaterial))
		if material == "" {
			return nil, errors.Config("material compatibility rule with empty base material")
		}
		if _, exists := idx.materials[material]; exists {
			return nil, errors.Configf("duplicate material compatibility rule for %q", material)
		}
		idx.materials[material] = rule
	}

	return idx, nil
}

// Lookup returns the style rules registered for one (aesthetic, subtype)
// combination. Absence of a rule means "no constraint": an empty slice is
// returned, never an error.
func (idx *Index) Lookup(aesthetic taxonomy.StyleAesthetic, subtype taxonomy.Subtype) []domain.StyleCompatibilityRule {
	return idx.byStyleSubtype[styleKey{aesthetic: aesthetic, subtype: subtype}]
}

// ForContext returns every rule applicable to the context: aesthetic matches
// and the applicable subtypes intersect the context's declared subtype set.
// Rules are returned in load order, each at most once.
func (idx *Index) ForContext(ctx domain.OutfitContext) []domain.StyleCompatibilityRule {
	candidates := idx.byAesthetic[ctx.Aesthetic]
	out := make([]domain.StyleCompatibilityRule, 0, len(candidates))
	for _, rule := range candidates {
		if rule.AppliesTo(ctx) {
			out = append(out, rule)
		}
	}
	return out
}

// Material returns the compatibility rule for a base material, matched
// case-insensitively. The second result reports whether a rule exists.
func (idx *Index) Material(name string) (domain.MaterialCompatibilityRule, bool) {
	rule, ok := idx.materials[strings.ToLower(strings.TrimSpace(name))]
	return rule, ok
}

// StyleRules returns all style rules registered for an aesthetic, in load order.
func (idx *Index) StyleRules(aesthetic taxonomy.StyleAesthetic) []domain.StyleCompatibilityRule {
	return idx.byAesthetic[aesthetic]
}

// MaterialCount returns the number of registered material rules.
func (idx *Index) MaterialCount() int {
	return len(idx.materials)
}
