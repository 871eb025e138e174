package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/stylesyncapp/stylesync-server/internal/errors"
)

// MaterialClimateRule bounds the temperature range a material is comfortable in.
type MaterialClimateRule struct {
	MinTempF float64 `json:"minTempF"`
	MaxTempF float64 `json:"maxTempF"`
}

// SeasonalRule describes a season window and its temperature floor.
type SeasonalRule struct {
	Months   []int   `json:"months"`
	MinTempF float64 `json:"minTempF"`
}

// OccasionRule sets per-occasion outfit minimums.
type OccasionRule struct {
	MinItems       int  `json:"minItems"`
	RequiresJacket bool `json:"requiresJacket"`
}

// LayeringRules limits how many layers an outfit may carry.
type LayeringRules struct {
	MaxLayers     int `json:"maxLayers"`
	MinLayersCold int `json:"minLayersCold"`
	MaxLayersHot  int `json:"maxLayersHot"`
}

// ColorRules limits color variety across an outfit.
type ColorRules struct {
	MaxColors          int  `json:"maxColors"`
	RequireNeutralBase bool `json:"requireNeutralBase"`
	AllowPatterns      bool `json:"allowPatterns"`
}

// RuleSetMetadata tracks the rule set's identity and mutation times.
type RuleSetMetadata struct {
	Version       string    `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// DynamicRuleSet is the administrator-editable set of numeric and boolean
// thresholds consulted on every evaluation. Exactly one live rule set exists
// per deployment; every mutation bumps Metadata.LastUpdatedAt and appends one
// RuleChangeEntry to history.
type DynamicRuleSet struct {
	MaterialClimateRules map[string]MaterialClimateRule `json:"materialClimateRules"`
	SeasonalRules        map[string]SeasonalRule        `json:"seasonalRules"`
	OccasionRules        map[string]OccasionRule        `json:"occasionRules"`
	LayeringRules        LayeringRules                  `json:"layeringRules"`
	ColorRules           ColorRules                     `json:"colorRules"`
	Metadata             RuleSetMetadata                `json:"metadata"`
}

// NewDefaultRuleSet creates a rule set with default thresholds.
func NewDefaultRuleSet() *DynamicRuleSet {
	now := time.Now().UTC()
	return &DynamicRuleSet{
		MaterialClimateRules: map[string]MaterialClimateRule{
			"wool":      {MinTempF: 20, MaxTempF: 70},
			"cashmere":  {MinTempF: 20, MaxTempF: 65},
			"linen":     {MinTempF: 65, MaxTempF: 110},
			"cotton":    {MinTempF: 40, MaxTempF: 95},
			"silk":      {MinTempF: 45, MaxTempF: 90},
			"leather":   {MinTempF: 25, MaxTempF: 70},
			"denim":     {MinTempF: 35, MaxTempF: 85},
			"polyester": {MinTempF: 30, MaxTempF: 85},
			"down":      {MinTempF: -20, MaxTempF: 45},
			"fleece":    {MinTempF: 10, MaxTempF: 60},
		},
		SeasonalRules: map[string]SeasonalRule{
			"winter": {Months: []int{12, 1, 2}, MinTempF: -20},
			"spring": {Months: []int{3, 4, 5}, MinTempF: 40},
			"summer": {Months: []int{6, 7, 8}, MinTempF: 65},
			"fall":   {Months: []int{9, 10, 11}, MinTempF: 40},
		},
		OccasionRules: map[string]OccasionRule{
			"business": {MinItems: 3, RequiresJacket: false},
			"wedding":  {MinItems: 4, RequiresJacket: true},
			"work":     {MinItems: 3, RequiresJacket: false},
			"workout":  {MinItems: 3, RequiresJacket: false},
			"date":     {MinItems: 3, RequiresJacket: false},
			"party":    {MinItems: 3, RequiresJacket: false},
		},
		LayeringRules: LayeringRules{
			MaxLayers:     4,
			MinLayersCold: 2,
			MaxLayersHot:  1,
		},
		ColorRules: ColorRules{
			MaxColors:          4,
			RequireNeutralBase: false,
			AllowPatterns:      true,
		},
		Metadata: RuleSetMetadata{
			Version:       "1",
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
}

// Clone returns a deep copy, so callers can hand out read-only snapshots
// without exposing the live maps.
func (rs *DynamicRuleSet) Clone() *DynamicRuleSet {
	out := *rs
	out.MaterialClimateRules = make(map[string]MaterialClimateRule, len(rs.MaterialClimateRules))
	for k, v := range rs.MaterialClimateRules {
		out.MaterialClimateRules[k] = v
	}
	out.SeasonalRules = make(map[string]SeasonalRule, len(rs.SeasonalRules))
	for k, v := range rs.SeasonalRules {
		months := make([]int, len(v.Months))
		copy(months, v.Months)
		v.Months = months
		out.SeasonalRules[k] = v
	}
	out.OccasionRules = make(map[string]OccasionRule, len(rs.OccasionRules))
	for k, v := range rs.OccasionRules {
		out.OccasionRules[k] = v
	}
	return &out
}

// ValueAt resolves a dot-addressed rule path to its current scalar value.
// Only scalar leaves resolve; family roots, map keys, and the months list do
// not. The boolean result reports whether the path resolved.
func (rs *DynamicRuleSet) ValueAt(path string) (any, bool) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "materialClimateRules":
		if len(parts) != 3 {
			return nil, false
		}
		rule, ok := rs.MaterialClimateRules[parts[1]]
		if !ok {
			return nil, false
		}
		switch parts[2] {
		case "minTempF":
			return rule.MinTempF, true
		case "maxTempF":
			return rule.MaxTempF, true
		}
	case "seasonalRules":
		if len(parts) != 3 {
			return nil, false
		}
		rule, ok := rs.SeasonalRules[parts[1]]
		if !ok {
			return nil, false
		}
		// months is a list, not a scalar leaf; it is not patchable.
		if parts[2] == "minTempF" {
			return rule.MinTempF, true
		}
	case "occasionRules":
		if len(parts) != 3 {
			return nil, false
		}
		rule, ok := rs.OccasionRules[parts[1]]
		if !ok {
			return nil, false
		}
		switch parts[2] {
		case "minItems":
			return rule.MinItems, true
		case "requiresJacket":
			return rule.RequiresJacket, true
		}
	case "layeringRules":
		if len(parts) != 2 {
			return nil, false
		}
		switch parts[1] {
		case "maxLayers":
			return rs.LayeringRules.MaxLayers, true
		case "minLayersCold":
			return rs.LayeringRules.MinLayersCold, true
		case "maxLayersHot":
			return rs.LayeringRules.MaxLayersHot, true
		}
	case "colorRules":
		if len(parts) != 2 {
			return nil, false
		}
		switch parts[1] {
		case "maxColors":
			return rs.ColorRules.MaxColors, true
		case "requireNeutralBase":
			return rs.ColorRules.RequireNeutralBase, true
		case "allowPatterns":
			return rs.ColorRules.AllowPatterns, true
		}
	}
	return nil, false
}

// Apply sets the scalar leaf at path to newValue, returning the previous
// value. The path must resolve to an existing leaf and the value must be of
// a compatible type; on failure the rule set is left unchanged.
//
//nolint:gocyclo // One arm per addressable leaf keeps the path grammar explicit.
func (rs *DynamicRuleSet) Apply(path string, newValue any) (any, error) {
	old, ok := rs.ValueAt(path)
	if !ok {
		return nil, errors.RulePathNotFound(path)
	}

	parts := strings.Split(path, ".")
	switch parts[0] {
	case "materialClimateRules":
		f, err := asFloat(newValue, path)
		if err != nil {
			return nil, err
		}
		rule := rs.MaterialClimateRules[parts[1]]
		if parts[2] == "minTempF" {
			rule.MinTempF = f
		} else {
			rule.MaxTempF = f
		}
		rs.MaterialClimateRules[parts[1]] = rule
	case "seasonalRules":
		f, err := asFloat(newValue, path)
		if err != nil {
			return nil, err
		}
		rule := rs.SeasonalRules[parts[1]]
		rule.MinTempF = f
		rs.SeasonalRules[parts[1]] = rule
	case "occasionRules":
		rule := rs.OccasionRules[parts[1]]
		if parts[2] == "minItems" {
			n, err := asInt(newValue, path)
			if err != nil {
				return nil, err
			}
			rule.MinItems = n
		} else {
			b, err := asBool(newValue, path)
			if err != nil {
				return nil, err
			}
			rule.RequiresJacket = b
		}
		rs.OccasionRules[parts[1]] = rule
	case "layeringRules":
		n, err := asInt(newValue, path)
		if err != nil {
			return nil, err
		}
		switch parts[1] {
		case "maxLayers":
			rs.LayeringRules.MaxLayers = n
		case "minLayersCold":
			rs.LayeringRules.MinLayersCold = n
		case "maxLayersHot":
			rs.LayeringRules.MaxLayersHot = n
		}
	case "colorRules":
		if parts[1] == "maxColors" {
			n, err := asInt(newValue, path)
			if err != nil {
				return nil, err
			}
			rs.ColorRules.MaxColors = n
		} else {
			b, err := asBool(newValue, path)
			if err != nil {
				return nil, err
			}
			if parts[1] == "requireNeutralBase" {
				rs.ColorRules.RequireNeutralBase = b
			} else {
				rs.ColorRules.AllowPatterns = b
			}
		}
	}

	return old, nil
}

// asFloat coerces JSON-decoded numbers to float64.
func asFloat(v any, path string) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, errors.Validationf("rule path %q expects a number, got %T", path, v)
}

// asInt coerces JSON-decoded numbers to int, rejecting fractional values.
func asInt(v any, path string) (int, error) {
	f, err := asFloat(v, path)
	if err != nil {
		return 0, errors.Validationf("rule path %q expects an integer, got %T", path, v)
	}
	if f != math.Trunc(f) {
		return 0, errors.Validationf("rule path %q expects an integer, got %v", path, f)
	}
	return int(f), nil
}

func asBool(v any, path string) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, errors.Validationf("rule path %q expects a boolean, got %T", path, v)
	}
	return b, nil
}

// MaterialClimatePath builds the canonical rule path for one material leaf.
func MaterialClimatePath(material, leaf string) string {
	return fmt.Sprintf("materialClimateRules.%s.%s", material, leaf)
}
