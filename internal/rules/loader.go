package rules

import (
	_ "embed"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
	"github.com/stylesyncapp/stylesync-server/internal/errors"
	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

//go:embed defaults.yaml
var defaultTables []byte

// Tables is the on-disk shape of the static rule configuration.
type Tables struct {
	StyleRules    []domain.StyleCompatibilityRule    `yaml:"style_rules"`
	MaterialRules []domain.MaterialCompatibilityRule `yaml:"material_rules"`
}

// LoadDefault builds the index from the embedded rule tables.
func LoadDefault() (*Index, error) {
	return loadBytes(defaultTables)
}

// LoadFile builds the index from a YAML rule table file. Used when a
// deployment overrides the embedded defaults.
func LoadFile(path string) (*Index, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- Rule table path comes from operator config.
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeConfig, "read rule tables %q", path)
	}
	return loadBytes(data)
}

func loadBytes(data []byte) (*Index, error) {
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "parse rule tables")
	}
	if err := validateTables(&tables); err != nil {
		return nil, err
	}
	return NewIndex(tables.StyleRules, tables.MaterialRules)
}

// validateTables rejects rows referencing unknown aesthetics or subtypes.
// Catching these at startup beats silently never matching at evaluation time.
func validateTables(tables *Tables) error {
	for i, rule := range tables.StyleRules {
		if _, ok := taxonomy.ParseAesthetic(string(rule.StyleAesthetic)); !ok {
			return errors.Configf("style rule %d: unknown aesthetic %q", i, rule.StyleAesthetic)
		}
		if len(rule.ApplicableSubtypes) == 0 {
			return errors.Configf("style rule %d (%s): no applicable subtypes", i, rule.StyleAesthetic)
		}
		for _, subtype := range rule.ApplicableSubtypes {
			if _, ok := taxonomy.FamilyOf(subtype); !ok {
				return errors.Configf("style rule %d (%s): unknown subtype %q", i, rule.StyleAesthetic, subtype)
			}
		}
		switch rule.Importance {
		case domain.ImportanceStrict, domain.ImportanceModerate, domain.ImportanceLoose:
		default:
			return errors.Configf("style rule %d (%s): unknown importance %q", i, rule.StyleAesthetic, rule.Importance)
		}
		switch rule.RiskLevel {
		case domain.RiskHigh, domain.RiskMedium, domain.RiskLow:
		default:
			return errors.Configf("style rule %d (%s): unknown risk level %q", i, rule.StyleAesthetic, rule.RiskLevel)
		}
	}
	return nil
}
