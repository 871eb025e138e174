package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stylesyncapp/stylesync-server/internal/taxonomy"
)

func TestLoadDefault(t *testing.T) {
	idx, err := LoadDefault()
	require.NoError(t, err)

	assert.Greater(t, idx.MaterialCount(), 0)
	assert.NotEmpty(t, idx.StyleRules(taxonomy.AestheticOldMoney))
	assert.NotEmpty(t, idx.StyleRules(taxonomy.AestheticBusinessCasual))

	_, ok := idx.Material("silk")
	assert.True(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")

	tables := `
style_rules:
  - style_aesthetic: "Minimalist"
    applicable_subtypes: ["Work"]
    must_never_include: ["neon"]
    importance: strict
    risk_level: high
material_rules:
  - base_material: wool
    should_avoid_layering_with: ["silk"]
`
	require.NoError(t, os.WriteFile(path, []byte(tables), 0o600))

	idx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.MaterialCount())
	assert.Len(t, idx.StyleRules(taxonomy.AestheticMinimalist), 1)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBytes_UnknownAesthetic(t *testing.T) {
	_, err := loadBytes([]byte(`
style_rules:
  - style_aesthetic: "Normcore"
    applicable_subtypes: ["Work"]
    importance: strict
    risk_level: high
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown aesthetic")
}

func TestLoadBytes_UnknownSubtype(t *testing.T) {
	_, err := loadBytes([]byte(`
style_rules:
  - style_aesthetic: "Minimalist"
    applicable_subtypes: ["Skydiving"]
    importance: strict
    risk_level: high
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subtype")
}

func TestLoadBytes_BadImportance(t *testing.T) {
	_, err := loadBytes([]byte(`
style_rules:
  - style_aesthetic: "Minimalist"
    applicable_subtypes: ["Work"]
    importance: critical
    risk_level: high
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown importance")
}

func TestLoadBytes_MalformedYAML(t *testing.T) {
	_, err := loadBytes([]byte("style_rules: [unclosed"))
	assert.Error(t, err)
}

func TestLoadDefault_MaterialKeywordsAreSingleWords(t *testing.T) {
	var tables Tables
	require.NoError(t, yaml.Unmarshal(defaultTables, &tables))
	require.NotEmpty(t, tables.MaterialRules)

	// The substring matcher lets any item whose material appears inside a
	// keyword match it, so a qualifier like "coarse wool" fires on every
	// wool item. Material keywords are kept to bare material names.
	for _, rule := range tables.MaterialRules {
		for _, keywords := range [][]string{rule.MustNeverLayerWith, rule.ShouldAvoidLayeringWith, rule.CanSometimesLayerWith} {
			for _, kw := range keywords {
				assert.NotContains(t, kw, " ", "keyword %q in %s rule", kw, rule.BaseMaterial)
			}
		}
	}
}
