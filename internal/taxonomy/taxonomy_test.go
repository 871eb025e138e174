package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAesthetic_CaseInsensitive(t *testing.T) {
	a, ok := ParseAesthetic("old money")
	require.True(t, ok)
	assert.Equal(t, AestheticOldMoney, a)

	a, ok = ParseAesthetic("BUSINESS CASUAL")
	require.True(t, ok)
	assert.Equal(t, AestheticBusinessCasual, a)
}

func TestParseAesthetic_Unknown(t *testing.T) {
	_, ok := ParseAesthetic("normcore")
	assert.False(t, ok)

	_, ok = ParseAesthetic("")
	assert.False(t, ok)
}

func TestAesthetics_ReturnsCopy(t *testing.T) {
	first := Aesthetics()
	first[0] = "Mutated"

	second := Aesthetics()
	assert.Equal(t, AestheticMinimalist, second[0])
}

func TestParseSubtype_WithinFamily(t *testing.T) {
	s, ok := ParseSubtype(FamilyActivity, "business")
	require.True(t, ok)
	assert.Equal(t, ActivityBusiness, s)

	s, ok = ParseSubtype(FamilyFormality, "business formal")
	require.True(t, ok)
	assert.Equal(t, FormalityBusinessFormal, s)
}

func TestParseSubtype_WrongFamily(t *testing.T) {
	// "Cold" is a weather subtype, never an activity.
	_, ok := ParseSubtype(FamilyActivity, "Cold")
	assert.False(t, ok)
}

func TestFamilyOf(t *testing.T) {
	f, ok := FamilyOf(WeatherSnowy)
	require.True(t, ok)
	assert.Equal(t, FamilyWeather, f)

	f, ok = FamilyOf(ThemeGala)
	require.True(t, ok)
	assert.Equal(t, FamilyTheme, f)

	_, ok = FamilyOf("Not A Subtype")
	assert.False(t, ok)
}

func TestSubtypeFamilies_Disjoint(t *testing.T) {
	seen := make(map[Subtype]Family)
	for _, f := range []Family{FamilyFormality, FamilyActivity, FamilyWeather, FamilyMood, FamilyTheme} {
		for _, s := range Subtypes(f) {
			prev, dup := seen[s]
			require.False(t, dup, "subtype %q appears in both %q and %q", s, prev, f)
			seen[s] = f
		}
	}
}
