// Package taxonomy defines the closed enumerations used to describe styling
// contexts: aesthetics, formality levels, activities, weather, moods, and
// themes. All sets are fixed at build time.
package taxonomy

import "strings"

// StyleAesthetic identifies a named fashion aesthetic.
type StyleAesthetic string

// The full set of supported aesthetics.
const (
	AestheticMinimalist     StyleAesthetic = "Minimalist"
	AestheticOldMoney       StyleAesthetic = "Old Money"
	AestheticStreetwear     StyleAesthetic = "Streetwear"
	AestheticBusinessCasual StyleAesthetic = "Business Casual"
	AestheticPreppy         StyleAesthetic = "Preppy"
	AestheticBohemian       StyleAesthetic = "Bohemian"
	AestheticGrunge         StyleAesthetic = "Grunge"
	AestheticAthleisure     StyleAesthetic = "Athleisure"
	AestheticClassic        StyleAesthetic = "Classic"
	AestheticRomantic       StyleAesthetic = "Romantic"
	AestheticEdgy           StyleAesthetic = "Edgy"
	AestheticCottagecore    StyleAesthetic = "Cottagecore"
	AestheticDarkAcademia   StyleAesthetic = "Dark Academia"
	AestheticLightAcademia  StyleAesthetic = "Light Academia"
	AestheticY2K            StyleAesthetic = "Y2K"
	AestheticCoastal        StyleAesthetic = "Coastal"
	AestheticWorkwear       StyleAesthetic = "Workwear"
	AestheticAvantGarde     StyleAesthetic = "Avant-Garde"
	AestheticGorpcore       StyleAesthetic = "Gorpcore"
	AestheticSoftGirl       StyleAesthetic = "Soft Girl"
)

//nolint:gochecknoglobals // Static enumeration table.
var allAesthetics = []StyleAesthetic{
	AestheticMinimalist, AestheticOldMoney, AestheticStreetwear,
	AestheticBusinessCasual, AestheticPreppy, AestheticBohemian,
	AestheticGrunge, AestheticAthleisure, AestheticClassic,
	AestheticRomantic, AestheticEdgy, AestheticCottagecore,
	AestheticDarkAcademia, AestheticLightAcademia, AestheticY2K,
	AestheticCoastal, AestheticWorkwear, AestheticAvantGarde,
	AestheticGorpcore, AestheticSoftGirl,
}

// Aesthetics returns the full list of supported aesthetics.
func Aesthetics() []StyleAesthetic {
	out := make([]StyleAesthetic, len(allAesthetics))
	copy(out, allAesthetics)
	return out
}

// ParseAesthetic resolves a name to a StyleAesthetic, case-insensitively.
func ParseAesthetic(name string) (StyleAesthetic, bool) {
	for _, a := range allAesthetics {
		if strings.EqualFold(string(a), name) {
			return a, true
		}
	}
	return "", false
}

// Subtype is one value from one of the context subtype families.
// The families are disjoint: a formality level is never a valid activity.
type Subtype string

// FormalityLevel values.
const (
	FormalityCasual         Subtype = "Casual"
	FormalitySmartCasual    Subtype = "Smart Casual"
	FormalityBusinessFormal Subtype = "Business Formal"
	FormalityCocktail       Subtype = "Cocktail"
	FormalityBlackTie       Subtype = "Black Tie"
)

// ActivitySubtype values.
const (
	ActivityWork     Subtype = "Work"
	ActivityBusiness Subtype = "Business"
	ActivityDate     Subtype = "Date"
	ActivityWorkout  Subtype = "Workout"
	ActivityTravel   Subtype = "Travel"
	ActivityErrands  Subtype = "Errands"
	ActivityParty    Subtype = "Party"
	ActivityWedding  Subtype = "Wedding"
	ActivityOutdoor  Subtype = "Outdoor"
	ActivityLounge   Subtype = "Lounge"
)

// WeatherSubtype values.
const (
	WeatherHot   Subtype = "Hot"
	WeatherWarm  Subtype = "Warm"
	WeatherMild  Subtype = "Mild"
	WeatherCool  Subtype = "Cool"
	WeatherCold  Subtype = "Cold"
	WeatherRainy Subtype = "Rainy"
	WeatherSnowy Subtype = "Snowy"
	WeatherWindy Subtype = "Windy"
)

// MoodSubtype values.
const (
	MoodConfident   Subtype = "Confident"
	MoodRelaxed     Subtype = "Relaxed"
	MoodPlayful     Subtype = "Playful"
	MoodElegant     Subtype = "Elegant"
	MoodBold        Subtype = "Bold"
	MoodUnderstated Subtype = "Understated"
)

// ThemeSubtype values. Themes are optional on a context.
const (
	ThemeHoliday    Subtype = "Holiday"
	ThemeFestival   Subtype = "Festival"
	ThemeBeach      Subtype = "Beach"
	ThemeGala       Subtype = "Gala"
	ThemeGraduation Subtype = "Graduation"
	ThemeInterview  Subtype = "Interview"
)

// Family identifies which subtype family a value belongs to.
type Family string

// Subtype families.
const (
	FamilyFormality Family = "formality"
	FamilyActivity  Family = "activity"
	FamilyWeather   Family = "weather"
	FamilyMood      Family = "mood"
	FamilyTheme     Family = "theme"
)

//nolint:gochecknoglobals // Static enumeration tables.
var subtypeFamilies = map[Family][]Subtype{
	FamilyFormality: {FormalityCasual, FormalitySmartCasual, FormalityBusinessFormal, FormalityCocktail, FormalityBlackTie},
	FamilyActivity:  {ActivityWork, ActivityBusiness, ActivityDate, ActivityWorkout, ActivityTravel, ActivityErrands, ActivityParty, ActivityWedding, ActivityOutdoor, ActivityLounge},
	FamilyWeather:   {WeatherHot, WeatherWarm, WeatherMild, WeatherCool, WeatherCold, WeatherRainy, WeatherSnowy, WeatherWindy},
	FamilyMood:      {MoodConfident, MoodRelaxed, MoodPlayful, MoodElegant, MoodBold, MoodUnderstated},
	FamilyTheme:     {ThemeHoliday, ThemeFestival, ThemeBeach, ThemeGala, ThemeGraduation, ThemeInterview},
}

// Subtypes returns all values in a family.
func Subtypes(f Family) []Subtype {
	values := subtypeFamilies[f]
	out := make([]Subtype, len(values))
	copy(out, values)
	return out
}

// ParseSubtype resolves a name within a family, case-insensitively.
func ParseSubtype(f Family, name string) (Subtype, bool) {
	for _, s := range subtypeFamilies[f] {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

// FamilyOf reports which family a subtype belongs to.
func FamilyOf(s Subtype) (Family, bool) {
	for f, values := range subtypeFamilies {
		for _, v := range values {
			if v == s {
				return f, true
			}
		}
	}
	return "", false
}
