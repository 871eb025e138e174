package domain

import "github.com/stylesyncapp/stylesync-server/internal/taxonomy"

// OutfitContext describes the styling situation an outfit is evaluated
// against: one declared aesthetic plus one subtype from each context family,
// with an optional theme.
type OutfitContext struct {
	Aesthetic taxonomy.StyleAesthetic `json:"aesthetic"`
	Formality taxonomy.Subtype        `json:"formality"`
	Activity  taxonomy.Subtype        `json:"activity"`
	Weather   taxonomy.Subtype        `json:"weather"`
	Mood      taxonomy.Subtype        `json:"mood"`
	Theme     taxonomy.Subtype        `json:"theme,omitempty"`

	// TemperatureF is the expected temperature, when known. Used together
	// with the dynamic material climate rules; zero value means "not
	// supplied" and is distinguished by HasTemperature.
	TemperatureF   float64 `json:"temperature_f,omitempty"`
	HasTemperature bool    `json:"has_temperature,omitempty"`
	Season         string  `json:"season,omitempty"`
}

// Subtypes returns the context's declared subtype set, omitting empty slots.
func (c OutfitContext) Subtypes() []taxonomy.Subtype {
	out := make([]taxonomy.Subtype, 0, 5)
	for _, s := range []taxonomy.Subtype{c.Formality, c.Activity, c.Weather, c.Mood, c.Theme} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// HasSubtype reports whether the context declares the given subtype.
func (c OutfitContext) HasSubtype(s taxonomy.Subtype) bool {
	for _, v := range c.Subtypes() {
		if v == s {
			return true
		}
	}
	return false
}
