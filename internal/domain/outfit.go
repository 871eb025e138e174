package domain

import "strings"

// ClothingItem is a single garment in a candidate outfit. Items are supplied
// by the caller and consumed read-only; only the fields relevant to rule
// matching are modeled here.
type ClothingItem struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Subtype      string `json:"subtype,omitempty"`
	Color        string `json:"color,omitempty"`
	Material     string `json:"material,omitempty"`
	Pattern      string `json:"pattern,omitempty"`
	Fit          string `json:"fit,omitempty"`
	SleeveLength string `json:"sleeve_length,omitempty"`
}

// Identity returns the lowercased text used for keyword matching: the item's
// name, type, and subtype joined together. Matching against rule keywords is
// substring-based, not whole-word (see KeywordMatches).
func (c ClothingItem) Identity() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.Type, c.Subtype} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Ref returns a stable reference for reporting this item in issues:
// the ID when present, otherwise the name, otherwise the type.
func (c ClothingItem) Ref() string {
	if c.ID != "" {
		return c.ID
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Type
}

// Outfit is an unordered collection of clothing items supplied by an
// external generator for validation.
type Outfit struct {
	Items []ClothingItem `json:"items"`
}

// DistinctColors returns the set of distinct lowercased item colors, in
// first-seen order. Items without a color are skipped.
func (o Outfit) DistinctColors() []string {
	seen := make(map[string]bool, len(o.Items))
	colors := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.Color == "" {
			continue
		}
		c := strings.ToLower(item.Color)
		if !seen[c] {
			seen[c] = true
			colors = append(colors, c)
		}
	}
	return colors
}

//nolint:gochecknoglobals // Static lookup table for neutral color detection.
var neutralColors = map[string]bool{
	"black": true, "white": true, "gray": true, "grey": true,
	"navy": true, "beige": true, "tan": true, "cream": true,
	"brown": true, "khaki": true, "ivory": true, "charcoal": true,
	"off-white": true, "taupe": true,
}

// IsNeutralColor reports whether a color counts as a neutral base.
func IsNeutralColor(color string) bool {
	return neutralColors[strings.ToLower(strings.TrimSpace(color))]
}

// HasNeutralItem reports whether any item in the outfit is neutral-colored.
func (o Outfit) HasNeutralItem() bool {
	for _, item := range o.Items {
		if IsNeutralColor(item.Color) {
			return true
		}
	}
	return false
}

// KeywordMatches reports whether the identity text matches any keyword in the
// list. Matching is case-insensitive substring containment, deliberately not
// whole-word: the identity matching a keyword ("camo cargo pants" vs "cargo"),
// or a word of the identity appearing inside a keyword ("Logo Hoodie" vs
// "logos"). The first matching keyword is returned for reporting.
func KeywordMatches(identity string, keywords []string) (string, bool) {
	words := strings.Fields(identity)
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			continue
		}
		if strings.Contains(identity, k) {
			return kw, true
		}
		for _, w := range words {
			// Short words ("a", "top") would match far too many keywords.
			if len(w) >= 4 && strings.Contains(k, w) {
				return kw, true
			}
		}
	}
	return "", false
}
