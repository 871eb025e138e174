package evaluator

import (
	"fmt"
	"strings"

	"github.com/stylesyncapp/stylesync-server/internal/domain"
)

// Category is the functional slot an item fills in an outfit.
type Category string

// Functional categories.
const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryFootwear  Category = "footwear"
	CategoryAccessory Category = "accessory"
)

// Outfit size bounds enforced structurally.
const (
	MinOutfitItems = 3
	MaxOutfitItems = 6
)

// categoryKeywords is the fixed classification table. Order matters:
// "bootcut jeans" must classify as a bottom before the footwear keyword
// "boot" gets a chance to match.
//
//nolint:gochecknoglobals // Static classification table.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryOuterwear, []string{
		"jacket", "blazer", "coat", "cardigan", "parka", "windbreaker",
		"bomber", "trench", "puffer", "anorak", "shacket",
	}},
	{CategoryBottom, []string{
		"pants", "trousers", "slacks", "jeans", "shorts", "skirt", "chinos",
		"leggings", "joggers", "culottes", "sweatpants", "cargos",
	}},
	{CategoryFootwear, []string{
		"shoe", "sneaker", "boot", "loafer", "heel", "sandal", "flip flop",
		"trainer", "moccasin", "mule", "pump", "espadrille", "cleat", "clog",
	}},
	{CategoryTop, []string{
		"shirt", "blouse", "tee", "t-shirt", "sweater", "hoodie", "polo",
		"tank", "turtleneck", "henley", "jersey", "camisole", "pullover",
		"crewneck", "dress", "bodysuit", "vest",
	}},
	{CategoryAccessory, []string{
		"belt", "watch", "scarf", "hat", "cap", "bag", "necklace", "bracelet",
		"earring", "sunglasses", "tie", "pocket square", "glove", "beanie",
		"ring", "brooch",
	}},
}

// Classify assigns an item to exactly one functional category by keyword
// matching against its name/type/subtype text. Items matching nothing fall
// through to accessory.
func Classify(item domain.ClothingItem) Category {
	identity := item.Identity()
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(identity, kw) {
				return entry.category
			}
		}
	}
	return CategoryAccessory
}

// CountByCategory tallies the outfit's items per category.
func CountByCategory(outfit domain.Outfit) map[Category]int {
	counts := make(map[Category]int, 5)
	for _, item := range outfit.Items {
		counts[Classify(item)]++
	}
	return counts
}

// CheckStructure enforces the outfit's cardinality invariants and returns
// every violation as a hard structural issue. It never stops at the first
// problem: the caller gets the complete list in one pass.
func CheckStructure(outfit domain.Outfit) []domain.Issue {
	var issues []domain.Issue

	n := len(outfit.Items)
	if n < MinOutfitItems || n > MaxOutfitItems {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueStructural,
			Severity: domain.SeverityHard,
			Reason:   fmt.Sprintf("wrong item count: %d (expected %d-%d)", n, MinOutfitItems, MaxOutfitItems),
		})
	}

	counts := CountByCategory(outfit)

	if counts[CategoryBottom] != 1 {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueStructural,
			Severity: domain.SeverityHard,
			ItemRefs: refsInCategory(outfit, CategoryBottom),
			Reason:   fmt.Sprintf("expected exactly 1 bottom, found %d", counts[CategoryBottom]),
		})
	}

	if counts[CategoryFootwear] != 1 {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueStructural,
			Severity: domain.SeverityHard,
			ItemRefs: refsInCategory(outfit, CategoryFootwear),
			Reason:   fmt.Sprintf("expected exactly 1 footwear item, found %d", counts[CategoryFootwear]),
		})
	}

	if counts[CategoryTop]+counts[CategoryOuterwear] == 0 {
		issues = append(issues, domain.Issue{
			Kind:     domain.IssueStructural,
			Severity: domain.SeverityHard,
			Reason:   "no top-layer item: need at least one top or outerwear piece",
		})
	}

	return issues
}

// refsInCategory collects item references for reporting, in outfit order.
func refsInCategory(outfit domain.Outfit, cat Category) []string {
	var refs []string
	for _, item := range outfit.Items {
		if Classify(item) == cat {
			refs = append(refs, item.Ref())
		}
	}
	return refs
}
