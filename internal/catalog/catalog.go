// Package catalog holds the static reference list of common allergens
// shown in the allergy form. The list itself is not persisted; allergy
// rows store the chosen name as free text.
package catalog

// Other is the catalog sentinel for a free-text allergen. Selecting it
// requires the caller to supply a custom allergen name instead.
const Other = "その他"

// Common lists the allergens offered by default, matching the Japanese
// food-labeling set the service launched with.
var Common = []string{
	"卵",
	"乳",
	"小麦",
	"そば",
	"落花生",
	"えび",
	"かに",
	"大豆",
	"ごま",
	"カシューナッツ",
	"くるみ",
	"アーモンド",
}

// Contains reports whether name is one of the common allergens. The Other
// sentinel is not a real allergen and returns false.
func Contains(name string) bool {
	for _, a := range Common {
		if a == name {
			return true
		}
	}
	return false
}
