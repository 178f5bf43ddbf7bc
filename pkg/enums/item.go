package enums

import "fmt"

// ItemCategory is the high-level category used for polymorphic attributes.
type ItemCategory string

const (
	ItemCategoryPokemonCard ItemCategory = "pokemon_card"
	ItemCategoryClothing    ItemCategory = "clothing"
	ItemCategoryVideoGame   ItemCategory = "video_game"
	ItemCategoryOther       ItemCategory = "other"
)

var validItemCategories = []ItemCategory{
	ItemCategoryPokemonCard,
	ItemCategoryClothing,
	ItemCategoryVideoGame,
	ItemCategoryOther,
}

// String implements fmt.Stringer.
func (c ItemCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ItemCategory.
func (c ItemCategory) IsValid() bool {
	for _, candidate := range validItemCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseItemCategory converts raw input into an ItemCategory.
func ParseItemCategory(value string) (ItemCategory, error) {
	for _, candidate := range validItemCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item category %q", value)
}

// ItemStatus is a lifecycle flag for quick filtering.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusLowStock ItemStatus = "low_stock"
	ItemStatusArchived ItemStatus = "archived"
)

var validItemStatuses = []ItemStatus{
	ItemStatusActive,
	ItemStatusLowStock,
	ItemStatusArchived,
}

// String implements fmt.Stringer.
func (s ItemStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemStatus.
func (s ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
