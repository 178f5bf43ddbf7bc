package enums

import "fmt"

// ProductType classifies sealed reference products.
type ProductType string

const (
	ProductTypeBoosterPack ProductType = "booster_pack"
	ProductTypeBoosterBox  ProductType = "booster_box"
	ProductTypeETB         ProductType = "etb"
	ProductTypeThemeDeck   ProductType = "theme_deck"
	ProductTypeTin         ProductType = "tin"
	ProductTypeOther       ProductType = "other"
)

var validProductTypes = []ProductType{
	ProductTypeBoosterPack,
	ProductTypeBoosterBox,
	ProductTypeETB,
	ProductTypeThemeDeck,
	ProductTypeTin,
	ProductTypeOther,
}

// String implements fmt.Stringer.
func (p ProductType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductType.
func (p ProductType) IsValid() bool {
	for _, candidate := range validProductTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductType converts raw input into a ProductType.
func ParseProductType(value string) (ProductType, error) {
	for _, candidate := range validProductTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product type %q", value)
}
