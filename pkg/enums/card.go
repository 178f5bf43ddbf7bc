package enums

import "fmt"

// CardRarity captures collectible card rarity tiers.
type CardRarity string

const (
	CardRarityCommon     CardRarity = "common"
	CardRarityUncommon   CardRarity = "uncommon"
	CardRarityRare       CardRarity = "rare"
	CardRarityUltraRare  CardRarity = "ultra_rare"
	CardRaritySecretRare CardRarity = "secret_rare"
)

var validCardRarities = []CardRarity{
	CardRarityCommon,
	CardRarityUncommon,
	CardRarityRare,
	CardRarityUltraRare,
	CardRaritySecretRare,
}

// String implements fmt.Stringer.
func (r CardRarity) String() string {
	return string(r)
}

// IsValid reports whether the value is a known CardRarity.
func (r CardRarity) IsValid() bool {
	for _, candidate := range validCardRarities {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseCardRarity converts raw input into a CardRarity.
func ParseCardRarity(value string) (CardRarity, error) {
	for _, candidate := range validCardRarities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card rarity %q", value)
}

// CardFinish captures card printing finishes.
type CardFinish string

const (
	CardFinishNonHolo     CardFinish = "non_holo"
	CardFinishHolo        CardFinish = "holo"
	CardFinishReverseHolo CardFinish = "reverse_holo"
	CardFinishFullArt     CardFinish = "full_art"
)

var validCardFinishes = []CardFinish{
	CardFinishNonHolo,
	CardFinishHolo,
	CardFinishReverseHolo,
	CardFinishFullArt,
}

// String implements fmt.Stringer.
func (f CardFinish) String() string {
	return string(f)
}

// IsValid reports whether the value is a known CardFinish.
func (f CardFinish) IsValid() bool {
	for _, candidate := range validCardFinishes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseCardFinish converts raw input into a CardFinish.
func ParseCardFinish(value string) (CardFinish, error) {
	for _, candidate := range validCardFinishes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card finish %q", value)
}
