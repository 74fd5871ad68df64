package enums

import "fmt"

// CardType identifies the carrier that issued a prepaid phone card.
type CardType string

const (
	CardTypeViettel   CardType = "VIETTEL"
	CardTypeVinaphone CardType = "VINAPHONE"
	CardTypeMobifone  CardType = "MOBIFONE"
)

var validCardTypes = []CardType{
	CardTypeViettel,
	CardTypeVinaphone,
	CardTypeMobifone,
}

// String implements fmt.Stringer.
func (c CardType) String() string {
	return string(c)
}

// IsValid reports whether the value is a supported carrier.
func (c CardType) IsValid() bool {
	for _, candidate := range validCardTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCardType converts raw input into a CardType.
func ParseCardType(value string) (CardType, error) {
	for _, candidate := range validCardTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid card type %q", value)
}
