package domain

import "github.com/utafrali/JewelryGo/pkg/validator"

// MetalType is the metal a variant is cast in. Comparisons are case-sensitive.
type MetalType string

// Supported metal types.
const (
	MetalRoseGold   MetalType = "Rose Gold"
	MetalWhiteGold  MetalType = "White Gold"
	MetalYellowGold MetalType = "Yellow Gold"
	MetalPlatinum   MetalType = "Platinum"
)

// MetalTypes returns the supported metal types in display order.
func MetalTypes() []MetalType {
	return []MetalType{MetalRoseGold, MetalWhiteGold, MetalYellowGold, MetalPlatinum}
}

// IsValidMetalType reports whether s names a supported metal type.
func IsValidMetalType(s string) bool {
	for _, m := range MetalTypes() {
		if string(m) == s {
			return true
		}
	}
	return false
}

// ImageToken is the single-letter marker used in media filenames, e.g. the
// "W" in "ring-W2.jpg". It returns "" for unknown metals.
func (m MetalType) ImageToken() string {
	switch m {
	case MetalRoseGold:
		return "R"
	case MetalWhiteGold:
		return "W"
	case MetalYellowGold:
		return "Y"
	case MetalPlatinum:
		return "P"
	default:
		return ""
	}
}

func init() {
	validator.RegisterString("metaltype", IsValidMetalType)
}
