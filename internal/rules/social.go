package rules

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// FluencyPoints is the cost of one comprehension level
func FluencyPoints(f gurps.Fluency) int {
	switch f {
	case gurps.FluencyBroken:
		return 1
	case gurps.FluencyAccented:
		return 2
	case gurps.FluencyNative:
		return 3
	default:
		return 0
	}
}

// LanguagePoints prices written plus spoken fluency
func LanguagePoints(l gurps.Language) int {
	return FluencyPoints(l.WrittenLevel) + FluencyPoints(l.SpokenLevel)
}

// StatusPoints is five points per level of status
func StatusPoints(level int) int {
	return level * 5
}
