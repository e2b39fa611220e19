package rules

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// EncumbranceLevel is one of the five load tiers
type EncumbranceLevel struct {
	Name         string
	Multiplier   int // ceiling as a multiple of basic lift
	Penalty      int
	DodgePenalty int
	moveTenths   int
}

// MoveMultiplier is the fraction of basic move kept at this tier
func (e EncumbranceLevel) MoveMultiplier() float64 {
	return float64(e.moveTenths) / 10
}

// Encumbrance tiers, lightest first
var (
	EncumbranceNone       = EncumbranceLevel{Name: "None", Multiplier: 1, Penalty: 0, DodgePenalty: 0, moveTenths: 10}
	EncumbranceLight      = EncumbranceLevel{Name: "Light", Multiplier: 2, Penalty: -1, DodgePenalty: -1, moveTenths: 8}
	EncumbranceMedium     = EncumbranceLevel{Name: "Medium", Multiplier: 3, Penalty: -2, DodgePenalty: -2, moveTenths: 6}
	EncumbranceHeavy      = EncumbranceLevel{Name: "Heavy", Multiplier: 6, Penalty: -3, DodgePenalty: -3, moveTenths: 4}
	EncumbranceExtraHeavy = EncumbranceLevel{Name: "X-Heavy", Multiplier: 10, Penalty: -4, DodgePenalty: -4, moveTenths: 2}

	EncumbranceLevels = []EncumbranceLevel{
		EncumbranceNone, EncumbranceLight, EncumbranceMedium, EncumbranceHeavy, EncumbranceExtraHeavy,
	}
)

// ClassifyEncumbrance returns the first tier whose ceiling holds weight.
// Loads beyond 10× lift stay Extra-Heavy; there is no heavier tier.
func ClassifyEncumbrance(weight float64, basicLift int) EncumbranceLevel {
	for _, level := range EncumbranceLevels {
		if float64(basicLift*level.Multiplier) >= weight {
			return level
		}
	}
	return EncumbranceExtraHeavy
}

// Dodge is floor(speed) + 3 + tier dodge penalty + the sheet's modifier
func Dodge(c *gurps.Character, level EncumbranceLevel) int {
	return BasicMove(c.BasicSpeed) + 3 + level.DodgePenalty + c.DodgeModifier
}

// EffectiveMove scales the stored basic move, override included, by the
// tier multiplier and rounds down.
func EffectiveMove(c *gurps.Character, level EncumbranceLevel) int {
	return floorDiv(c.BasicMove*level.moveTenths, 10)
}

// CarriedWeight totals weight × quantity over the equipment list
func CarriedWeight(items []gurps.Equipment) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Weight * float64(item.Quantity)
	}
	return total
}
