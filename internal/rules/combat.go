package rules

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// Parry is floor(DX/2) + 3 + the sheet's parry modifier
func Parry(c *gurps.Character) int {
	return floorDiv(c.DX, 2) + 3 + c.ParryModifier
}

// Block is 10 + the sheet's block modifier
func Block(c *gurps.Character) int {
	return 10 + c.BlockModifier
}

// Defenses is the active-defense view of a sheet at its current load
type Defenses struct {
	Encumbrance   EncumbranceLevel
	Dodge         int
	Parry         int
	Block         int
	EffectiveMove int
}

// ComputeDefenses evaluates encumbrance against the sheet's current
// weight. Read-only.
func ComputeDefenses(c *gurps.Character) Defenses {
	level := ClassifyEncumbrance(c.CurrentWeight, BasicLift(c.ST))
	return Defenses{
		Encumbrance:   level,
		Dodge:         Dodge(c, level),
		Parry:         Parry(c),
		Block:         Block(c),
		EffectiveMove: EffectiveMove(c, level),
	}
}
