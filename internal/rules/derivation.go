// Package rules holds the pure GURPS arithmetic: derived characteristics,
// override reconciliation, skill levels, encumbrance and the point ledger.
// Nothing here touches I/O or mutates its arguments.
package rules

import (
	"fmt"
	"math"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// BasicLift is floor(ST²/5)
func BasicLift(st int) int {
	return floorDiv(st*st, 5)
}

// BasicSpeed is (DX+HT)/4 rounded down to a quarter. With integer
// attributes the sum is already a whole number of quarters, so the result
// is exact in binary floating point.
func BasicSpeed(dx, ht int) float64 {
	return float64(dx+ht) / 4
}

// BasicMove is the default move for a basic speed
func BasicMove(speed float64) int {
	return int(math.Floor(speed))
}

// DamageDice is the thrust/swing pair in dice notation
type DamageDice struct {
	Thrust string
	Swing  string
}

// Damage derives thrust and swing dice from ST
func Damage(st int) DamageDice {
	thrustDice := max(1, floorDiv(st, 6))
	thrustMod := 0
	switch floorMod(st, 6) {
	case 3, 4, 5:
		thrustMod = 1
	case 0:
		thrustMod = -1
	}

	swingDice := max(1, floorDiv(st, 3))
	swingMod := floorMod(st, 3) // 2 → +2, 1 → +1, 0 → none

	return DamageDice{
		Thrust: FormatDice(thrustDice, thrustMod),
		Swing:  FormatDice(swingDice, swingMod),
	}
}

// FormatDice renders "{n}d", "{n}d+{m}" or "{n}d-{m}"
func FormatDice(dice, modifier int) string {
	switch {
	case modifier > 0:
		return fmt.Sprintf("%dd+%d", dice, modifier)
	case modifier < 0:
		return fmt.Sprintf("%dd%d", dice, modifier)
	default:
		return fmt.Sprintf("%dd", dice)
	}
}

// DefaultSecondary returns every secondary characteristic at its derived default
func DefaultSecondary(a gurps.Attributes) gurps.Secondary {
	speed := BasicSpeed(a.DX, a.HT)
	return gurps.Secondary{
		HP:         a.ST,
		Will:       a.IQ,
		Per:        a.IQ,
		FP:         a.HT,
		BasicSpeed: speed,
		BasicMove:  BasicMove(speed),
	}
}

// floorDiv divides rounding toward negative infinity so degenerate
// attributes below zero still follow the floor formulas.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
