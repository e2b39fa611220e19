package rules

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// OverridePolicy decides how secondary characteristics react to an
// attribute change.
type OverridePolicy string

const (
	// PolicyExplicit follows per-field override flags: a field tracks its
	// default unless the player set it by hand.
	PolicyExplicit OverridePolicy = "explicit"
	// PolicyTrackDefault re-derives a field only when its stored value equals
	// the default computed from the attributes before the change. A value
	// the player typed that happens to equal the default keeps tracking.
	PolicyTrackDefault OverridePolicy = "track-default"
)

// Valid reports whether p is a known policy
func (p OverridePolicy) Valid() bool {
	return p == PolicyExplicit || p == PolicyTrackDefault
}

// Reconcile returns the secondary characteristics after the primary
// attributes moved from prev to next. Field groups are independent: HP
// follows ST, Will and Per follow IQ, FP follows HT, speed and move follow
// DX and HT together. A group whose attributes did not change is returned
// as stored.
func Reconcile(prev, next gurps.Attributes, current gurps.Secondary, overrides gurps.Overrides, policy OverridePolicy) gurps.Secondary {
	before := DefaultSecondary(prev)
	after := DefaultSecondary(next)
	out := current

	tracks := func(overridden bool, stored, oldDefault float64) bool {
		if policy == PolicyTrackDefault {
			return stored == oldDefault
		}
		return !overridden
	}

	if prev.ST != next.ST && tracks(overrides.HP, float64(current.HP), float64(before.HP)) {
		out.HP = after.HP
	}

	if prev.IQ != next.IQ {
		if tracks(overrides.Will, float64(current.Will), float64(before.Will)) {
			out.Will = after.Will
		}
		if tracks(overrides.Per, float64(current.Per), float64(before.Per)) {
			out.Per = after.Per
		}
	}

	if prev.HT != next.HT && tracks(overrides.FP, float64(current.FP), float64(before.FP)) {
		out.FP = after.FP
	}

	if prev.DX != next.DX || prev.HT != next.HT {
		if tracks(overrides.BasicSpeed, current.BasicSpeed, before.BasicSpeed) {
			out.BasicSpeed = after.BasicSpeed
		}
		if tracks(overrides.BasicMove, float64(current.BasicMove), float64(before.BasicMove)) {
			out.BasicMove = after.BasicMove
		}
	}

	return out
}

// InferOverrides flags every secondary field whose value differs from the
// default for attrs. Records saved without flags are loaded this way.
func InferOverrides(attrs gurps.Attributes, current gurps.Secondary) gurps.Overrides {
	def := DefaultSecondary(attrs)
	return gurps.Overrides{
		HP:         current.HP != def.HP,
		Will:       current.Will != def.Will,
		Per:        current.Per != def.Per,
		FP:         current.FP != def.FP,
		BasicSpeed: current.BasicSpeed != def.BasicSpeed,
		BasicMove:  current.BasicMove != def.BasicMove,
	}
}

// ResetSecondary snaps one field back to its default for attrs
func ResetSecondary(attrs gurps.Attributes, current gurps.Secondary, field gurps.SecondaryField) gurps.Secondary {
	def := DefaultSecondary(attrs)
	out := current
	switch field {
	case gurps.SecondaryHP:
		out.HP = def.HP
	case gurps.SecondaryWill:
		out.Will = def.Will
	case gurps.SecondaryPer:
		out.Per = def.Per
	case gurps.SecondaryFP:
		out.FP = def.FP
	case gurps.SecondaryBasicSpeed:
		out.BasicSpeed = def.BasicSpeed
	case gurps.SecondaryBasicMove:
		out.BasicMove = def.BasicMove
	}
	return out
}
