// Package engine defines the recalculation pipeline that keeps a GURPS
// sheet consistent after every change.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/gurps-api/internal/engine Engine

import (
	"context"
)

// Engine applies changes to a character and derives everything that
// depends on them. Implementations never mutate the record they are given.
type Engine interface {
	// Apply validates a patch, applies it to a copy of the character and
	// runs reconciliation, skill resolution and the point ledger.
	Apply(ctx context.Context, input *ApplyInput) (*ApplyOutput, error)

	// Recalculate refreshes lift, skill caches and unspent points without
	// changing any player-entered value. Used after imports.
	Recalculate(ctx context.Context, input *RecalculateInput) (*RecalculateOutput, error)

	// Summarize computes the read-only combat view at the current load.
	Summarize(ctx context.Context, input *SummarizeInput) (*SummarizeOutput, error)

	// RollSkill makes a 3d6 success roll against a skill
	RollSkill(ctx context.Context, input *RollSkillInput) (*RollSkillOutput, error)

	// RollDamage rolls the character's thrust or swing dice
	RollDamage(ctx context.Context, input *RollDamageInput) (*RollDamageOutput, error)
}
