package engine

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// Event names published on the toolkit event bus
const (
	EventCharacterUpdated      = "gurps.character.updated"
	EventCharacterRecalculated = "gurps.character.recalculated"
	EventSkillRolled           = "gurps.skill.rolled"
	EventDamageRolled          = "gurps.damage.rolled"
)

// EventTypes lists every event the engine publishes
var EventTypes = []string{
	EventCharacterUpdated,
	EventCharacterRecalculated,
	EventSkillRolled,
	EventDamageRolled,
}

// ApplyInput is a patch against a character
type ApplyInput struct {
	Character *gurps.Character
	Patch     *Patch
}

// ApplyOutput carries the updated copy
type ApplyOutput struct {
	Character *gurps.Character
	Ledger    rules.PointLedger
	// AttributesChanged reports whether any primary attribute moved
	AttributesChanged bool
	// SkillsChanged reports whether any cached skill level was rewritten
	SkillsChanged bool
}

// RecalculateInput holds the record to refresh
type RecalculateInput struct {
	Character *gurps.Character
}

// RecalculateOutput carries the refreshed copy
type RecalculateOutput struct {
	Character *gurps.Character
	Ledger    rules.PointLedger
}

// SummarizeInput holds the record to summarize
type SummarizeInput struct {
	Character *gurps.Character
}

// SummarizeOutput carries the combat view
type SummarizeOutput struct {
	Summary *CombatSummary
}

// CombatSummary is everything a table needs at a glance
type CombatSummary struct {
	CharacterID        string            `json:"characterId,omitempty"`
	Encumbrance        string            `json:"encumbrance"`
	EncumbrancePenalty int               `json:"encumbrancePenalty"`
	CurrentWeight      float64           `json:"currentWeight"`
	CarriedWeight      float64           `json:"carriedWeight"`
	BasicLift          int               `json:"basicLift"`
	Dodge              int               `json:"dodge"`
	Parry              int               `json:"parry"`
	Block              int               `json:"block"`
	EffectiveMove      int               `json:"effectiveMove"`
	DamageThrust       string            `json:"damageThrust"`
	DamageSwing        string            `json:"damageSwing"`
	DerivedThrust      string            `json:"derivedThrust"`
	DerivedSwing       string            `json:"derivedSwing"`
	Ledger             rules.PointLedger `json:"ledger"`
	UnspentPoints      int               `json:"unspentPoints"`
}

// RollSkillInput names the skill to roll and any situational modifier
type RollSkillInput struct {
	Character *gurps.Character
	SkillID   string
	Modifier  int
}

// RollSkillOutput carries the roll
type RollSkillOutput struct {
	Result *SkillRoll
}

// SkillRoll is the outcome of a success roll
type SkillRoll struct {
	SkillID   string `json:"skillId"`
	SkillName string `json:"skillName"`
	Target    int    `json:"target"`
	Dice      []int  `json:"dice"`
	Total     int    `json:"total"`
	Margin    int    `json:"margin"`
	Success   bool   `json:"success"`
	Critical  bool   `json:"critical"`
}

// DamageKind selects thrust or swing
type DamageKind string

// Damage kinds
const (
	DamageThrust DamageKind = "thrust"
	DamageSwing  DamageKind = "swing"
)

// RollDamageInput picks the damage line and a flat bonus
type RollDamageInput struct {
	Character *gurps.Character
	Kind      DamageKind
	Bonus     int
}

// RollDamageOutput carries the roll
type RollDamageOutput struct {
	Result *DamageRoll
}

// DamageRoll is a rolled damage line
type DamageRoll struct {
	Kind     DamageKind `json:"kind"`
	Notation string     `json:"notation"`
	Dice     []int      `json:"dice"`
	Modifier int        `json:"modifier"`
	Total    int        `json:"total"`
}
