// Package rpgtoolkit implements engine.Engine on top of the rpg-toolkit
// dice and event modules.
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// Adapter implements the engine.Engine interface using rpg-toolkit
type Adapter struct {
	eventBus      events.EventBus
	diceRoller    dice.Roller
	idGen         idgen.Generator
	policy        rules.OverridePolicy
	includeSocial bool
}

// AdapterConfig contains configuration for creating a new Adapter
type AdapterConfig struct {
	EventBus    events.EventBus
	DiceRoller  dice.Roller
	IDGenerator idgen.Generator
	// OverridePolicy defaults to rules.PolicyExplicit
	OverridePolicy rules.OverridePolicy
	// IncludeSocialCost folds social traits into unspent points
	IncludeSocialCost bool
}

// Validate checks that all required dependencies are provided
func (c *AdapterConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.DiceRoller == nil {
		vb.RequiredField("DiceRoller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.OverridePolicy != "" && !c.OverridePolicy.Valid() {
		vb.InvalidField("OverridePolicy", string(c.OverridePolicy))
	}
	return vb.Build()
}

// NewAdapter creates a new rpg-toolkit engine adapter
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	policy := cfg.OverridePolicy
	if policy == "" {
		policy = rules.PolicyExplicit
	}

	return &Adapter{
		eventBus:      cfg.EventBus,
		diceRoller:    cfg.DiceRoller,
		idGen:         cfg.IDGenerator,
		policy:        policy,
		includeSocial: cfg.IncludeSocialCost,
	}, nil
}

var _ engine.Engine = (*Adapter)(nil)

// Apply runs a patch through the full recalculation pipeline
func (a *Adapter) Apply(ctx context.Context, input *engine.ApplyInput) (*engine.ApplyOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.Patch == nil {
		return nil, errors.InvalidArgument("patch is required")
	}
	if err := input.Patch.Validate(); err != nil {
		return nil, err
	}

	p := input.Patch
	c := input.Character.Clone()
	ensureOverrides(c)

	applyDescriptive(c, p)

	prev := c.Attributes()
	next := patchedAttributes(prev, p)
	attributesChanged := prev != next
	if attributesChanged {
		c.SetAttributes(next)
		c.SetSecondary(rules.Reconcile(prev, next, c.Secondary(), *c.Overrides, a.policy))
	}

	applySecondary(c, p)
	for _, field := range p.ResetSecondary {
		c.SetSecondary(rules.ResetSecondary(c.Attributes(), c.Secondary(), field))
		c.Overrides.Set(field, false)
	}

	c.BasicLift = rules.BasicLift(c.ST)

	if err := a.applyLists(c, p); err != nil {
		return nil, err
	}
	if p.SyncWeight {
		c.CurrentWeight = rules.CarriedWeight(c.Equipment)
	}

	skills, skillsChanged := rules.ResolveSkills(c.Skills, c)
	c.Skills = skills

	ledger := rules.Ledger(c, a.includeSocial)
	c.UnspentPoints = c.PointTotal - ledger.Total

	a.publish(ctx, engine.EventCharacterUpdated, c, map[string]interface{}{
		"attributes_changed": attributesChanged,
		"skills_changed":     skillsChanged,
		"unspent_points":     c.UnspentPoints,
	})

	return &engine.ApplyOutput{
		Character:         c,
		Ledger:            ledger,
		AttributesChanged: attributesChanged,
		SkillsChanged:     skillsChanged,
	}, nil
}

// Recalculate refreshes every derived cache without touching player input
func (a *Adapter) Recalculate(ctx context.Context, input *engine.RecalculateInput) (*engine.RecalculateOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	c := input.Character.Clone()
	ensureOverrides(c)
	c.BasicLift = rules.BasicLift(c.ST)
	c.Skills, _ = rules.ResolveSkills(c.Skills, c)

	ledger := rules.Ledger(c, a.includeSocial)
	c.UnspentPoints = c.PointTotal - ledger.Total

	a.publish(ctx, engine.EventCharacterRecalculated, c, map[string]interface{}{
		"unspent_points": c.UnspentPoints,
	})

	return &engine.RecalculateOutput{Character: c, Ledger: ledger}, nil
}

// Summarize builds the combat view at the sheet's current weight
func (a *Adapter) Summarize(_ context.Context, input *engine.SummarizeInput) (*engine.SummarizeOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	c := input.Character
	defenses := rules.ComputeDefenses(c)
	derived := rules.Damage(c.ST)
	ledger := rules.Ledger(c, a.includeSocial)

	return &engine.SummarizeOutput{
		Summary: &engine.CombatSummary{
			CharacterID:        c.ID,
			Encumbrance:        defenses.Encumbrance.Name,
			EncumbrancePenalty: defenses.Encumbrance.Penalty,
			CurrentWeight:      c.CurrentWeight,
			CarriedWeight:      rules.CarriedWeight(c.Equipment),
			BasicLift:          rules.BasicLift(c.ST),
			Dodge:              defenses.Dodge,
			Parry:              defenses.Parry,
			Block:              defenses.Block,
			EffectiveMove:      defenses.EffectiveMove,
			DamageThrust:       c.DamageThrust,
			DamageSwing:        c.DamageSwing,
			DerivedThrust:      derived.Thrust,
			DerivedSwing:       derived.Swing,
			Ledger:             ledger,
			UnspentPoints:      c.PointTotal - ledger.Total,
		},
	}, nil
}

// ensureOverrides infers flags for records that predate them
func ensureOverrides(c *gurps.Character) {
	if c.Overrides != nil {
		return
	}
	inferred := rules.InferOverrides(c.Attributes(), c.Secondary())
	c.Overrides = &inferred
}

func (a *Adapter) publish(ctx context.Context, eventType string, c *gurps.Character, data map[string]interface{}) {
	event := events.NewGameEvent(eventType, wrapCharacter(c), nil)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := a.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish engine event",
			"event", eventType,
			"character_id", c.ID,
			"error", err)
	}
}
