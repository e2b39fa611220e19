package character

import (
	"context"
	"strings"

	"github.com/KirkDiggler/gurps-api/internal/catalog"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

// catalogSkillPoints is what a skill picked from the catalog starts with
const catalogSkillPoints = 1

// GetSummary computes the combat view of a stored sheet
func (o *Orchestrator) GetSummary(ctx context.Context, input *character.GetSummaryInput) (*character.GetSummaryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Summarize(ctx, &engine.SummarizeInput{Character: c})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to summarize character %s", c.ID)
	}

	return &character.GetSummaryOutput{Summary: out.Summary}, nil
}

// RollSkill rolls 3d6 against one of the character's skills
func (o *Orchestrator) RollSkill(ctx context.Context, input *character.RollSkillInput) (*character.RollSkillOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SkillID == "" {
		return nil, errors.InvalidArgument("skill ID is required")
	}

	c, err := o.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.RollSkill(ctx, &engine.RollSkillInput{
		Character: c,
		SkillID:   input.SkillID,
		Modifier:  input.Modifier,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll skill")
	}

	return &character.RollSkillOutput{Roll: out.Result}, nil
}

// RollDamage rolls the character's thrust or swing line
func (o *Orchestrator) RollDamage(ctx context.Context, input *character.RollDamageInput) (*character.RollDamageOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("kind", input.Kind, []engine.DamageKind{engine.DamageThrust, engine.DamageSwing}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	c, err := o.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.RollDamage(ctx, &engine.RollDamageInput{
		Character: c,
		Kind:      input.Kind,
		Bonus:     input.Bonus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll damage")
	}

	return &character.RollDamageOutput{Roll: out.Result}, nil
}

// ListCatalog returns the loaded catalog
func (o *Orchestrator) ListCatalog(_ context.Context, input *character.ListCatalogInput) (*character.ListCatalogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return &character.ListCatalogOutput{Catalog: o.catalog}, nil
}

// AddFromCatalog copies a predefined option onto a sheet
func (o *Orchestrator) AddFromCatalog(ctx context.Context, input *character.AddFromCatalogInput) (*character.AddFromCatalogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	kind := catalog.Kind(strings.ToLower(string(input.Kind)))
	errors.ValidateEnum("kind", kind, []catalog.Kind{catalog.KindAdvantage, catalog.KindDisadvantage, catalog.KindSkill}, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	patch, err := o.catalogPatch(kind, input.Name)
	if err != nil {
		return nil, err
	}

	applied, err := o.applyPatch(ctx, input.CharacterID, patch)
	if err != nil {
		return nil, err
	}

	return &character.AddFromCatalogOutput{
		Character: applied.Character,
		Ledger:    applied.Ledger,
	}, nil
}

func (o *Orchestrator) catalogPatch(kind catalog.Kind, name string) (*engine.Patch, error) {
	patch := &engine.Patch{}

	switch kind {
	case catalog.KindAdvantage:
		a, ok := o.catalog.FindAdvantage(name)
		if !ok {
			return nil, notInCatalog(kind, name)
		}
		patch.Advantages.Add = []gurps.Advantage{{Name: a.Name, Cost: a.Cost, Description: a.Description}}
	case catalog.KindDisadvantage:
		d, ok := o.catalog.FindDisadvantage(name)
		if !ok {
			return nil, notInCatalog(kind, name)
		}
		patch.Disadvantages.Add = []gurps.Disadvantage{{Name: d.Name, Cost: d.Cost, Description: d.Description}}
	case catalog.KindSkill:
		s, ok := o.catalog.FindSkill(name)
		if !ok {
			return nil, notInCatalog(kind, name)
		}
		patch.Skills.Add = []gurps.Skill{{
			Name:        s.Name,
			Attribute:   s.Attribute,
			Difficulty:  s.Difficulty,
			Points:      catalogSkillPoints,
			Description: s.Description,
		}}
	}

	return patch, nil
}

func notInCatalog(kind catalog.Kind, name string) error {
	return errors.NotFoundf("%s %q is not in the catalog", kind, name).
		WithMeta("kind", string(kind)).
		WithMeta("name", name)
}
