package codec

import (
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// Normalize repairs a decoded record in place: nil collections become
// empty, entries without ids get fresh ones and missing override flags
// are inferred from the stored values. It returns the number of ids
// filled.
func Normalize(c *gurps.Character, gen idgen.Generator) int {
	if c.Overrides == nil {
		o := rules.InferOverrides(c.Attributes(), c.Secondary())
		c.Overrides = &o
	}

	c.Advantages = orEmpty(c.Advantages)
	c.Disadvantages = orEmpty(c.Disadvantages)
	c.Skills = orEmpty(c.Skills)
	c.Equipment = orEmpty(c.Equipment)
	c.Spells = orEmpty(c.Spells)
	c.Languages = orEmpty(c.Languages)
	c.Status = orEmpty(c.Status)
	c.Reputation = orEmpty(c.Reputation)
	c.CulturalFamiliarities = orEmpty(c.CulturalFamiliarities)
	c.ReactionModifiers = orEmpty(c.ReactionModifiers)
	c.EquipmentSimple = orEmpty(c.EquipmentSimple)

	filled := 0
	filled += gurps.FillIDs(c.Advantages, idgen.NextFunc(gen, idgen.PrefixAdvantage))
	filled += gurps.FillIDs(c.Disadvantages, idgen.NextFunc(gen, idgen.PrefixDisadvantage))
	filled += gurps.FillIDs(c.Skills, idgen.NextFunc(gen, idgen.PrefixSkill))
	filled += gurps.FillIDs(c.Equipment, idgen.NextFunc(gen, idgen.PrefixEquipment))
	filled += gurps.FillIDs(c.Spells, idgen.NextFunc(gen, idgen.PrefixSpell))
	filled += gurps.FillIDs(c.Languages, idgen.NextFunc(gen, idgen.PrefixLanguage))
	filled += gurps.FillIDs(c.Status, idgen.NextFunc(gen, idgen.PrefixStatus))
	filled += gurps.FillIDs(c.Reputation, idgen.NextFunc(gen, idgen.PrefixReputation))
	filled += gurps.FillIDs(c.CulturalFamiliarities, idgen.NextFunc(gen, idgen.PrefixCulture))
	filled += gurps.FillIDs(c.ReactionModifiers, idgen.NextFunc(gen, idgen.PrefixReaction))
	return filled
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
