package rpgtoolkit

import (
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func applyDescriptive(c *gurps.Character, p *engine.Patch) {
	setIf(&c.Name, p.Name)
	setIf(&c.Player, p.Player)
	setIf(&c.PointTotal, p.PointTotal)
	setIf(&c.Height, p.Height)
	setIf(&c.Weight, p.Weight)
	setIf(&c.Age, p.Age)
	setIf(&c.Appearance, p.Appearance)
	setIf(&c.SizeModifier, p.SizeModifier)
	setIf(&c.TechLevel, p.TechLevel)
	setIf(&c.TechLevelCost, p.TechLevelCost)
	setIf(&c.CampaignLore, p.CampaignLore)
	setIf(&c.DamageThrust, p.DamageThrust)
	setIf(&c.DamageSwing, p.DamageSwing)
	setIf(&c.DodgeModifier, p.DodgeModifier)
	setIf(&c.ParryModifier, p.ParryModifier)
	setIf(&c.BlockModifier, p.BlockModifier)
	setIf(&c.CurrentWeight, p.CurrentWeight)
	if p.EquipmentSimple != nil {
		c.EquipmentSimple = append([]string{}, (*p.EquipmentSimple)...)
	}
}

func patchedAttributes(a gurps.Attributes, p *engine.Patch) gurps.Attributes {
	setIf(&a.ST, p.ST)
	setIf(&a.DX, p.DX)
	setIf(&a.IQ, p.IQ)
	setIf(&a.HT, p.HT)
	return a
}

// applySecondary writes explicit values and flags them as overridden
func applySecondary(c *gurps.Character, p *engine.Patch) {
	mark := func(field gurps.SecondaryField, set bool) {
		if set {
			c.Overrides.Set(field, true)
		}
	}

	setIf(&c.HP, p.HP)
	mark(gurps.SecondaryHP, p.HP != nil)
	setIf(&c.Will, p.Will)
	mark(gurps.SecondaryWill, p.Will != nil)
	setIf(&c.Per, p.Per)
	mark(gurps.SecondaryPer, p.Per != nil)
	setIf(&c.FP, p.FP)
	mark(gurps.SecondaryFP, p.FP != nil)
	setIf(&c.BasicSpeed, p.BasicSpeed)
	mark(gurps.SecondaryBasicSpeed, p.BasicSpeed != nil)
	setIf(&c.BasicMove, p.BasicMove)
	mark(gurps.SecondaryBasicMove, p.BasicMove != nil)
}

func (a *Adapter) nextID(prefix string) func() string {
	return idgen.NextFunc(a.idGen, prefix)
}

func (a *Adapter) applyLists(c *gurps.Character, p *engine.Patch) error {
	var err error
	if c.Advantages, err = applyListOp(c.Advantages, p.Advantages, a.nextID(idgen.PrefixAdvantage), nil); err != nil {
		return errors.Wrap(err, "cannot update advantages")
	}
	if c.Disadvantages, err = applyListOp(c.Disadvantages, p.Disadvantages, a.nextID(idgen.PrefixDisadvantage), nil); err != nil {
		return errors.Wrap(err, "cannot update disadvantages")
	}
	if c.Skills, err = applyListOp(c.Skills, p.Skills, a.nextID(idgen.PrefixSkill), nil); err != nil {
		return errors.Wrap(err, "cannot update skills")
	}
	if c.Equipment, err = applyListOp(c.Equipment, p.Equipment, a.nextID(idgen.PrefixEquipment), nil); err != nil {
		return errors.Wrap(err, "cannot update equipment")
	}
	if c.Spells, err = applyListOp(c.Spells, p.Spells, a.nextID(idgen.PrefixSpell), nil); err != nil {
		return errors.Wrap(err, "cannot update spells")
	}
	if c.Languages, err = applyListOp(c.Languages, p.Languages, a.nextID(idgen.PrefixLanguage), func(l *gurps.Language) {
		l.Points = rules.LanguagePoints(*l)
	}); err != nil {
		return errors.Wrap(err, "cannot update languages")
	}
	if c.Status, err = applyListOp(c.Status, p.Status, a.nextID(idgen.PrefixStatus), func(s *gurps.Status) {
		s.Points = rules.StatusPoints(s.Level)
	}); err != nil {
		return errors.Wrap(err, "cannot update status")
	}
	if c.Reputation, err = applyListOp(c.Reputation, p.Reputation, a.nextID(idgen.PrefixReputation), nil); err != nil {
		return errors.Wrap(err, "cannot update reputation")
	}
	if c.CulturalFamiliarities, err = applyListOp(c.CulturalFamiliarities, p.CulturalFamiliarities, a.nextID(idgen.PrefixCulture), nil); err != nil {
		return errors.Wrap(err, "cannot update cultural familiarities")
	}
	if c.ReactionModifiers, err = applyListOp(c.ReactionModifiers, p.ReactionModifiers, a.nextID(idgen.PrefixReaction), nil); err != nil {
		return errors.Wrap(err, "cannot update reaction modifiers")
	}
	return nil
}

// applyListOp removes, then updates, then adds. touch runs on every
// updated or added entry.
func applyListOp[T any, P gurps.Identified[T]](list []T, op engine.ListOp[T], next func() string, touch func(P)) ([]T, error) {
	if op.Empty() {
		return list, nil
	}

	out := make([]T, 0, len(list)+len(op.Add))
	if len(op.Remove) > 0 {
		drop := make(map[string]struct{}, len(op.Remove))
		for _, id := range op.Remove {
			drop[id] = struct{}{}
		}
		for i := range list {
			if _, ok := drop[P(&list[i]).EntryID()]; !ok {
				out = append(out, list[i])
			}
		}
	} else {
		out = append(out, list...)
	}

	for _, entry := range op.Update {
		id := P(&entry).EntryID()
		if id == "" {
			return nil, errors.InvalidArgument("update requires an entry id")
		}
		idx := gurps.IndexOf[T, P](out, id)
		if idx < 0 {
			return nil, errors.InvalidArgumentf("no entry with id %s", id).WithMeta("entry_id", id)
		}
		out[idx] = entry
		if touch != nil {
			touch(P(&out[idx]))
		}
	}

	for _, entry := range op.Add {
		P(&entry).SetEntryID(next())
		if touch != nil {
			touch(P(&entry))
		}
		out = append(out, entry)
	}

	return out, nil
}
