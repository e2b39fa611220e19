package rpgtoolkit

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// GURPS damage is always in six-sided dice: "2d", "1d+2", "3d-1"
var damageNotationRegex = regexp.MustCompile(`^(\d+)d([+-]\d+)?$`)

// RollSkill rolls 3d6 against the skill's current level plus the
// situational modifier.
func (a *Adapter) RollSkill(ctx context.Context, input *engine.RollSkillInput) (*engine.RollSkillOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}
	if input.SkillID == "" {
		return nil, errors.InvalidArgument("skill id is required")
	}

	c := input.Character
	idx := gurps.IndexOf(c.Skills, input.SkillID)
	if idx < 0 {
		return nil, errors.NotFoundf("skill %s not found", input.SkillID).
			WithMeta("character_id", c.ID).
			WithMeta("skill_id", input.SkillID)
	}
	skill := c.Skills[idx]

	level, _, _ := rules.SkillLevel(skill, c)
	target := level + skill.Modifier + input.Modifier

	rolls, err := a.diceRoller.RollN(3, 6)
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll 3d6")
	}
	total := sum(rolls)

	success, critical := successRoll(total, target)
	result := &engine.SkillRoll{
		SkillID:   skill.ID,
		SkillName: skill.Name,
		Target:    target,
		Dice:      rolls,
		Total:     total,
		Margin:    target - total,
		Success:   success,
		Critical:  critical,
	}

	a.publish(ctx, engine.EventSkillRolled, c, map[string]interface{}{
		"skill_id": skill.ID,
		"target":   target,
		"total":    total,
		"success":  success,
		"critical": critical,
	})

	return &engine.RollSkillOutput{Result: result}, nil
}

// successRoll applies the 3d6 success rules. 3-4 always succeed
// critically, 5 and 6 are criticals at skill 15 and 16; 18 always fails
// critically, 17 fails and is critical at skill 15 or less, and missing by
// ten or more is a critical failure.
func successRoll(total, target int) (success, critical bool) {
	switch {
	case total <= 4:
		return true, true
	case total == 5 && target >= 15, total == 6 && target >= 16:
		return true, true
	case total == 18:
		return false, true
	case total == 17:
		return false, target <= 15
	case total-target >= 10:
		return false, true
	default:
		return total <= target, false
	}
}

// RollDamage rolls the stored thrust or swing line plus a flat bonus.
// Damage never goes below zero.
func (a *Adapter) RollDamage(ctx context.Context, input *engine.RollDamageInput) (*engine.RollDamageOutput, error) {
	if input == nil || input.Character == nil {
		return nil, errors.InvalidArgument("character is required")
	}

	var notation string
	switch input.Kind {
	case engine.DamageThrust:
		notation = input.Character.DamageThrust
	case engine.DamageSwing:
		notation = input.Character.DamageSwing
	default:
		return nil, errors.InvalidArgumentf("unknown damage kind %q", input.Kind)
	}

	count, modifier, err := parseDamage(notation)
	if err != nil {
		return nil, err
	}

	rolls, err := a.diceRoller.RollN(count, 6)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %s", notation)
	}

	modifier += input.Bonus
	result := &engine.DamageRoll{
		Kind:     input.Kind,
		Notation: notation,
		Dice:     rolls,
		Modifier: modifier,
		Total:    max(0, sum(rolls)+modifier),
	}

	a.publish(ctx, engine.EventDamageRolled, input.Character, map[string]interface{}{
		"kind":  string(input.Kind),
		"total": result.Total,
	})

	return &engine.RollDamageOutput{Result: result}, nil
}

// parseDamage splits "NdM" style notation into dice count and modifier
func parseDamage(notation string) (count, modifier int, err error) {
	matches := damageNotationRegex.FindStringSubmatch(strings.ToLower(strings.ReplaceAll(notation, " ", "")))
	if matches == nil {
		return 0, 0, errors.InvalidArgumentf("invalid damage notation: %q (expected format: Nd, Nd+M or Nd-M)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil || count <= 0 {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in damage notation: %q", notation)
	}

	if matches[2] != "" {
		modifier, err = strconv.Atoi(matches[2])
		if err != nil {
			return 0, 0, errors.InvalidArgumentf("invalid modifier in damage notation: %q", notation)
		}
	}

	return count, modifier, nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
