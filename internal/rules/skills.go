package rules

import (
	"fmt"
	"math/bits"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

const unknownAttributeValue = 10

// DifficultyOffset is the level adjustment of a difficulty tier; unknown
// tiers count as Average.
func DifficultyOffset(d gurps.Difficulty) int {
	switch d {
	case gurps.DifficultyEasy:
		return 0
	case gurps.DifficultyAverage:
		return -1
	case gurps.DifficultyHard:
		return -2
	case gurps.DifficultyVeryHard:
		return -3
	default:
		return -1
	}
}

// ExtraLevels maps invested points to levels beyond the difficulty offset.
//
//	0-1 → +0, 2 → +1, 4 → +2, 8 → +3, 16 → +4, 32 → +5 …
//
// Values between breakpoints take the nearest lower breakpoint (3 → +1,
// 5-7 → +2, 12 → +3). Negative points count as zero.
func ExtraLevels(points int) int {
	switch {
	case points < 2:
		return 0
	case points < 4:
		return 1
	case points < 8:
		return 2
	default:
		// 2 + floor(log2(points/4))
		return 2 + bits.Len(uint(points/4)) - 1
	}
}

// SkillLevel computes a skill's level before its flat modifier, the
// governing attribute value it was measured from, and the relative label.
func SkillLevel(skill gurps.Skill, c *gurps.Character) (level, base int, relative string) {
	base, ok := c.AttributeValue(skill.Attribute)
	if !ok {
		base = unknownAttributeValue
	}

	level = base + DifficultyOffset(skill.Difficulty) + ExtraLevels(skill.Points)
	return level, base, RelativeLevel(skill.Attribute, level-base)
}

// RelativeLevel renders "DX+1", "IQ-2", "Per+0"
func RelativeLevel(attr gurps.Attribute, delta int) string {
	if delta >= 0 {
		return fmt.Sprintf("%s+%d", attr, delta)
	}
	return fmt.Sprintf("%s%d", attr, delta)
}

// ResolveSkills refreshes the cached level and relative label of every
// skill. It returns the input slice itself with changed=false when every
// cache is already current, so callers can skip the write.
func ResolveSkills(skills []gurps.Skill, c *gurps.Character) (resolved []gurps.Skill, changed bool) {
	var out []gurps.Skill
	for i, skill := range skills {
		level, _, relative := SkillLevel(skill, c)
		stored := level + skill.Modifier
		if skill.Level == stored && skill.RelativeLevel == relative {
			continue
		}
		if out == nil {
			out = make([]gurps.Skill, len(skills))
			copy(out, skills)
		}
		out[i].Level = stored
		out[i].RelativeLevel = relative
	}

	if out == nil {
		return skills, false
	}
	return out, true
}
