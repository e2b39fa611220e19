package rules

import (
	"math"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// PointLedger is the breakdown of points spent on a sheet
type PointLedger struct {
	Attributes    int
	Secondary     int
	Advantages    int
	Disadvantages int
	Skills        int
	// Social is languages, status, reputation and cultural familiarity.
	// It is reported here but only counted in Total when the ledger was
	// built with includeSocial.
	Social int
	Total  int
}

// AttributeCost prices the four attributes against a baseline of 10
func AttributeCost(a gurps.Attributes) int {
	return (a.ST-10)*10 + (a.DX-10)*20 + (a.IQ-10)*20 + (a.HT-10)*10
}

// SecondaryCost prices the distance of each secondary characteristic from
// its default.
func SecondaryCost(c *gurps.Character) int {
	derivedSpeed := BasicSpeed(c.DX, c.HT)
	return (c.HP-c.ST)*2 +
		(c.Will-c.IQ)*5 +
		(c.Per-c.IQ)*5 +
		(c.FP-c.HT)*3 +
		roundHalfUp((c.BasicSpeed-derivedSpeed)*20) +
		(c.BasicMove-BasicMove(derivedSpeed))*5
}

// AdvantagesCost sums cost × level, with levels below one counting as one
func AdvantagesCost(advantages []gurps.Advantage) int {
	total := 0
	for _, a := range advantages {
		total += a.Cost * max(1, a.Level)
	}
	return total
}

// DisadvantagesCost sums the stored, normally negative, costs as-is
func DisadvantagesCost(disadvantages []gurps.Disadvantage) int {
	total := 0
	for _, d := range disadvantages {
		total += d.Cost
	}
	return total
}

// SkillsCost sums invested points
func SkillsCost(skills []gurps.Skill) int {
	total := 0
	for _, s := range skills {
		total += s.Points
	}
	return total
}

// SocialCost sums the points of every social trait
func SocialCost(c *gurps.Character) int {
	total := 0
	for _, l := range c.Languages {
		total += l.Points
	}
	for _, s := range c.Status {
		total += s.Points
	}
	for _, r := range c.Reputation {
		total += r.Points
	}
	for _, cf := range c.CulturalFamiliarities {
		total += cf.Points
	}
	return total
}

// Ledger builds the full breakdown for c
func Ledger(c *gurps.Character, includeSocial bool) PointLedger {
	l := PointLedger{
		Attributes:    AttributeCost(c.Attributes()),
		Secondary:     SecondaryCost(c),
		Advantages:    AdvantagesCost(c.Advantages),
		Disadvantages: DisadvantagesCost(c.Disadvantages),
		Skills:        SkillsCost(c.Skills),
		Social:        SocialCost(c),
	}
	l.Total = l.Attributes + l.Secondary + l.Advantages + l.Disadvantages + l.Skills
	if includeSocial {
		l.Total += l.Social
	}
	return l
}

// Unspent is the budget left after the ledger total
func Unspent(c *gurps.Character, includeSocial bool) int {
	return c.PointTotal - Ledger(c, includeSocial).Total
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
