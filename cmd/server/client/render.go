package client

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

var title = cases.Title(language.English)

func heading(w io.Writer, name string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title.String(name), strings.Repeat("-", len(name)))
}

// RenderSheet prints a character as plain text. summary may be nil.
func RenderSheet(w io.Writer, c *gurps.Character, summary *engine.CombatSummary) {
	name := c.Name
	if name == "" {
		name = "unnamed character"
	}
	fmt.Fprintf(w, "%s", title.String(name))
	if c.ID != "" {
		fmt.Fprintf(w, " (%s)", c.ID)
	}
	fmt.Fprintf(w, "\nPoints: %d total, %d unspent  TL%s\n", c.PointTotal, c.UnspentPoints, c.TechLevel)

	heading(w, "attributes")
	fmt.Fprintf(w, "ST %-3d DX %-3d IQ %-3d HT %-3d\n", c.ST, c.DX, c.IQ, c.HT)
	fmt.Fprintf(w, "HP %-3d Will %-3d Per %-3d FP %-3d\n", c.HP, c.Will, c.Per, c.FP)
	fmt.Fprintf(w, "Basic Speed %.2f  Basic Move %d  Basic Lift %d lbs\n", c.BasicSpeed, c.BasicMove, c.BasicLift)
	fmt.Fprintf(w, "Thrust %s  Swing %s\n", c.DamageThrust, c.DamageSwing)

	if len(c.Advantages) > 0 || len(c.Disadvantages) > 0 {
		heading(w, "traits")
		for _, a := range c.Advantages {
			fmt.Fprintf(w, "  %-28s %+d\n", a.Name, a.Cost*max(1, a.Level))
		}
		for _, d := range c.Disadvantages {
			fmt.Fprintf(w, "  %-28s %+d\n", d.Name, d.Cost)
		}
	}

	if len(c.Skills) > 0 {
		heading(w, "skills")
		for _, s := range c.Skills {
			fmt.Fprintf(w, "  %-24s %s/%-2s %3d  %-8s [%d]\n", s.Name, s.Attribute, s.Difficulty, s.Level, s.RelativeLevel, s.Points)
		}
	}

	if len(c.Equipment) > 0 {
		heading(w, "equipment")
		for _, e := range c.Equipment {
			fmt.Fprintf(w, "  %-28s x%-3d %6.1f lbs\n", e.Name, e.Quantity, e.Weight)
		}
	}

	if summary != nil {
		RenderSummary(w, summary)
	}
}

// RenderSummary prints the combat view
func RenderSummary(w io.Writer, s *engine.CombatSummary) {
	heading(w, "combat")
	fmt.Fprintf(w, "Encumbrance: %s (%d)  carrying %.1f lbs\n", title.String(s.Encumbrance), s.EncumbrancePenalty, s.CurrentWeight)
	fmt.Fprintf(w, "Dodge %d  Parry %d  Block %d  Move %d\n", s.Dodge, s.Parry, s.Block, s.EffectiveMove)
	fmt.Fprintf(w, "Damage: thrust %s, swing %s (from ST: %s / %s)\n", s.DamageThrust, s.DamageSwing, s.DerivedThrust, s.DerivedSwing)

	heading(w, "points")
	l := s.Ledger
	fmt.Fprintf(w, "Attributes %d  Secondary %d  Advantages %d  Disadvantages %d  Skills %d  Social %d\n",
		l.Attributes, l.Secondary, l.Advantages, l.Disadvantages, l.Skills, l.Social)
	fmt.Fprintf(w, "Spent %d  Unspent %d\n", l.Total, s.UnspentPoints)
}
