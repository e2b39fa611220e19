// Package gurps holds the GURPS character record and its collection entries.
//
// JSON and YAML field names match the interchange files players already
// have on disk, so a sheet exported by older tooling loads unchanged.
package gurps

import "time"

// Character is the single aggregate edited by a session.
type Character struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	PlayerID  string    `json:"playerId,omitempty" yaml:"playerId,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`

	Name          string `json:"name" yaml:"name"`
	Player        string `json:"player" yaml:"player"`
	PointTotal    int    `json:"pointTotal" yaml:"pointTotal"`
	UnspentPoints int    `json:"unspentPoints" yaml:"unspentPoints"`
	Height        string `json:"height" yaml:"height"`
	Weight        string `json:"weight" yaml:"weight"`
	Age           string `json:"age" yaml:"age"`
	Appearance    string `json:"appearance" yaml:"appearance"`
	SizeModifier  int    `json:"sizeModifier" yaml:"sizeModifier"`
	TechLevel     string `json:"techLevel" yaml:"techLevel"`
	TechLevelCost int    `json:"techLevelCost" yaml:"techLevelCost"`

	ST int `json:"ST" yaml:"ST"`
	DX int `json:"DX" yaml:"DX"`
	IQ int `json:"IQ" yaml:"IQ"`
	HT int `json:"HT" yaml:"HT"`

	HP         int     `json:"HP" yaml:"HP"`
	Will       int     `json:"Will" yaml:"Will"`
	Per        int     `json:"Per" yaml:"Per"`
	FP         int     `json:"FP" yaml:"FP"`
	BasicSpeed float64 `json:"basicSpeed" yaml:"basicSpeed"`
	BasicMove  int     `json:"basicMove" yaml:"basicMove"`

	BasicLift     int    `json:"basicLift" yaml:"basicLift"`
	DamageThrust  string `json:"damageThrust" yaml:"damageThrust"`
	DamageSwing   string `json:"damageSwing" yaml:"damageSwing"`
	DodgeModifier int    `json:"dodgeModifier" yaml:"dodgeModifier"`
	ParryModifier int    `json:"parryModifier" yaml:"parryModifier"`
	BlockModifier int    `json:"blockModifier" yaml:"blockModifier"`

	CurrentWeight float64 `json:"currentWeight" yaml:"currentWeight"`

	Advantages    []Advantage    `json:"advantages" yaml:"advantages"`
	Disadvantages []Disadvantage `json:"disadvantages" yaml:"disadvantages"`
	Skills        []Skill        `json:"skills" yaml:"skills"`
	Equipment     []Equipment    `json:"equipment" yaml:"equipment"`
	Spells        []Spell        `json:"spells" yaml:"spells"`

	Languages             []Language            `json:"languages" yaml:"languages"`
	Status                []Status              `json:"status" yaml:"status"`
	Reputation            []Reputation          `json:"reputation" yaml:"reputation"`
	CulturalFamiliarities []CulturalFamiliarity `json:"culturalFamiliarities" yaml:"culturalFamiliarities"`

	ReactionModifiers []ReactionModifier `json:"reactionModifiers" yaml:"reactionModifiers"`

	EquipmentSimple []string `json:"equipmentSimple" yaml:"equipmentSimple"`
	CampaignLore    string   `json:"campaignLore" yaml:"campaignLore"`

	// Overrides is nil on records written before override tracking existed;
	// loaders infer it from the current values.
	Overrides *Overrides `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// Attributes returns the four primary attributes
func (c *Character) Attributes() Attributes {
	return Attributes{ST: c.ST, DX: c.DX, IQ: c.IQ, HT: c.HT}
}

// SetAttributes writes the four primary attributes
func (c *Character) SetAttributes(a Attributes) {
	c.ST, c.DX, c.IQ, c.HT = a.ST, a.DX, a.IQ, a.HT
}

// Secondary returns the overridable secondary characteristics
func (c *Character) Secondary() Secondary {
	return Secondary{
		HP:         c.HP,
		Will:       c.Will,
		Per:        c.Per,
		FP:         c.FP,
		BasicSpeed: c.BasicSpeed,
		BasicMove:  c.BasicMove,
	}
}

// SetSecondary writes the overridable secondary characteristics
func (c *Character) SetSecondary(s Secondary) {
	c.HP, c.Will, c.Per, c.FP = s.HP, s.Will, s.Per, s.FP
	c.BasicSpeed, c.BasicMove = s.BasicSpeed, s.BasicMove
}

// AttributeValue looks up a skill-governing attribute.
// ok is false for names outside ST, DX, IQ, HT, Will and Per.
func (c *Character) AttributeValue(attr Attribute) (value int, ok bool) {
	switch attr {
	case AttributeST:
		return c.ST, true
	case AttributeDX:
		return c.DX, true
	case AttributeIQ:
		return c.IQ, true
	case AttributeHT:
		return c.HT, true
	case AttributeWill:
		return c.Will, true
	case AttributePer:
		return c.Per, true
	default:
		return 0, false
	}
}

// Clone returns a deep copy; the engine never mutates its input record.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Advantages = cloneSlice(c.Advantages)
	out.Disadvantages = cloneSlice(c.Disadvantages)
	out.Skills = cloneSlice(c.Skills)
	out.Equipment = cloneSlice(c.Equipment)
	out.Spells = cloneSlice(c.Spells)
	out.Languages = cloneSlice(c.Languages)
	out.Status = cloneSlice(c.Status)
	out.Reputation = cloneSlice(c.Reputation)
	out.CulturalFamiliarities = cloneSlice(c.CulturalFamiliarities)
	out.ReactionModifiers = cloneSlice(c.ReactionModifiers)
	out.EquipmentSimple = cloneSlice(c.EquipmentSimple)
	if c.Overrides != nil {
		o := *c.Overrides
		out.Overrides = &o
	}
	return &out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Attributes are the four primary attributes
type Attributes struct {
	ST int
	DX int
	IQ int
	HT int
}

// Secondary groups the characteristics that derive from attributes but
// may be overridden.
type Secondary struct {
	HP         int
	Will       int
	Per        int
	FP         int
	BasicSpeed float64
	BasicMove  int
}

// Overrides marks which secondary characteristics the player set by hand.
// A field that is not overridden follows its derived default.
type Overrides struct {
	HP         bool `json:"HP" yaml:"HP"`
	Will       bool `json:"Will" yaml:"Will"`
	Per        bool `json:"Per" yaml:"Per"`
	FP         bool `json:"FP" yaml:"FP"`
	BasicSpeed bool `json:"basicSpeed" yaml:"basicSpeed"`
	BasicMove  bool `json:"basicMove" yaml:"basicMove"`
}

// Set marks or clears a single field
func (o *Overrides) Set(field SecondaryField, overridden bool) {
	switch field {
	case SecondaryHP:
		o.HP = overridden
	case SecondaryWill:
		o.Will = overridden
	case SecondaryPer:
		o.Per = overridden
	case SecondaryFP:
		o.FP = overridden
	case SecondaryBasicSpeed:
		o.BasicSpeed = overridden
	case SecondaryBasicMove:
		o.BasicMove = overridden
	}
}
