package gurps

// Attribute names a skill-governing attribute
type Attribute string

// Governing attributes
const (
	AttributeST   Attribute = "ST"
	AttributeDX   Attribute = "DX"
	AttributeIQ   Attribute = "IQ"
	AttributeHT   Attribute = "HT"
	AttributeWill Attribute = "Will"
	AttributePer  Attribute = "Per"
)

// Difficulty is a skill's learning-curve tier
type Difficulty string

// Difficulty tiers
const (
	DifficultyEasy     Difficulty = "E"
	DifficultyAverage  Difficulty = "A"
	DifficultyHard     Difficulty = "H"
	DifficultyVeryHard Difficulty = "VH"
)

// Fluency is a language comprehension level, written or spoken
type Fluency string

// Fluency levels
const (
	FluencyNone     Fluency = "None"
	FluencyBroken   Fluency = "Broken"
	FluencyAccented Fluency = "Accented"
	FluencyNative   Fluency = "Native"
)

// SecondaryField names one overridable secondary characteristic
type SecondaryField string

// Secondary characteristics
const (
	SecondaryHP         SecondaryField = "HP"
	SecondaryWill       SecondaryField = "Will"
	SecondaryPer        SecondaryField = "Per"
	SecondaryFP         SecondaryField = "FP"
	SecondaryBasicSpeed SecondaryField = "basicSpeed"
	SecondaryBasicMove  SecondaryField = "basicMove"
)

// SecondaryFields lists every overridable field in display order
var SecondaryFields = []SecondaryField{
	SecondaryHP, SecondaryWill, SecondaryPer, SecondaryFP, SecondaryBasicSpeed, SecondaryBasicMove,
}

// Advantage is a purchased trait; Cost is per level
type Advantage struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Cost        int    `json:"cost" yaml:"cost"`
	Level       int    `json:"level,omitempty" yaml:"level,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Disadvantage carries a negative cost
type Disadvantage struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Cost        int    `json:"cost" yaml:"cost"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Skill is a learned skill. Level and RelativeLevel are caches refreshed
// by the skill resolver.
type Skill struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Attribute     Attribute  `json:"attribute" yaml:"attribute"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
	Points        int        `json:"points" yaml:"points"`
	Level         int        `json:"level" yaml:"level"`
	RelativeLevel string     `json:"relativeLevel" yaml:"relativeLevel"`
	Modifier      int        `json:"modifier" yaml:"modifier"`
	Description   string     `json:"description,omitempty" yaml:"description,omitempty"`
	Notes         string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Equipment is a carried item; Weight is per unit
type Equipment struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Weight      float64 `json:"weight" yaml:"weight"`
	Quantity    int     `json:"quantity" yaml:"quantity"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Spell is a known spell
type Spell struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Class          string `json:"class" yaml:"class"`
	SkillLevel     int    `json:"skillLevel" yaml:"skillLevel"`
	TimeToCast     string `json:"timeToCast" yaml:"timeToCast"`
	Duration       string `json:"duration" yaml:"duration"`
	CostToCast     string `json:"costToCast" yaml:"costToCast"`
	CostToMaintain string `json:"costToMaintain" yaml:"costToMaintain"`
	Notes          string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Page           string `json:"page,omitempty" yaml:"page,omitempty"`
}

// Language is a known language with separate written and spoken fluency
type Language struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	WrittenLevel Fluency `json:"writtenLevel" yaml:"writtenLevel"`
	SpokenLevel  Fluency `json:"spokenLevel" yaml:"spokenLevel"`
	Points       int     `json:"points" yaml:"points"`
	Notes        string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Status is a social rank
type Status struct {
	ID          string `json:"id" yaml:"id"`
	Level       int    `json:"level" yaml:"level"`
	Points      int    `json:"points" yaml:"points"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Reputation is a reaction modifier with a scope of people who know it
type Reputation struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Modifier    int    `json:"modifier" yaml:"modifier"`
	Scope       string `json:"scope" yaml:"scope"`
	Points      int    `json:"points" yaml:"points"`
	Notes       string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// CulturalFamiliarity is a culture the character moves in comfortably
type CulturalFamiliarity struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Points int    `json:"points" yaml:"points"`
	Notes  string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// ReactionModifier is a situational reaction bonus or penalty
type ReactionModifier struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"source"`
	Modifier    int    `json:"modifier" yaml:"modifier"`
	Description string `json:"description" yaml:"description"`
}
