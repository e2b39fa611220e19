package gurps

// Baseline values of a freshly created record
const (
	DefaultPointTotal = 100
	DefaultTechLevel  = "3"
	BaselineAttribute = 10
)

// NewDefault returns a blank 100-point record at attribute 10 across the
// board. Collections are empty, never nil.
func NewDefault() *Character {
	return &Character{
		PointTotal:            DefaultPointTotal,
		UnspentPoints:         DefaultPointTotal,
		TechLevel:             DefaultTechLevel,
		ST:                    BaselineAttribute,
		DX:                    BaselineAttribute,
		IQ:                    BaselineAttribute,
		HT:                    BaselineAttribute,
		HP:                    BaselineAttribute,
		Will:                  BaselineAttribute,
		Per:                   BaselineAttribute,
		FP:                    BaselineAttribute,
		BasicSpeed:            5.0,
		BasicMove:             5,
		BasicLift:             20,
		DamageThrust:          "1d-2",
		DamageSwing:           "1d",
		Advantages:            []Advantage{},
		Disadvantages:         []Disadvantage{},
		Skills:                []Skill{},
		Equipment:             []Equipment{},
		Spells:                []Spell{},
		Languages:             []Language{},
		Status:                []Status{},
		Reputation:            []Reputation{},
		CulturalFamiliarities: []CulturalFamiliarity{},
		ReactionModifiers:     []ReactionModifier{},
		EquipmentSimple:       []string{},
		Overrides:             &Overrides{},
	}
}
