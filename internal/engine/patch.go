package engine

import (
	"fmt"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
)

// Attribute bounds accepted by a patch
const (
	MinAttribute = 1
	MaxAttribute = 200
)

// ListOp edits one collection. Adds get fresh ids, updates replace the
// entry with the same id, removes drop entries by id. Removing an unknown
// id is a no-op; updating one is an error.
type ListOp[T any] struct {
	Add    []T      `json:"add,omitempty"`
	Update []T      `json:"update,omitempty"`
	Remove []string `json:"remove,omitempty"`
}

// Empty reports whether the op does nothing
func (op ListOp[T]) Empty() bool {
	return len(op.Add) == 0 && len(op.Update) == 0 && len(op.Remove) == 0
}

// Patch is a typed partial update. Nil fields are left alone.
type Patch struct {
	Name          *string `json:"name,omitempty"`
	Player        *string `json:"player,omitempty"`
	PointTotal    *int    `json:"pointTotal,omitempty"`
	Height        *string `json:"height,omitempty"`
	Weight        *string `json:"weight,omitempty"`
	Age           *string `json:"age,omitempty"`
	Appearance    *string `json:"appearance,omitempty"`
	SizeModifier  *int    `json:"sizeModifier,omitempty"`
	TechLevel     *string `json:"techLevel,omitempty"`
	TechLevelCost *int    `json:"techLevelCost,omitempty"`
	CampaignLore  *string `json:"campaignLore,omitempty"`

	ST *int `json:"ST,omitempty"`
	DX *int `json:"DX,omitempty"`
	IQ *int `json:"IQ,omitempty"`
	HT *int `json:"HT,omitempty"`

	// Writing a secondary characteristic marks it overridden
	HP         *int     `json:"HP,omitempty"`
	Will       *int     `json:"Will,omitempty"`
	Per        *int     `json:"Per,omitempty"`
	FP         *int     `json:"FP,omitempty"`
	BasicSpeed *float64 `json:"basicSpeed,omitempty"`
	BasicMove  *int     `json:"basicMove,omitempty"`
	// ResetSecondary returns fields to their derived defaults and clears
	// their override flags. Applied after the attribute change.
	ResetSecondary []gurps.SecondaryField `json:"resetSecondary,omitempty"`

	DamageThrust  *string  `json:"damageThrust,omitempty"`
	DamageSwing   *string  `json:"damageSwing,omitempty"`
	DodgeModifier *int     `json:"dodgeModifier,omitempty"`
	ParryModifier *int     `json:"parryModifier,omitempty"`
	BlockModifier *int     `json:"blockModifier,omitempty"`
	CurrentWeight *float64 `json:"currentWeight,omitempty"`
	// SyncWeight sets currentWeight from the equipment list after list ops
	SyncWeight bool `json:"syncWeight,omitempty"`

	Advantages            ListOp[gurps.Advantage]           `json:"advantages,omitempty"`
	Disadvantages         ListOp[gurps.Disadvantage]        `json:"disadvantages,omitempty"`
	Skills                ListOp[gurps.Skill]               `json:"skills,omitempty"`
	Equipment             ListOp[gurps.Equipment]           `json:"equipment,omitempty"`
	Spells                ListOp[gurps.Spell]               `json:"spells,omitempty"`
	Languages             ListOp[gurps.Language]            `json:"languages,omitempty"`
	Status                ListOp[gurps.Status]              `json:"status,omitempty"`
	Reputation            ListOp[gurps.Reputation]          `json:"reputation,omitempty"`
	CulturalFamiliarities ListOp[gurps.CulturalFamiliarity] `json:"culturalFamiliarities,omitempty"`
	ReactionModifiers     ListOp[gurps.ReactionModifier]    `json:"reactionModifiers,omitempty"`
	EquipmentSimple       *[]string                         `json:"equipmentSimple,omitempty"`
}

// TouchesAttributes reports whether any primary attribute is set
func (p *Patch) TouchesAttributes() bool {
	return p.ST != nil || p.DX != nil || p.IQ != nil || p.HT != nil
}

// Validate rejects patches the engine must not apply. A rejected patch
// leaves the record untouched.
func (p *Patch) Validate() error {
	vb := errors.NewValidationBuilder()

	for name, v := range map[string]*int{"ST": p.ST, "DX": p.DX, "IQ": p.IQ, "HT": p.HT} {
		if v != nil {
			errors.ValidateRange(name, *v, MinAttribute, MaxAttribute, vb)
		}
	}
	if p.BasicSpeed != nil {
		errors.ValidateMinFloat("basicSpeed", *p.BasicSpeed, 0, vb)
	}
	if p.BasicMove != nil && *p.BasicMove < 0 {
		vb.Field("basicMove", "must not be negative")
	}
	if p.CurrentWeight != nil {
		errors.ValidateMinFloat("currentWeight", *p.CurrentWeight, 0, vb)
	}
	if p.PointTotal != nil && *p.PointTotal < 0 {
		vb.Field("pointTotal", "must not be negative")
	}

	for _, f := range p.ResetSecondary {
		errors.ValidateEnum("resetSecondary", f, gurps.SecondaryFields, vb)
	}

	requireNames(vb, "advantages", p.Advantages, func(e gurps.Advantage) string { return e.Name })
	requireNames(vb, "disadvantages", p.Disadvantages, func(e gurps.Disadvantage) string { return e.Name })
	requireNames(vb, "skills", p.Skills, func(e gurps.Skill) string { return e.Name })
	requireNames(vb, "equipment", p.Equipment, func(e gurps.Equipment) string { return e.Name })
	requireNames(vb, "spells", p.Spells, func(e gurps.Spell) string { return e.Name })
	requireNames(vb, "languages", p.Languages, func(e gurps.Language) string { return e.Name })
	requireNames(vb, "culturalFamiliarities", p.CulturalFamiliarities, func(e gurps.CulturalFamiliarity) string { return e.Name })
	requireNames(vb, "reactionModifiers", p.ReactionModifiers, func(e gurps.ReactionModifier) string { return e.Source })

	checkEquipment(vb, "add", p.Equipment.Add)
	checkEquipment(vb, "update", p.Equipment.Update)

	return vb.Build()
}

func checkEquipment(vb *errors.ValidationBuilder, op string, items []gurps.Equipment) {
	for i, e := range items {
		errors.ValidateMinFloat(fmt.Sprintf("equipment.%s[%d].weight", op, i), e.Weight, 0, vb)
		if e.Quantity < 0 {
			vb.Field(fmt.Sprintf("equipment.%s[%d].quantity", op, i), "must not be negative")
		}
	}
}

func requireNames[T any](vb *errors.ValidationBuilder, list string, op ListOp[T], name func(T) string) {
	for i, e := range op.Add {
		errors.ValidateRequired(fmt.Sprintf("%s.add[%d].name", list, i), name(e), vb)
	}
	for i, e := range op.Update {
		errors.ValidateRequired(fmt.Sprintf("%s.update[%d].name", list, i), name(e), vb)
	}
}
