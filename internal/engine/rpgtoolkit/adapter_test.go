package rpgtoolkit_test

import (
	"context"
	"math"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// fixedRoller returns the queued dice in order
type fixedRoller struct {
	queue []int
}

func (r *fixedRoller) Roll(_ int) (int, error) {
	v := r.queue[0]
	r.queue = r.queue[1:]
	return v, nil
}

func (r *fixedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

type AdapterTestSuite struct {
	suite.Suite
	ctx     context.Context
	bus     events.EventBus
	roller  *fixedRoller
	adapter *rpgtoolkit.Adapter
	char    *gurps.Character
	seen    []string
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterTestSuite))
}

func (s *AdapterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.bus = events.NewBus()
	s.roller = &fixedRoller{}
	s.seen = nil
	for _, name := range []string{
		engine.EventCharacterUpdated,
		engine.EventCharacterRecalculated,
		engine.EventSkillRolled,
		engine.EventDamageRolled,
	} {
		name := name
		s.bus.SubscribeFunc(name, 0, func(_ context.Context, _ events.Event) error {
			s.seen = append(s.seen, name)
			return nil
		})
	}

	s.adapter = s.newAdapter(rules.PolicyExplicit, false)
	s.char = gurps.NewDefault()
	s.char.ID = "char_1"
}

func (s *AdapterTestSuite) newAdapter(policy rules.OverridePolicy, social bool) *rpgtoolkit.Adapter {
	a, err := rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:          s.bus,
		DiceRoller:        s.roller,
		IDGenerator:       idgen.NewSequential(""),
		OverridePolicy:    policy,
		IncludeSocialCost: social,
	})
	s.Require().NoError(err)
	return a
}

func (s *AdapterTestSuite) apply(c *gurps.Character, p *engine.Patch) *gurps.Character {
	out, err := s.adapter.Apply(s.ctx, &engine.ApplyInput{Character: c, Patch: p})
	s.Require().NoError(err)
	return out.Character
}

func ptr[T any](v T) *T { return &v }

func (s *AdapterTestSuite) TestNewAdapterValidation() {
	_, err := rpgtoolkit.NewAdapter(nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{})
	s.Require().Error(err)
	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(fields, "EventBus")
	s.Assert().Contains(fields, "DiceRoller")
	s.Assert().Contains(fields, "IDGenerator")

	_, err = rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:       s.bus,
		DiceRoller:     s.roller,
		IDGenerator:    idgen.NewSequential(""),
		OverridePolicy: "whenever",
	})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestApplyRequiresInput() {
	_, err := s.adapter.Apply(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.adapter.Apply(s.ctx, &engine.ApplyInput{Character: s.char})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *AdapterTestSuite) TestApplyDoesNotMutateInput() {
	out := s.apply(s.char, &engine.Patch{
		ST:     ptr(14),
		Skills: engine.ListOp[gurps.Skill]{Add: []gurps.Skill{{Name: "Brawling", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyEasy, Points: 1}}},
	})

	s.Assert().Equal(14, out.ST)
	s.Assert().Equal(10, s.char.ST)
	s.Assert().Empty(s.char.Skills)
	s.Assert().Len(out.Skills, 1)
}

func (s *AdapterTestSuite) TestRejectedPatchReturnsInvalidArgument() {
	_, err := s.adapter.Apply(s.ctx, &engine.ApplyInput{Character: s.char, Patch: &engine.Patch{
		ST: ptr(0),
		DX: ptr(201),
		Advantages: engine.ListOp[gurps.Advantage]{
			Add: []gurps.Advantage{{Cost: 5}},
		},
		ResetSecondary: []gurps.SecondaryField{"Luck"},
	}})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(fields, "ST")
	s.Assert().Contains(fields, "DX")
	s.Assert().Contains(fields, "advantages.add[0].name")
	s.Assert().Contains(fields, "resetSecondary")
	s.Assert().Empty(s.seen)
}

func (s *AdapterTestSuite) TestRejectsNonFiniteNumbers() {
	_, err := s.adapter.Apply(s.ctx, &engine.ApplyInput{Character: s.char, Patch: &engine.Patch{
		BasicSpeed:    ptr(math.NaN()),
		CurrentWeight: ptr(math.Inf(1)),
		Equipment: engine.ListOp[gurps.Equipment]{
			Add: []gurps.Equipment{{Name: "Rope", Quantity: 1, Weight: math.Inf(-1)}},
		},
	}})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Equal([]string{"must be a finite number"}, fields["basicSpeed"])
	s.Assert().Equal([]string{"must be a finite number"}, fields["currentWeight"])
	s.Assert().Equal([]string{"must be a finite number"}, fields["equipment.add[0].weight"])
	s.Assert().Empty(s.seen)
}

func (s *AdapterTestSuite) TestOverrideScenario() {
	c := s.apply(s.char, &engine.Patch{ST: ptr(14)})
	s.Assert().Equal(14, c.HP)
	s.Assert().Equal(39, c.BasicLift)

	c = s.apply(c, &engine.Patch{HP: ptr(20)})
	s.Assert().True(c.Overrides.HP)

	c = s.apply(c, &engine.Patch{ST: ptr(16)})
	s.Assert().Equal(20, c.HP)
	s.Assert().Equal(51, c.BasicLift)
}

func (s *AdapterTestSuite) TestTrackDefaultPolicy() {
	a := s.newAdapter(rules.PolicyTrackDefault, false)

	out, err := a.Apply(s.ctx, &engine.ApplyInput{Character: s.char, Patch: &engine.Patch{ST: ptr(14), HP: ptr(14)}})
	s.Require().NoError(err)

	// HP equals its default, so the heuristic keeps tracking it.
	out, err = a.Apply(s.ctx, &engine.ApplyInput{Character: out.Character, Patch: &engine.Patch{ST: ptr(16)}})
	s.Require().NoError(err)
	s.Assert().Equal(16, out.Character.HP)
}

func (s *AdapterTestSuite) TestResetSecondary() {
	c := s.apply(s.char, &engine.Patch{Will: ptr(14), BasicSpeed: ptr(6.0)})
	s.Require().True(c.Overrides.Will)

	c = s.apply(c, &engine.Patch{IQ: ptr(12), ResetSecondary: []gurps.SecondaryField{gurps.SecondaryWill, gurps.SecondaryBasicSpeed}})
	s.Assert().Equal(12, c.Will)
	s.Assert().Equal(5.0, c.BasicSpeed)
	s.Assert().False(c.Overrides.Will)
	s.Assert().False(c.Overrides.BasicSpeed)
}

func (s *AdapterTestSuite) TestMissingOverridesAreInferred() {
	s.char.Overrides = nil
	s.char.HP = 12

	c := s.apply(s.char, &engine.Patch{ST: ptr(13)})
	s.Assert().Equal(12, c.HP)
	s.Require().NotNil(c.Overrides)
	s.Assert().True(c.Overrides.HP)
	s.Assert().False(c.Overrides.Will)
}

func (s *AdapterTestSuite) TestLedgerStaysConsistent() {
	patches := []*engine.Patch{
		{ST: ptr(12), DX: ptr(13)},
		{Advantages: engine.ListOp[gurps.Advantage]{Add: []gurps.Advantage{{Name: "Combat Reflexes", Cost: 15}}}},
		{Disadvantages: engine.ListOp[gurps.Disadvantage]{Add: []gurps.Disadvantage{{Name: "Bad Temper", Cost: -10}}}},
		{Skills: engine.ListOp[gurps.Skill]{Add: []gurps.Skill{{Name: "Broadsword", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage, Points: 8}}}},
		{HP: ptr(15), PointTotal: ptr(150)},
	}

	c := s.char
	for _, p := range patches {
		c = s.apply(c, p)
		s.Require().Equal(c.PointTotal-rules.Ledger(c, false).Total, c.UnspentPoints)
	}

	// attributes 20+60, HP 3×2, advantages 15, disadvantages -10, skills 8
	s.Assert().Equal(150-99, c.UnspentPoints)
	s.Assert().Equal(15, c.Skills[0].Level)
	s.Assert().Equal("DX+2", c.Skills[0].RelativeLevel)
}

func (s *AdapterTestSuite) TestSocialCostToggle() {
	p := &engine.Patch{
		Languages: engine.ListOp[gurps.Language]{Add: []gurps.Language{{Name: "Elvish", WrittenLevel: gurps.FluencyBroken, SpokenLevel: gurps.FluencyNative, Points: 99}}},
		Status:    engine.ListOp[gurps.Status]{Add: []gurps.Status{{Level: 2}}},
	}

	c := s.apply(s.char, p)
	s.Assert().Equal(4, c.Languages[0].Points)
	s.Assert().Equal(10, c.Status[0].Points)
	s.Assert().Equal(100, c.UnspentPoints)

	social := s.newAdapter(rules.PolicyExplicit, true)
	out, err := social.Apply(s.ctx, &engine.ApplyInput{Character: s.char, Patch: p})
	s.Require().NoError(err)
	s.Assert().Equal(86, out.Character.UnspentPoints)
	s.Assert().Equal(14, out.Ledger.Social)
}

func (s *AdapterTestSuite) TestListOps() {
	c := s.apply(s.char, &engine.Patch{
		Equipment: engine.ListOp[gurps.Equipment]{Add: []gurps.Equipment{
			{ID: "ignored", Name: "Broadsword", Weight: 3, Quantity: 1},
			{Name: "Rations", Weight: 0.5, Quantity: 4},
		}},
		SyncWeight: true,
	})
	s.Require().Len(c.Equipment, 2)
	s.Assert().Equal("eq_1", c.Equipment[0].ID)
	s.Assert().Equal("eq_2", c.Equipment[1].ID)
	s.Assert().Equal(5.0, c.CurrentWeight)

	c = s.apply(c, &engine.Patch{
		Equipment: engine.ListOp[gurps.Equipment]{
			Update: []gurps.Equipment{{ID: "eq_2", Name: "Rations", Weight: 0.5, Quantity: 2}},
			Remove: []string{"eq_1", "unknown"},
		},
	})
	s.Require().Len(c.Equipment, 1)
	s.Assert().Equal(2, c.Equipment[0].Quantity)
	s.Assert().Equal(5.0, c.CurrentWeight, "weight only syncs on request")

	_, err := s.adapter.Apply(s.ctx, &engine.ApplyInput{Character: c, Patch: &engine.Patch{
		Equipment: engine.ListOp[gurps.Equipment]{Update: []gurps.Equipment{{ID: "eq_9", Name: "Ghost"}}},
	}})
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal("eq_9", errors.GetMeta(err)["entry_id"])
}

func (s *AdapterTestSuite) TestEquipmentSimpleReplaced() {
	c := s.apply(s.char, &engine.Patch{EquipmentSimple: &[]string{"rope", "torch"}})
	s.Assert().Equal([]string{"rope", "torch"}, c.EquipmentSimple)
}

func (s *AdapterTestSuite) TestApplyPublishesUpdate() {
	s.apply(s.char, &engine.Patch{Name: ptr("Dai")})
	s.Assert().Equal([]string{engine.EventCharacterUpdated}, s.seen)
}

func (s *AdapterTestSuite) TestRecalculate() {
	s.char.ST = 13
	s.char.BasicLift = 0
	s.char.UnspentPoints = 0
	s.char.Skills = []gurps.Skill{{ID: "skill_1", Name: "Climbing", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage, Points: 1}}
	s.char.Overrides = nil

	out, err := s.adapter.Recalculate(s.ctx, &engine.RecalculateInput{Character: s.char})
	s.Require().NoError(err)
	c := out.Character
	s.Assert().Equal(33, c.BasicLift)
	s.Assert().Equal(9, c.Skills[0].Level)
	// attributes 30, HP three under ST -6, skills 1
	s.Assert().Equal(75, c.UnspentPoints)
	s.Assert().Equal(13, c.ST)
	s.Assert().Equal(10, c.HP, "recalculate never re-derives player values")
	s.Require().NotNil(c.Overrides)
	s.Assert().True(c.Overrides.HP)
	s.Assert().Equal([]string{engine.EventCharacterRecalculated}, s.seen)
}

func (s *AdapterTestSuite) TestSummarize() {
	s.char.DX = 12
	s.char.CurrentWeight = 50
	s.char.Equipment = []gurps.Equipment{{Name: "Plate", Weight: 45, Quantity: 1}}

	out, err := s.adapter.Summarize(s.ctx, &engine.SummarizeInput{Character: s.char})
	s.Require().NoError(err)
	sum := out.Summary
	s.Assert().Equal("Medium", sum.Encumbrance)
	s.Assert().Equal(-2, sum.EncumbrancePenalty)
	s.Assert().Equal(6, sum.Dodge)
	s.Assert().Equal(9, sum.Parry)
	s.Assert().Equal(10, sum.Block)
	s.Assert().Equal(3, sum.EffectiveMove)
	s.Assert().Equal(45.0, sum.CarriedWeight)
	s.Assert().Equal("1d+1", sum.DerivedThrust)
	s.Assert().Equal("3d+1", sum.DerivedSwing)
	s.Assert().Equal("1d-2", sum.DamageThrust)
	s.Assert().Equal(40, sum.Ledger.Attributes)
}

func (s *AdapterTestSuite) TestRollSkill() {
	s.char.Skills = []gurps.Skill{{ID: "skill_1", Name: "Stealth", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage, Points: 4}}

	testCases := []struct {
		name     string
		dice     []int
		modifier int
		success  bool
		critical bool
	}{
		{name: "plain success", dice: []int{3, 4, 4}, success: true},
		{name: "plain failure", dice: []int{5, 4, 4}, success: false},
		{name: "critical success", dice: []int{1, 1, 2}, success: true, critical: true},
		{name: "seventeen", dice: []int{6, 6, 5}, success: false, critical: true},
		{name: "ten over target", dice: []int{6, 6, 4}, modifier: -5, success: false, critical: true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.roller.queue = tc.dice
			out, err := s.adapter.RollSkill(s.ctx, &engine.RollSkillInput{Character: s.char, SkillID: "skill_1", Modifier: tc.modifier})
			s.Require().NoError(err)
			s.Assert().Equal(11+tc.modifier, out.Result.Target)
			s.Assert().Equal(tc.success, out.Result.Success)
			s.Assert().Equal(tc.critical, out.Result.Critical)
			s.Assert().Equal(out.Result.Target-out.Result.Total, out.Result.Margin)
		})
	}

	_, err := s.adapter.RollSkill(s.ctx, &engine.RollSkillInput{Character: s.char, SkillID: "skill_9"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *AdapterTestSuite) TestRollDamage() {
	s.char.DamageSwing = "2d+1"
	s.roller.queue = []int{4, 5}

	out, err := s.adapter.RollDamage(s.ctx, &engine.RollDamageInput{Character: s.char, Kind: engine.DamageSwing, Bonus: 2})
	s.Require().NoError(err)
	s.Assert().Equal([]int{4, 5}, out.Result.Dice)
	s.Assert().Equal(3, out.Result.Modifier)
	s.Assert().Equal(12, out.Result.Total)

	s.roller.queue = []int{1}
	out, err = s.adapter.RollDamage(s.ctx, &engine.RollDamageInput{Character: s.char, Kind: engine.DamageThrust})
	s.Require().NoError(err)
	s.Assert().Equal(0, out.Result.Total, "1d-2 on a one floors at zero")

	s.char.DamageThrust = "lots"
	_, err = s.adapter.RollDamage(s.ctx, &engine.RollDamageInput{Character: s.char, Kind: engine.DamageThrust})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.adapter.RollDamage(s.ctx, &engine.RollDamageInput{Character: s.char, Kind: "crush"})
	s.Assert().True(errors.IsInvalidArgument(err))
}
