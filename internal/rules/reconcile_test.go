package rules_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

type ReconcileTestSuite struct {
	suite.Suite
	base gurps.Attributes
}

func TestReconcileSuite(t *testing.T) {
	suite.Run(t, new(ReconcileTestSuite))
}

func (s *ReconcileTestSuite) SetupTest() {
	s.base = gurps.Attributes{ST: 10, DX: 10, IQ: 10, HT: 10}
}

func (s *ReconcileTestSuite) withST(a gurps.Attributes, st int) gurps.Attributes {
	a.ST = st
	return a
}

func (s *ReconcileTestSuite) TestTrackDefaultScenario() {
	policy := rules.PolicyTrackDefault
	sec := rules.DefaultSecondary(s.base)

	st14 := s.withST(s.base, 14)
	sec = rules.Reconcile(s.base, st14, sec, gurps.Overrides{}, policy)
	s.Assert().Equal(14, sec.HP)

	sec.HP = 20

	st16 := s.withST(s.base, 16)
	sec = rules.Reconcile(st14, st16, sec, gurps.Overrides{}, policy)
	s.Assert().Equal(20, sec.HP)
}

func (s *ReconcileTestSuite) TestExplicitScenario() {
	policy := rules.PolicyExplicit
	sec := rules.DefaultSecondary(s.base)
	overrides := gurps.Overrides{}

	st14 := s.withST(s.base, 14)
	sec = rules.Reconcile(s.base, st14, sec, overrides, policy)
	s.Assert().Equal(14, sec.HP)

	sec.HP = 20
	overrides.HP = true

	st16 := s.withST(s.base, 16)
	sec = rules.Reconcile(st14, st16, sec, overrides, policy)
	s.Assert().Equal(20, sec.HP)
}

func (s *ReconcileTestSuite) TestPoliciesDisagreeOnCoincidentalValue() {
	// The player typed 14 while ST was 14: equal to the default by coincidence.
	st14 := s.withST(s.base, 14)
	st16 := s.withST(s.base, 16)
	sec := rules.DefaultSecondary(st14)
	overrides := gurps.Overrides{HP: true}

	explicit := rules.Reconcile(st14, st16, sec, overrides, rules.PolicyExplicit)
	s.Assert().Equal(14, explicit.HP)

	heuristic := rules.Reconcile(st14, st16, sec, overrides, rules.PolicyTrackDefault)
	s.Assert().Equal(16, heuristic.HP)
}

func (s *ReconcileTestSuite) TestGroupsAreIndependent() {
	sec := rules.DefaultSecondary(s.base)
	next := s.withST(s.base, 18)

	for _, policy := range []rules.OverridePolicy{rules.PolicyExplicit, rules.PolicyTrackDefault} {
		s.Run(string(policy), func() {
			out := rules.Reconcile(s.base, next, sec, gurps.Overrides{}, policy)
			s.Assert().Equal(18, out.HP)
			s.Assert().Equal(sec.Will, out.Will)
			s.Assert().Equal(sec.Per, out.Per)
			s.Assert().Equal(sec.FP, out.FP)
			s.Assert().Equal(sec.BasicSpeed, out.BasicSpeed)
			s.Assert().Equal(sec.BasicMove, out.BasicMove)
		})
	}
}

func (s *ReconcileTestSuite) TestIQDrivesWillAndPer() {
	sec := rules.DefaultSecondary(s.base)
	sec.Per = 13
	next := s.base
	next.IQ = 12

	out := rules.Reconcile(s.base, next, sec, gurps.Overrides{Per: true}, rules.PolicyExplicit)
	s.Assert().Equal(12, out.Will)
	s.Assert().Equal(13, out.Per)
	s.Assert().Equal(10, out.HP)
}

func (s *ReconcileTestSuite) TestSpeedAndMoveFollowDXAndHT() {
	sec := rules.DefaultSecondary(s.base)
	next := s.base
	next.DX = 12
	next.HT = 13

	out := rules.Reconcile(s.base, next, sec, gurps.Overrides{}, rules.PolicyTrackDefault)
	s.Assert().Equal(6.25, out.BasicSpeed)
	s.Assert().Equal(6, out.BasicMove)
	s.Assert().Equal(13, out.FP)
	s.Assert().Equal(10, out.HP)
}

func (s *ReconcileTestSuite) TestInferOverrides() {
	sec := rules.DefaultSecondary(s.base)
	sec.FP = 12
	sec.BasicSpeed = 5.5

	o := rules.InferOverrides(s.base, sec)
	s.Assert().Equal(gurps.Overrides{FP: true, BasicSpeed: true}, o)
}

func (s *ReconcileTestSuite) TestResetSecondary() {
	sec := rules.DefaultSecondary(s.base)
	sec.Will = 15
	sec.BasicMove = 7

	sec = rules.ResetSecondary(s.base, sec, gurps.SecondaryWill)
	s.Assert().Equal(10, sec.Will)
	s.Assert().Equal(7, sec.BasicMove)

	sec = rules.ResetSecondary(s.base, sec, gurps.SecondaryBasicMove)
	s.Assert().Equal(5, sec.BasicMove)
}

func (s *ReconcileTestSuite) TestPolicyValid() {
	s.Assert().True(rules.PolicyExplicit.Valid())
	s.Assert().True(rules.PolicyTrackDefault.Valid())
	s.Assert().False(rules.OverridePolicy("sometimes").Valid())
}
