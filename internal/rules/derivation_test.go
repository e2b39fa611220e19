package rules_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

type DerivationTestSuite struct {
	suite.Suite
}

func TestDerivationSuite(t *testing.T) {
	suite.Run(t, new(DerivationTestSuite))
}

func (s *DerivationTestSuite) TestBasicLift() {
	s.Assert().Equal(20, rules.BasicLift(10))
	s.Assert().Equal(33, rules.BasicLift(13))
	s.Assert().Equal(0, rules.BasicLift(0))
	s.Assert().Equal(0, rules.BasicLift(1))

	prev := rules.BasicLift(1)
	for st := 2; st <= 200; st++ {
		lift := rules.BasicLift(st)
		s.Require().GreaterOrEqual(lift, prev, "ST %d", st)
		prev = lift
	}
}

func (s *DerivationTestSuite) TestBasicSpeed() {
	s.Assert().Equal(5.0, rules.BasicSpeed(10, 10))
	s.Assert().Equal(5.75, rules.BasicSpeed(11, 12))
	s.Assert().Equal(6.25, rules.BasicSpeed(12, 13))
	s.Assert().Equal(0.0, rules.BasicSpeed(0, 0))

	for dx := 1; dx <= 30; dx++ {
		for ht := 1; ht <= 30; ht++ {
			speed := rules.BasicSpeed(dx, ht)
			s.Require().Equal(speed*4, math.Floor(speed*4), "DX %d HT %d", dx, ht)
		}
	}
}

func (s *DerivationTestSuite) TestDamage() {
	testCases := []struct {
		st     int
		thrust string
		swing  string
	}{
		{st: 10, thrust: "1d+1", swing: "3d+1"},
		{st: 1, thrust: "1d", swing: "1d+1"},
		{st: 6, thrust: "1d-1", swing: "2d"},
		{st: 8, thrust: "1d", swing: "2d+2"},
		{st: 12, thrust: "2d-1", swing: "4d"},
		{st: 15, thrust: "2d+1", swing: "5d"},
		{st: 0, thrust: "1d-1", swing: "1d"},
	}

	for _, tc := range testCases {
		s.Run(tc.thrust+"/"+tc.swing, func() {
			d := rules.Damage(tc.st)
			s.Assert().Equal(tc.thrust, d.Thrust)
			s.Assert().Equal(tc.swing, d.Swing)
		})
	}
}

func (s *DerivationTestSuite) TestFormatDice() {
	s.Assert().Equal("2d", rules.FormatDice(2, 0))
	s.Assert().Equal("1d-1", rules.FormatDice(1, -1))
	s.Assert().Equal("3d+2", rules.FormatDice(3, 2))
}

func (s *DerivationTestSuite) TestDefaultSecondary() {
	sec := rules.DefaultSecondary(gurps.Attributes{ST: 12, DX: 13, IQ: 11, HT: 12})
	s.Assert().Equal(gurps.Secondary{
		HP:         12,
		Will:       11,
		Per:        11,
		FP:         12,
		BasicSpeed: 6.25,
		BasicMove:  6,
	}, sec)
}
