package codec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
)

type CodecTestSuite struct {
	suite.Suite
	gen *idgen.SequentialGenerator
}

func TestCodecSuite(t *testing.T) {
	suite.Run(t, new(CodecTestSuite))
}

func (s *CodecTestSuite) SetupTest() {
	s.gen = idgen.NewSequential("")
}

func (s *CodecTestSuite) knight() *gurps.Character {
	c := gurps.NewDefault()
	c.ID = "char_kay"
	c.PlayerID = "player_1"
	c.Name = "Sir Kay"
	c.Player = "Ana"
	c.PointTotal = 150
	c.UnspentPoints = 12
	c.Height = "5'10\""
	c.Appearance = "Scarred, but proud"
	c.TechLevel = "3"
	c.ST, c.DX, c.IQ, c.HT = 13, 12, 10, 12
	c.HP, c.Will, c.Per, c.FP = 15, 10, 10, 12
	c.BasicSpeed = 6
	c.BasicMove = 6
	c.BasicLift = 34
	c.DamageThrust = "1d"
	c.DamageSwing = "2d-1"
	c.CurrentWeight = 22.5
	c.Overrides = &gurps.Overrides{HP: true}
	c.Advantages = []gurps.Advantage{
		{ID: "adv_1", Name: "Combat Reflexes", Cost: 15, Description: "Fast: +1 to active defenses"},
	}
	c.Disadvantages = []gurps.Disadvantage{{ID: "dis_1", Name: "Honesty", Cost: -10}}
	c.Skills = []gurps.Skill{{
		ID: "skill_1", Name: "Broadsword", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage,
		Points: 8, Level: 14, RelativeLevel: "DX+2", Modifier: 1,
	}}
	c.Equipment = []gurps.Equipment{{ID: "eq_1", Name: "Broadsword", Weight: 3, Quantity: 1}}
	c.Spells = []gurps.Spell{{ID: "spell_1", Name: "Light", Class: "Regular", SkillLevel: 11, TimeToCast: "1 sec"}}
	c.Languages = []gurps.Language{{
		ID: "lang_1", Name: "Latin", WrittenLevel: gurps.FluencyBroken, SpokenLevel: gurps.FluencyAccented, Points: 3,
	}}
	c.Status = []gurps.Status{{ID: "status_1", Level: 1, Points: 5, Description: "Knight"}}
	c.Reputation = []gurps.Reputation{{ID: "rep_1", Description: "Loyal", Modifier: 2, Scope: "Camelot", Points: 5}}
	c.CulturalFamiliarities = []gurps.CulturalFamiliarity{{ID: "cf_1", Name: "Saxon", Points: 1}}
	c.ReactionModifiers = []gurps.ReactionModifier{{ID: "rm_1", Source: "Charisma", Modifier: 1, Description: "all"}}
	c.EquipmentSimple = []string{"rope", "torch"}
	c.CampaignLore = "Seneschal of Camelot, brother of Arthur"
	return c
}

func (s *CodecTestSuite) TestRoundTrip() {
	for _, f := range codec.Formats {
		s.Run(string(f), func() {
			want := s.knight()

			data, err := codec.Encode(want, f)
			s.Require().NoError(err)

			got, err := codec.Load(data, f, s.gen)
			s.Require().NoError(err)
			s.Assert().Equal(want, got)
		})
	}
}

func (s *CodecTestSuite) TestRoundTripKeepsTimestamps() {
	for _, f := range codec.Formats {
		s.Run(string(f), func() {
			want := s.knight()
			want.CreatedAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
			want.UpdatedAt = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)

			data, err := codec.Encode(want, f)
			s.Require().NoError(err)

			got, err := codec.Load(data, f, s.gen)
			s.Require().NoError(err)
			s.Assert().True(want.CreatedAt.Equal(got.CreatedAt))
			s.Assert().True(want.UpdatedAt.Equal(got.UpdatedAt))
		})
	}
}

func (s *CodecTestSuite) TestSparseJSONMergesOverDefaults() {
	got, err := codec.Load([]byte(`{"name":"Bob","ST":12,"skills":[{"name":"Brawling","attribute":"DX","difficulty":"E","points":1}]}`), codec.FormatJSON, s.gen)
	s.Require().NoError(err)

	s.Assert().Equal("Bob", got.Name)
	s.Assert().Equal(12, got.ST)
	s.Assert().Equal(10, got.DX)
	s.Assert().Equal(gurps.DefaultPointTotal, got.PointTotal)
	s.Assert().NotNil(got.Advantages)
	s.Assert().Empty(got.Advantages)
	s.Require().Len(got.Skills, 1)
	s.Assert().Equal("skill_1", got.Skills[0].ID)

	// HP 10 no longer matches ST 12, so it reads as a deliberate value
	s.Require().NotNil(got.Overrides)
	s.Assert().True(got.Overrides.HP)
	s.Assert().False(got.Overrides.Will)
}

func (s *CodecTestSuite) TestNormalizeKeepsExistingIDs() {
	c := gurps.NewDefault()
	c.Advantages = []gurps.Advantage{{ID: "adv_keep", Name: "Luck"}, {Name: "Fit"}}
	c.Reputation = nil

	filled := codec.Normalize(c, s.gen)

	s.Assert().Equal(1, filled)
	s.Assert().Equal("adv_keep", c.Advantages[0].ID)
	s.Assert().Equal("adv_1", c.Advantages[1].ID)
	s.Assert().NotNil(c.Reputation)
}

func (s *CodecTestSuite) TestNormalizeReassignsRepeatedIDs() {
	c := gurps.NewDefault()
	c.Skills = []gurps.Skill{
		{ID: "x", Name: "Stealth"},
		{ID: "x", Name: "Climbing"},
		{ID: "skill_1", Name: "Swimming"},
	}

	filled := codec.Normalize(c, s.gen)

	s.Assert().Equal(1, filled)
	s.Assert().Equal("x", c.Skills[0].ID)
	s.Assert().Equal("skill_2", c.Skills[1].ID, "skill_1 is already taken later in the list")
	s.Assert().Equal("skill_1", c.Skills[2].ID)
}

func (s *CodecTestSuite) TestNormalizeKeepsRecordedOverrides() {
	c := gurps.NewDefault()
	c.ST = 14
	c.Overrides = &gurps.Overrides{}

	codec.Normalize(c, s.gen)

	s.Assert().False(c.Overrides.HP)
}

func (s *CodecTestSuite) TestLegacyFlatRow() {
	data := "name,player,ST,DX,IQ,HT,HP,advantages,skills\n" +
		`Gawain,Ben,12,abc,10,11,12,"id:a1§name:Area Knowledge: Orkney§cost:1|name:Luck§cost:15",name:Stealth§attribute:DX§difficulty:A§points:2` + "\n"

	got, err := codec.Load([]byte(data), codec.FormatCSV, s.gen)
	s.Require().NoError(err)

	s.Assert().Equal("Gawain", got.Name)
	s.Assert().Equal(12, got.ST)
	s.Assert().Equal(10, got.DX, "malformed numbers keep the default")
	s.Require().Len(got.Advantages, 2)
	s.Assert().Equal("a1", got.Advantages[0].ID)
	s.Assert().Equal("Area Knowledge: Orkney", got.Advantages[0].Name)
	s.Assert().Equal(15, got.Advantages[1].Cost)
	s.Assert().NotEmpty(got.Advantages[1].ID)
	s.Require().Len(got.Skills, 1)
	s.Assert().Equal(gurps.DifficultyAverage, got.Skills[0].Difficulty)
	s.Assert().Empty(got.Spells)
}

func (s *CodecTestSuite) TestFlatRowSeparatorsInFreeText() {
	c := gurps.NewDefault()
	c.Appearance = `Scar from a "dragon" | claws § teeth`
	c.Advantages = []gurps.Advantage{{ID: "adv_1", Name: "Luck | Fate", Cost: 15}}
	c.Skills = []gurps.Skill{{
		ID:         "skill_1",
		Name:       "Sword § Shield",
		Attribute:  gurps.AttributeDX,
		Difficulty: gurps.DifficultyAverage,
		Points:     2,
		Notes:      `said "en garde"`,
	}}

	data, err := codec.Encode(c, codec.FormatCSV)
	s.Require().NoError(err)
	got, err := codec.Decode(data, codec.FormatCSV)
	s.Require().NoError(err)

	s.Run("scalar cells keep every character", func() {
		s.Assert().Equal(c.Appearance, got.Appearance)
	})

	s.Run("entry separator splits the entry", func() {
		s.Require().Len(got.Advantages, 2)
		s.Assert().Equal("adv_1", got.Advantages[0].ID)
		s.Assert().Equal("Luck ", got.Advantages[0].Name)
		s.Assert().Zero(got.Advantages[0].Cost)
		s.Assert().Empty(got.Advantages[1].ID)
		s.Assert().Empty(got.Advantages[1].Name)
		s.Assert().Equal(15, got.Advantages[1].Cost)
	})

	s.Run("pair separator truncates the value", func() {
		s.Require().Len(got.Skills, 1)
		s.Assert().Equal("Sword ", got.Skills[0].Name)
		s.Assert().Equal(gurps.AttributeDX, got.Skills[0].Attribute)
		s.Assert().Equal(2, got.Skills[0].Points)
		s.Assert().Equal(`said "en garde"`, got.Skills[0].Notes)
	})
}

func (s *CodecTestSuite) TestFlatRowHeader() {
	cols := codec.FlatColumns()
	s.Require().Len(cols, 45)
	s.Assert().Equal("name", cols[0])
	s.Assert().Equal("reactionModifiers", cols[36])
	s.Assert().Equal("playerId", cols[42])
	s.Assert().Equal([]string{"createdAt", "updatedAt"}, cols[43:])

	data, err := codec.Encode(s.knight(), codec.FormatCSV)
	s.Require().NoError(err)
	s.Assert().True(strings.HasPrefix(string(data), strings.Join(cols, ",")+"\n"))
}

func (s *CodecTestSuite) TestDecodeErrors() {
	testCases := []struct {
		name   string
		format codec.Format
		data   string
	}{
		{name: "broken json", format: codec.FormatJSON, data: `{"name":`},
		{name: "json array", format: codec.FormatJSON, data: `[1,2]`},
		{name: "broken yaml", format: codec.FormatYAML, data: "name: [unclosed"},
		{name: "csv header only", format: codec.FormatCSV, data: "name,ST\n"},
		{name: "empty csv", format: codec.FormatCSV, data: ""},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := codec.Decode([]byte(tc.data), tc.format)
			s.Require().Error(err)
			s.Assert().True(errors.IsInvalidArgument(err))
			s.Assert().Equal(string(tc.format), errors.GetMeta(err)["format"])
			s.Assert().NotEmpty(errors.GetMeta(err)["reason"])
		})
	}
}

func (s *CodecTestSuite) TestFormatFromFileName() {
	testCases := []struct {
		file     string
		expected codec.Format
		wantErr  bool
	}{
		{file: "Sir_Kay_2024-03-01T09-30-00.json", expected: codec.FormatJSON},
		{file: "sheet.YML", expected: codec.FormatYAML},
		{file: "sheet.yaml", expected: codec.FormatYAML},
		{file: "export.csv", expected: codec.FormatCSV},
		{file: "notes.txt", wantErr: true},
		{file: "README", wantErr: true},
	}

	for _, tc := range testCases {
		s.Run(tc.file, func() {
			got, err := codec.FormatFromFileName(tc.file)
			if tc.wantErr {
				s.Require().Error(err)
				s.Assert().True(errors.IsUnimplemented(err))
				return
			}
			s.Require().NoError(err)
			s.Assert().Equal(tc.expected, got)
		})
	}
}

func (s *CodecTestSuite) TestFileName() {
	est := time.FixedZone("EST", -5*60*60)
	at := time.Date(2024, 3, 1, 4, 30, 15, 0, est)

	c := gurps.NewDefault()
	s.Assert().Equal("Character_2024-03-01T09-30-15.json", codec.FileName(c, codec.FormatJSON, at))

	c.Name = "Kay/Seneschal"
	s.Assert().Equal("Kay_Seneschal_2024-03-01T09-30-15.csv", codec.FileName(c, codec.FormatCSV, at))
}

func (s *CodecTestSuite) TestEncodeNil() {
	_, err := codec.Encode(nil, codec.FormatJSON)
	s.Assert().True(errors.IsInvalidArgument(err))
}
