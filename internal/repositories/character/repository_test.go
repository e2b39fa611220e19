package character_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/clock"
	"github.com/KirkDiggler/gurps-api/internal/repositories/character"
)

var (
	createdAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	laterAt   = time.Date(2024, 3, 2, 18, 30, 0, 0, time.UTC)
)

// RepositoryContractSuite runs the same behavior checks against every backend
type RepositoryContractSuite struct {
	suite.Suite
	open func(s *RepositoryContractSuite) character.Repository
	clk  *clock.Fixed
	repo character.Repository
	ctx  context.Context
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{open: func(s *RepositoryContractSuite) character.Repository {
		mr := miniredis.RunT(s.T())
		repo, err := character.NewRedis(&character.RedisConfig{
			Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
			Clock:  s.clk,
		})
		s.Require().NoError(err)
		return repo
	}})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryContractSuite{open: func(s *RepositoryContractSuite) character.Repository {
		repo, err := character.NewSQLite(context.Background(), &character.SQLiteConfig{
			Path:  filepath.Join(s.T().TempDir(), "gurps.db"),
			Clock: s.clk,
		})
		s.Require().NoError(err)
		s.T().Cleanup(func() { _ = repo.Close() })
		return repo
	}})
}

func (s *RepositoryContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.clk = &clock.Fixed{At: createdAt}
	s.repo = s.open(s)
}

func newCharacter(id, playerID, name string) *gurps.Character {
	c := gurps.NewDefault()
	c.ID = id
	c.PlayerID = playerID
	c.Name = name
	c.Skills = []gurps.Skill{{
		ID: "skill_1", Name: "Broadsword", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage,
		Points: 2, Level: 10, RelativeLevel: "DX+0",
	}}
	return c
}

func (s *RepositoryContractSuite) create(c *gurps.Character) *gurps.Character {
	out, err := s.repo.Create(s.ctx, character.CreateInput{Character: c})
	s.Require().NoError(err)
	return out.Character
}

func (s *RepositoryContractSuite) TestCreateAndGet() {
	in := newCharacter("char_1", "player_1", "Kay")
	created := s.create(in)

	s.Assert().Equal(createdAt, created.CreatedAt)
	s.Assert().Equal(createdAt, created.UpdatedAt)
	s.Assert().True(in.CreatedAt.IsZero(), "input record is not stamped")

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Assert().Equal(created, got.Character)
}

func (s *RepositoryContractSuite) TestCreateDuplicate() {
	s.create(newCharacter("char_1", "player_1", "Kay"))

	_, err := s.repo.Create(s.ctx, character.CreateInput{Character: newCharacter("char_1", "player_1", "Kay")})
	s.Assert().True(errors.IsAlreadyExists(err))
}

func (s *RepositoryContractSuite) TestInvalidInput() {
	_, err := s.repo.Create(s.ctx, character.CreateInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: newCharacter("", "", "x")})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, character.GetInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RepositoryContractSuite) TestMissing() {
	_, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_none"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.Update(s.ctx, character.UpdateInput{Character: newCharacter("char_none", "", "x")})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, character.DeleteInput{ID: "char_none"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RepositoryContractSuite) TestUpdateKeepsCreatedAt() {
	created := s.create(newCharacter("char_1", "player_1", "Kay"))

	s.clk.At = laterAt
	next := created.Clone()
	next.Name = "Sir Kay"
	next.ST = 13
	next.CreatedAt = time.Time{}

	out, err := s.repo.Update(s.ctx, character.UpdateInput{Character: next})
	s.Require().NoError(err)
	s.Assert().Equal(createdAt, out.Character.CreatedAt)
	s.Assert().Equal(laterAt, out.Character.UpdatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Assert().Equal("Sir Kay", got.Character.Name)
	s.Assert().Equal(13, got.Character.ST)
}

func (s *RepositoryContractSuite) TestUpsert() {
	out, err := s.repo.Upsert(s.ctx, character.UpsertInput{Character: newCharacter("char_1", "player_1", "Kay")})
	s.Require().NoError(err)
	s.Assert().True(out.Created)

	s.clk.At = laterAt
	out, err = s.repo.Upsert(s.ctx, character.UpsertInput{Character: newCharacter("char_1", "player_1", "Imported Kay")})
	s.Require().NoError(err)
	s.Assert().False(out.Created)
	s.Assert().Equal(createdAt, out.Character.CreatedAt)
	s.Assert().Equal(laterAt, out.Character.UpdatedAt)

	got, err := s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Require().NoError(err)
	s.Assert().Equal("Imported Kay", got.Character.Name)
}

func (s *RepositoryContractSuite) TestDelete() {
	s.create(newCharacter("char_1", "player_1", "Kay"))

	_, err := s.repo.Delete(s.ctx, character.DeleteInput{ID: "char_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, character.GetInput{ID: "char_1"})
	s.Assert().True(errors.IsNotFound(err))

	ids, err := s.repo.ListIDs(s.ctx, character.ListIDsInput{})
	s.Require().NoError(err)
	s.Assert().Empty(ids.IDs)

	list, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Assert().Empty(list.Characters)
}

func (s *RepositoryContractSuite) TestListByPlayerID() {
	s.create(newCharacter("char_b", "player_1", "Bedivere"))
	s.create(newCharacter("char_a", "player_1", "Agravaine"))
	s.create(newCharacter("char_c", "player_2", "Caradoc"))

	out, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_1"})
	s.Require().NoError(err)
	s.Require().Len(out.Characters, 2)
	s.Assert().Equal("char_a", out.Characters[0].ID)
	s.Assert().Equal("char_b", out.Characters[1].ID)

	s.Run("update moves the player index", func() {
		moved := newCharacter("char_c", "player_1", "Caradoc")
		_, err := s.repo.Update(s.ctx, character.UpdateInput{Character: moved})
		s.Require().NoError(err)

		out, err := s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_1"})
		s.Require().NoError(err)
		s.Assert().Len(out.Characters, 3)

		out, err = s.repo.ListByPlayerID(s.ctx, character.ListByPlayerIDInput{PlayerID: "player_2"})
		s.Require().NoError(err)
		s.Assert().Empty(out.Characters)
	})
}

func (s *RepositoryContractSuite) TestListIDs() {
	s.create(newCharacter("char_2", "", "Two"))
	s.create(newCharacter("char_1", "player_1", "One"))

	out, err := s.repo.ListIDs(s.ctx, character.ListIDsInput{})
	s.Require().NoError(err)
	s.Assert().Equal([]string{"char_1", "char_2"}, out.IDs)
}
