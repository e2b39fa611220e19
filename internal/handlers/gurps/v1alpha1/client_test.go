package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/handlers/gurps/v1alpha1"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
	charactermock "github.com/KirkDiggler/gurps-api/internal/services/character/mock"
)

// ClientTestSuite runs the typed client against a real server over an
// in-memory listener
type ClientTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *charactermock.MockService
	server      *grpc.Server
	conn        *grpc.ClientConn
	client      *v1alpha1.Client
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = charactermock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{CharacterService: s.mockService})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterCharacterServiceServer(s.server, handler)
	go func() { _ = s.server.Serve(lis) }()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.client, err = v1alpha1.NewClient(s.conn)
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func (s *ClientTestSuite) TestGetCharacterRoundTrip() {
	c := gurps.NewDefault()
	c.ID = "char_1"
	c.Name = "Sir Anselm"
	c.CreatedAt = time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	c.Skills = []gurps.Skill{{ID: "skill_1", Name: "Broadsword", Attribute: gurps.AttributeDX, Difficulty: gurps.DifficultyAverage, Points: 4, Level: 11, RelativeLevel: "DX+1"}}

	s.mockService.EXPECT().
		GetCharacter(gomock.Any(), &character.GetCharacterInput{CharacterID: "char_1"}).
		Return(&character.GetCharacterOutput{Character: c}, nil)

	out, err := s.client.GetCharacter(context.Background(), &character.GetCharacterInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Assert().Equal(c, out.Character)
}

func (s *ClientTestSuite) TestErrorsKeepCodeAndMeta() {
	s.mockService.EXPECT().
		DeleteCharacter(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character not found").WithMeta("character_id", "char_9"))

	_, err := s.client.DeleteCharacter(context.Background(), &character.DeleteCharacterInput{CharacterID: "char_9"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
	s.Assert().Equal("char_9", errors.GetMeta(err)["character_id"])
}

func (s *ClientTestSuite) TestExportCarriesFileBytes() {
	data := []byte("name,ST\nSir Anselm,12\n")
	s.mockService.EXPECT().
		ExportCharacter(gomock.Any(), &character.ExportCharacterInput{CharacterID: "char_1", Format: codec.FormatCSV}).
		Return(&character.ExportCharacterOutput{
			FileName: "Sir Anselm_2024-05-04T12-00-00.csv",
			Data:     data,
			Archive:  archive.Info{Key: "exports/char_1/Sir Anselm_2024-05-04T12-00-00.csv", Size: int64(len(data))},
		}, nil)

	out, err := s.client.ExportCharacter(context.Background(), &character.ExportCharacterInput{
		CharacterID: "char_1",
		Format:      codec.FormatCSV,
	})
	s.Require().NoError(err)
	s.Assert().Equal(data, out.Data)
	s.Assert().Equal(int64(len(data)), out.Archive.Size)
}
