package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

// Client calls a remote character service. It implements character.Service,
// turning gRPC statuses back into coded errors.
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient wraps an open connection
func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	if conn == nil {
		return nil, errors.InvalidArgument("connection is required")
	}
	return &Client{conn: conn}, nil
}

var _ character.Service = (*Client)(nil)

func call[I, O any](ctx context.Context, conn grpc.ClientConnInterface, method string, input *I) (*O, error) {
	req, err := toStruct(input)
	if err != nil {
		return nil, err
	}

	resp := new(structpb.Struct)
	if err := conn.Invoke(ctx, FullMethod(method), req, resp); err != nil {
		return nil, errors.FromGRPCError(err)
	}

	output := new(O)
	if err := fromStruct(resp, output); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "malformed response")
	}
	return output, nil
}

// CreateCharacter creates a sheet
func (c *Client) CreateCharacter(ctx context.Context, input *character.CreateCharacterInput) (*character.CreateCharacterOutput, error) {
	return call[character.CreateCharacterInput, character.CreateCharacterOutput](ctx, c.conn, MethodCreateCharacter, input)
}

// GetCharacter loads a sheet
func (c *Client) GetCharacter(ctx context.Context, input *character.GetCharacterInput) (*character.GetCharacterOutput, error) {
	return call[character.GetCharacterInput, character.GetCharacterOutput](ctx, c.conn, MethodGetCharacter, input)
}

// ListCharacters lists sheets
func (c *Client) ListCharacters(ctx context.Context, input *character.ListCharactersInput) (*character.ListCharactersOutput, error) {
	return call[character.ListCharactersInput, character.ListCharactersOutput](ctx, c.conn, MethodListCharacters, input)
}

// UpdateCharacter applies a patch
func (c *Client) UpdateCharacter(ctx context.Context, input *character.UpdateCharacterInput) (*character.UpdateCharacterOutput, error) {
	return call[character.UpdateCharacterInput, character.UpdateCharacterOutput](ctx, c.conn, MethodUpdateCharacter, input)
}

// DeleteCharacter removes a sheet
func (c *Client) DeleteCharacter(ctx context.Context, input *character.DeleteCharacterInput) (*character.DeleteCharacterOutput, error) {
	return call[character.DeleteCharacterInput, character.DeleteCharacterOutput](ctx, c.conn, MethodDeleteCharacter, input)
}

// ExportCharacter encodes and archives a sheet
func (c *Client) ExportCharacter(ctx context.Context, input *character.ExportCharacterInput) (*character.ExportCharacterOutput, error) {
	return call[character.ExportCharacterInput, character.ExportCharacterOutput](ctx, c.conn, MethodExportCharacter, input)
}

// ImportCharacter uploads a file
func (c *Client) ImportCharacter(ctx context.Context, input *character.ImportCharacterInput) (*character.ImportCharacterOutput, error) {
	return call[character.ImportCharacterInput, character.ImportCharacterOutput](ctx, c.conn, MethodImportCharacter, input)
}

// ListExports lists archived files
func (c *Client) ListExports(ctx context.Context, input *character.ListExportsInput) (*character.ListExportsOutput, error) {
	return call[character.ListExportsInput, character.ListExportsOutput](ctx, c.conn, MethodListExports, input)
}

// GetSummary returns the combat view
func (c *Client) GetSummary(ctx context.Context, input *character.GetSummaryInput) (*character.GetSummaryOutput, error) {
	return call[character.GetSummaryInput, character.GetSummaryOutput](ctx, c.conn, MethodGetSummary, input)
}

// RollSkill rolls against a skill
func (c *Client) RollSkill(ctx context.Context, input *character.RollSkillInput) (*character.RollSkillOutput, error) {
	return call[character.RollSkillInput, character.RollSkillOutput](ctx, c.conn, MethodRollSkill, input)
}

// RollDamage rolls thrust or swing
func (c *Client) RollDamage(ctx context.Context, input *character.RollDamageInput) (*character.RollDamageOutput, error) {
	return call[character.RollDamageInput, character.RollDamageOutput](ctx, c.conn, MethodRollDamage, input)
}

// ListCatalog returns the predefined options
func (c *Client) ListCatalog(ctx context.Context, input *character.ListCatalogInput) (*character.ListCatalogOutput, error) {
	return call[character.ListCatalogInput, character.ListCatalogOutput](ctx, c.conn, MethodListCatalog, input)
}

// AddFromCatalog adds a predefined option to a sheet
func (c *Client) AddFromCatalog(ctx context.Context, input *character.AddFromCatalogInput) (*character.AddFromCatalogOutput, error) {
	return call[character.AddFromCatalogInput, character.AddFromCatalogOutput](ctx, c.conn, MethodAddFromCatalog, input)
}
