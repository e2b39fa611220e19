package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// Handler implements CharacterServiceServer on top of character.Service
type Handler struct {
	characterService character.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		characterService: cfg.CharacterService,
	}, nil
}

var _ CharacterServiceServer = (*Handler)(nil)

// serve decodes the request, calls the service and encodes the result.
// Every error leaves as a gRPC status.
func serve[I, O any](ctx context.Context, req *structpb.Struct, call func(context.Context, *I) (*O, error)) (*structpb.Struct, error) {
	input := new(I)
	if err := fromStruct(req, input); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := call(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := toStruct(output)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return resp, nil
}

// CreateCharacter creates a sheet
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.CreateCharacter)
}

// GetCharacter loads a sheet
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.GetCharacter)
}

// ListCharacters lists sheets
func (h *Handler) ListCharacters(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.ListCharacters)
}

// UpdateCharacter applies a patch
func (h *Handler) UpdateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.UpdateCharacter)
}

// DeleteCharacter removes a sheet
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.DeleteCharacter)
}

// ExportCharacter encodes and archives a sheet
func (h *Handler) ExportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.ExportCharacter)
}

// ImportCharacter stores an uploaded file
func (h *Handler) ImportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.ImportCharacter)
}

// ListExports lists archived files
func (h *Handler) ListExports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.ListExports)
}

// GetSummary returns the combat view
func (h *Handler) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.GetSummary)
}

// RollSkill rolls against a skill
func (h *Handler) RollSkill(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.RollSkill)
}

// RollDamage rolls thrust or swing
func (h *Handler) RollDamage(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.RollDamage)
}

// ListCatalog returns the predefined options
func (h *Handler) ListCatalog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.ListCatalog)
}

// AddFromCatalog adds a predefined option to a sheet
func (h *Handler) AddFromCatalog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return serve(ctx, req, h.characterService.AddFromCatalog)
}
