// Package character defines the interface for character sheet operations
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/gurps-api/internal/services/character Service

import (
	"context"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/catalog"
	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/rules"
)

// Service defines the interface for character sheet operations
type Service interface {
	// Sheet lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Interchange files
	ExportCharacter(ctx context.Context, input *ExportCharacterInput) (*ExportCharacterOutput, error)
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)
	ListExports(ctx context.Context, input *ListExportsInput) (*ListExportsOutput, error)

	// Read-only views and rolls
	GetSummary(ctx context.Context, input *GetSummaryInput) (*GetSummaryOutput, error)
	RollSkill(ctx context.Context, input *RollSkillInput) (*RollSkillOutput, error)
	RollDamage(ctx context.Context, input *RollDamageInput) (*RollDamageOutput, error)

	// Predefined options
	ListCatalog(ctx context.Context, input *ListCatalogInput) (*ListCatalogOutput, error)
	AddFromCatalog(ctx context.Context, input *AddFromCatalogInput) (*AddFromCatalogOutput, error)
}

// CreateCharacterInput starts a sheet from the default record. Patch, when
// set, is applied before the first save.
type CreateCharacterInput struct {
	PlayerID string        `json:"playerId"`
	Name     string        `json:"name"`
	Patch    *engine.Patch `json:"patch,omitempty"`
}

// CreateCharacterOutput returns the stored sheet
type CreateCharacterOutput struct {
	Character *gurps.Character  `json:"character"`
	Ledger    rules.PointLedger `json:"ledger"`
}

// GetCharacterInput identifies a sheet
type GetCharacterInput struct {
	CharacterID string `json:"characterId"`
}

// GetCharacterOutput returns the stored sheet
type GetCharacterOutput struct {
	Character *gurps.Character `json:"character"`
}

// ListCharactersInput filters by player; empty lists every sheet
type ListCharactersInput struct {
	PlayerID string `json:"playerId,omitempty"`
}

// ListCharactersOutput returns the matching sheets
type ListCharactersOutput struct {
	Characters []*gurps.Character `json:"characters"`
}

// UpdateCharacterInput applies a typed patch
type UpdateCharacterInput struct {
	CharacterID string        `json:"characterId"`
	Patch       *engine.Patch `json:"patch"`
}

// UpdateCharacterOutput returns the stored result of the patch
type UpdateCharacterOutput struct {
	Character         *gurps.Character  `json:"character"`
	Ledger            rules.PointLedger `json:"ledger"`
	AttributesChanged bool              `json:"attributesChanged"`
	SkillsChanged     bool              `json:"skillsChanged"`
}

// DeleteCharacterInput identifies the sheet to remove
type DeleteCharacterInput struct {
	CharacterID string `json:"characterId"`
}

// DeleteCharacterOutput is empty
type DeleteCharacterOutput struct{}

// ExportCharacterInput picks the sheet and file format
type ExportCharacterInput struct {
	CharacterID string       `json:"characterId"`
	Format      codec.Format `json:"format"`
}

// ExportCharacterOutput carries the file and where it was archived
type ExportCharacterOutput struct {
	FileName string       `json:"fileName"`
	Data     []byte       `json:"data"`
	Archive  archive.Info `json:"archive"`
}

// ImportCharacterInput carries a file. With CharacterID set the import
// replaces that sheet; otherwise it becomes a new one.
type ImportCharacterInput struct {
	FileName    string `json:"fileName"`
	Data        []byte `json:"data"`
	CharacterID string `json:"characterId,omitempty"`
	PlayerID    string `json:"playerId,omitempty"`
}

// ImportCharacterOutput returns the stored sheet
type ImportCharacterOutput struct {
	Character *gurps.Character `json:"character"`
	Created   bool             `json:"created"`
	// IDsFilled counts entries that arrived without an id
	IDsFilled int `json:"idsFilled"`
}

// ListExportsInput identifies a sheet
type ListExportsInput struct {
	CharacterID string `json:"characterId"`
}

// ListExportsOutput lists archived files, oldest name first
type ListExportsOutput struct {
	Exports []archive.Info `json:"exports"`
}

// GetSummaryInput identifies a sheet
type GetSummaryInput struct {
	CharacterID string `json:"characterId"`
}

// GetSummaryOutput is the combat view
type GetSummaryOutput struct {
	Summary *engine.CombatSummary `json:"summary"`
}

// RollSkillInput names the skill and situational modifier
type RollSkillInput struct {
	CharacterID string `json:"characterId"`
	SkillID     string `json:"skillId"`
	Modifier    int    `json:"modifier,omitempty"`
}

// RollSkillOutput carries the roll
type RollSkillOutput struct {
	Roll *engine.SkillRoll `json:"roll"`
}

// RollDamageInput picks thrust or swing and a flat bonus
type RollDamageInput struct {
	CharacterID string            `json:"characterId"`
	Kind        engine.DamageKind `json:"kind"`
	Bonus       int               `json:"bonus,omitempty"`
}

// RollDamageOutput carries the roll
type RollDamageOutput struct {
	Roll *engine.DamageRoll `json:"roll"`
}

// ListCatalogInput is empty
type ListCatalogInput struct{}

// ListCatalogOutput returns the loaded catalog
type ListCatalogOutput struct {
	Catalog *catalog.Catalog `json:"catalog"`
}

// AddFromCatalogInput adds a predefined option to a sheet
type AddFromCatalogInput struct {
	CharacterID string       `json:"characterId"`
	Kind        catalog.Kind `json:"kind"`
	Name        string       `json:"name"`
}

// AddFromCatalogOutput returns the stored sheet
type AddFromCatalogOutput struct {
	Character *gurps.Character  `json:"character"`
	Ledger    rules.PointLedger `json:"ledger"`
}
