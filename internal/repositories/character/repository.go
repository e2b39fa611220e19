// Package character persists GURPS character records
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/gurps-api/internal/repositories/character Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
)

// Repository defines the interface for character persistence
type Repository interface {
	// Create stores a new character and stamps CreatedAt/UpdatedAt
	// Returns errors.InvalidArgument for a nil record or empty ID
	// Returns errors.AlreadyExists if a character with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID
	// Returns errors.NotFound if the character doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing character
	// Returns errors.NotFound if the character doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Upsert creates or replaces a character; imports use it
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Delete removes a character and its index entries
	// Returns errors.NotFound if the character doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all characters for a player, ordered by ID
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)

	// ListIDs returns every stored character ID in ascending order
	ListIDs(ctx context.Context, input ListIDsInput) (*ListIDsOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *gurps.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *gurps.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *gurps.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *gurps.Character
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *gurps.Character
}

// UpsertInput defines the input for creating or replacing a character
type UpsertInput struct {
	Character *gurps.Character
}

// UpsertOutput reports whether the record was new
type UpsertOutput struct {
	Character *gurps.Character
	Created   bool
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing characters by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing characters by player
type ListByPlayerIDOutput struct {
	Characters []*gurps.Character
}

// ListIDsInput defines the input for listing every character ID
type ListIDsInput struct{}

// ListIDsOutput defines the output for listing every character ID
type ListIDsOutput struct {
	IDs []string
}

const (
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

func validateRecord(c *gurps.Character) error {
	if c == nil {
		return errors.InvalidArgument(errCharacterNil)
	}
	if c.ID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}

// stamp returns a copy of c carrying storage timestamps. createdAt is kept
// from the stored record when there is one.
func stamp(c *gurps.Character, createdAt, now time.Time) *gurps.Character {
	out := c.Clone()
	switch {
	case !createdAt.IsZero():
		out.CreatedAt = createdAt
	case out.CreatedAt.IsZero():
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	return out
}
