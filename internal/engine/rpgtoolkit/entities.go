package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// EntityTypeCharacter is the toolkit entity type of a GURPS sheet
const EntityTypeCharacter = "gurps_character"

// CharacterEntity wraps gurps.Character to implement core.Entity
type CharacterEntity struct {
	*gurps.Character
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return EntityTypeCharacter
}

var _ core.Entity = (*CharacterEntity)(nil)

func wrapCharacter(character *gurps.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// ExtractCharacter unwraps the character carried by an event source or target
func ExtractCharacter(entity core.Entity) (*gurps.Character, bool) {
	wrapped, ok := entity.(*CharacterEntity)
	if !ok || wrapped == nil {
		return nil, false
	}
	return wrapped.Character, true
}
