package testutils

import (
	"time"

	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
)

// Fixture values shared by tests
const (
	TestCharacterID   = "char_test_001"
	TestPlayerID      = "player_test_001"
	TestCharacterName = "Sir Anselm"
)

// TestTime is a fixed instant for stamped records
var TestTime = time.Date(2024, 5, 4, 12, 30, 0, 0, time.UTC)

// CharacterBuilder builds gurps.Character fixtures
type CharacterBuilder struct {
	c *gurps.Character
}

// NewCharacter starts from the default record with fixture ids
func NewCharacter() *CharacterBuilder {
	c := gurps.NewDefault()
	c.ID = TestCharacterID
	c.PlayerID = TestPlayerID
	c.Name = TestCharacterName
	return &CharacterBuilder{c: c}
}

// WithID sets the record id
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.c.ID = id
	return b
}

// WithPlayer sets the owning player
func (b *CharacterBuilder) WithPlayer(playerID string) *CharacterBuilder {
	b.c.PlayerID = playerID
	return b
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.c.Name = name
	return b
}

// WithAttributes sets ST, DX, IQ and HT without touching derived values
func (b *CharacterBuilder) WithAttributes(st, dx, iq, ht int) *CharacterBuilder {
	b.c.SetAttributes(gurps.Attributes{ST: st, DX: dx, IQ: iq, HT: ht})
	return b
}

// WithSkill appends a skill entry
func (b *CharacterBuilder) WithSkill(s gurps.Skill) *CharacterBuilder {
	b.c.Skills = append(b.c.Skills, s)
	return b
}

// WithAdvantage appends an advantage entry
func (b *CharacterBuilder) WithAdvantage(a gurps.Advantage) *CharacterBuilder {
	b.c.Advantages = append(b.c.Advantages, a)
	return b
}

// WithEquipment appends an equipment entry
func (b *CharacterBuilder) WithEquipment(e gurps.Equipment) *CharacterBuilder {
	b.c.Equipment = append(b.c.Equipment, e)
	return b
}

// Stamped sets CreatedAt and UpdatedAt to TestTime
func (b *CharacterBuilder) Stamped() *CharacterBuilder {
	b.c.CreatedAt = TestTime
	b.c.UpdatedAt = TestTime
	return b
}

// Build returns a copy, so a builder can produce several records
func (b *CharacterBuilder) Build() *gurps.Character {
	return b.c.Clone()
}
