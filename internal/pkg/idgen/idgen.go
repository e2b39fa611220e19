// Package idgen mints identifiers for characters and their collection entries.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/gurps-api/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// Entry ID prefixes, one per collection
const (
	PrefixCharacter    = "char"
	PrefixAdvantage    = "adv"
	PrefixDisadvantage = "dis"
	PrefixSkill        = "skill"
	PrefixEquipment    = "eq"
	PrefixSpell        = "spell"
	PrefixLanguage     = "lang"
	PrefixStatus       = "status"
	PrefixReputation   = "rep"
	PrefixCulture      = "cf"
	PrefixReaction     = "rm"
)

// SequentialGenerator generates sequential IDs; tests use it for stable output
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// NextFunc returns a closure minting "{prefix}_{id}" from g
func NextFunc(g Generator, prefix string) func() string {
	return func() string {
		return prefix + "_" + g.Generate()
	}
}
