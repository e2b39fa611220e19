// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/catalog"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/metrics"
	"github.com/KirkDiggler/gurps-api/internal/pkg/clock"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/gurps-api/internal/repositories/character"
	"github.com/KirkDiggler/gurps-api/internal/rules"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Engine        engine.Engine
	Archive       archive.Store
	IDGenerator   idgen.Generator
	Clock         clock.Clock
	// Catalog defaults to an empty catalog
	Catalog *catalog.Catalog
	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Archive == nil {
		vb.RequiredField("Archive")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	engine        engine.Engine
	archive       archive.Store
	idGen         idgen.Generator
	clock         clock.Clock
	catalog       *catalog.Catalog
	metrics       *metrics.Metrics

	// locks holds one *sync.Mutex per character id. Entries are never
	// removed, so a caller queued behind a delete shares the mutex with
	// every later caller.
	locks sync.Map
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.Empty()
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		engine:        cfg.Engine,
		archive:       cfg.Archive,
		idGen:         cfg.IDGenerator,
		clock:         cfg.Clock,
		catalog:       cat,
		metrics:       cfg.Metrics,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ character.Service = (*Orchestrator)(nil)

// lock serializes writers of one character and returns the unlock func
func (o *Orchestrator) lock(characterID string) func() {
	mu, _ := o.locks.LoadOrStore(characterID, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// Sheet lifecycle

// CreateCharacter builds a default sheet, applies the optional patch and stores it
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *character.CreateCharacterInput) (*character.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c := gurps.NewDefault()
	c.ID = idgen.NextFunc(o.idGen, idgen.PrefixCharacter)()
	c.PlayerID = input.PlayerID
	c.Name = input.Name

	var (
		result *gurps.Character
		ledger rules.PointLedger
	)
	if input.Patch != nil {
		applied, err := o.engine.Apply(ctx, &engine.ApplyInput{Character: c, Patch: input.Patch})
		if err != nil {
			return nil, errors.Wrap(err, "failed to apply initial patch")
		}
		result, ledger = applied.Character, applied.Ledger
	} else {
		recalculated, err := o.engine.Recalculate(ctx, &engine.RecalculateInput{Character: c})
		if err != nil {
			return nil, errors.Wrap(err, "failed to calculate new character")
		}
		result, ledger = recalculated.Character, recalculated.Ledger
	}

	created, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: result})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character %s", c.ID)
	}

	slog.InfoContext(ctx, "character created",
		"character_id", created.Character.ID,
		"player_id", created.Character.PlayerID)

	return &character.CreateCharacterOutput{
		Character: created.Character,
		Ledger:    ledger,
	}, nil
}

// GetCharacter loads a stored sheet
func (o *Orchestrator) GetCharacter(ctx context.Context, input *character.GetCharacterInput) (*character.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	c, err := o.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	return &character.GetCharacterOutput{Character: c}, nil
}

// ListCharacters lists a player's sheets, or every sheet when no player is given
func (o *Orchestrator) ListCharacters(ctx context.Context, input *character.ListCharactersInput) (*character.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.PlayerID != "" {
		out, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list characters for player %s", input.PlayerID)
		}
		return &character.ListCharactersOutput{Characters: out.Characters}, nil
	}

	ids, err := o.characterRepo.ListIDs(ctx, characterrepo.ListIDsInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list character ids")
	}

	characters := make([]*gurps.Character, 0, len(ids.IDs))
	for _, id := range ids.IDs {
		got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: id})
		if errors.IsNotFound(err) {
			// deleted since the id listing
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get character %s", id)
		}
		characters = append(characters, got.Character)
	}

	return &character.ListCharactersOutput{Characters: characters}, nil
}

// UpdateCharacter applies a typed patch through the engine and stores the result
func (o *Orchestrator) UpdateCharacter(ctx context.Context, input *character.UpdateCharacterInput) (*character.UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if input.Patch == nil {
		vb.RequiredField("patch")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	applied, err := o.applyPatch(ctx, input.CharacterID, input.Patch)
	if err != nil {
		return nil, err
	}

	return &character.UpdateCharacterOutput{
		Character:         applied.Character,
		Ledger:            applied.Ledger,
		AttributesChanged: applied.AttributesChanged,
		SkillsChanged:     applied.SkillsChanged,
	}, nil
}

// DeleteCharacter removes a stored sheet. Archived exports are kept.
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *character.DeleteCharacterInput) (*character.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	unlock := o.lock(input.CharacterID)
	defer unlock()

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", input.CharacterID)
	}

	slog.InfoContext(ctx, "character deleted", "character_id", input.CharacterID)

	return &character.DeleteCharacterOutput{}, nil
}

// applyPatch runs get, apply and update under the character's lock. The
// stored record is untouched when the engine rejects the patch.
func (o *Orchestrator) applyPatch(ctx context.Context, characterID string, patch *engine.Patch) (*engine.ApplyOutput, error) {
	unlock := o.lock(characterID)
	defer unlock()

	got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", characterID)
	}

	applied, err := o.engine.Apply(ctx, &engine.ApplyInput{Character: got.Character, Patch: patch})
	if err != nil {
		return nil, errors.Wrap(err, "failed to apply patch")
	}

	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Character: applied.Character})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character %s", characterID)
	}

	slog.DebugContext(ctx, "character updated",
		"character_id", characterID,
		"attributes_changed", applied.AttributesChanged,
		"skills_changed", applied.SkillsChanged)

	return &engine.ApplyOutput{
		Character:         updated.Character,
		Ledger:            applied.Ledger,
		AttributesChanged: applied.AttributesChanged,
		SkillsChanged:     applied.SkillsChanged,
	}, nil
}

func (o *Orchestrator) get(ctx context.Context, characterID string) (*gurps.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	got, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get character %s", characterID)
	}
	return got.Character, nil
}
