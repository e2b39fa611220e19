package character

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	characterrepo "github.com/KirkDiggler/gurps-api/internal/repositories/character"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

const formatUnknown = "unknown"

// ExportCharacter encodes a sheet and archives the file under the character
func (o *Orchestrator) ExportCharacter(ctx context.Context, input *character.ExportCharacterInput) (*character.ExportCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	format, err := codec.ParseFormat(string(input.Format))
	if err != nil {
		return nil, err
	}

	c, err := o.get(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	data, err := codec.Encode(c, format)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode character %s", c.ID)
	}

	fileName := codec.FileName(c, format, o.clock.Now())
	info, err := o.archive.Put(ctx, archive.Key(c.ID, fileName), bytes.NewReader(data), archive.PutOptions{
		ContentType: format.ContentType(),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to archive export %s", fileName)
	}

	if o.metrics != nil {
		o.metrics.ObserveExport(string(format))
	}
	slog.InfoContext(ctx, "character exported",
		"character_id", c.ID,
		"format", format,
		"key", info.Key)

	return &character.ExportCharacterOutput{
		FileName: fileName,
		Data:     data,
		Archive:  info,
	}, nil
}

// ImportCharacter decodes a file and stores it. Nothing is written when the
// file cannot be read.
func (o *Orchestrator) ImportCharacter(ctx context.Context, input *character.ImportCharacterInput) (*character.ImportCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("fileName", input.FileName, vb)
	if len(input.Data) == 0 {
		vb.RequiredField("data")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, format, err := o.importCharacter(ctx, input)
	if o.metrics != nil {
		o.metrics.ObserveImport(format, err)
	}
	if err != nil {
		slog.WarnContext(ctx, "character import failed",
			"file_name", input.FileName,
			"format", format,
			"error", err)
		return nil, err
	}
	return out, nil
}

func (o *Orchestrator) importCharacter(ctx context.Context, input *character.ImportCharacterInput) (*character.ImportCharacterOutput, string, error) {
	format, err := codec.FormatFromFileName(input.FileName)
	if err != nil {
		return nil, formatUnknown, err
	}

	c, err := codec.Decode(input.Data, format)
	if err != nil {
		return nil, string(format), err
	}
	filled := codec.Normalize(c, o.idGen)

	if input.CharacterID != "" {
		c.ID = input.CharacterID
		unlock := o.lock(c.ID)
		defer unlock()

		// a file without an owner keeps the replaced sheet's owner
		if c.PlayerID == "" {
			existing, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: c.ID})
			switch {
			case err == nil:
				c.PlayerID = existing.Character.PlayerID
			case !errors.IsNotFound(err):
				return nil, string(format), errors.Wrapf(err, "failed to get character %s", c.ID)
			}
		}
	} else {
		c.ID = idgen.NextFunc(o.idGen, idgen.PrefixCharacter)()
	}
	if input.PlayerID != "" {
		c.PlayerID = input.PlayerID
	}

	recalculated, err := o.engine.Recalculate(ctx, &engine.RecalculateInput{Character: c})
	if err != nil {
		return nil, string(format), errors.Wrap(err, "failed to recalculate imported character")
	}

	stored, err := o.characterRepo.Upsert(ctx, characterrepo.UpsertInput{Character: recalculated.Character})
	if err != nil {
		return nil, string(format), errors.Wrapf(err, "failed to store imported character %s", c.ID)
	}

	slog.InfoContext(ctx, "character imported",
		"character_id", stored.Character.ID,
		"format", format,
		"created", stored.Created,
		"ids_filled", filled)

	return &character.ImportCharacterOutput{
		Character: stored.Character,
		Created:   stored.Created,
		IDsFilled: filled,
	}, string(format), nil
}

// ListExports lists the archived files of one character
func (o *Orchestrator) ListExports(ctx context.Context, input *character.ListExportsInput) (*character.ListExportsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	infos, err := o.archive.List(ctx, archive.CharacterPrefix(input.CharacterID))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list exports for character %s", input.CharacterID)
	}

	return &character.ListExportsOutput{Exports: infos}, nil
}
