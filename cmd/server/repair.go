package main

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/config"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	characterrepo "github.com/KirkDiggler/gurps-api/internal/repositories/character"
)

var repairDryRun bool

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Normalize and recalculate every stored character",
	Long: `Walk every stored character, fill missing entry ids and override flags,
recalculate derived values and write back the records that changed.`,
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().BoolVar(&repairDryRun, "dry-run", false, "Report changes without writing them")
}

func runRepair(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg.Log)

	ctx := cmd.Context()
	deps, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	ids, err := deps.repo.ListIDs(ctx, characterrepo.ListIDsInput{})
	if err != nil {
		return errors.Wrap(err, "failed to list characters")
	}

	var changed, failed int
	for _, id := range ids.IDs {
		got, err := deps.repo.Get(ctx, characterrepo.GetInput{ID: id})
		if err != nil {
			failed++
			slog.ErrorContext(ctx, "failed to load character", "character_id", id, "error", err)
			continue
		}

		c := got.Character.Clone()
		filled := codec.Normalize(c, deps.idGen)
		out, err := deps.engine.Recalculate(ctx, &engine.RecalculateInput{Character: c})
		if err != nil {
			failed++
			slog.ErrorContext(ctx, "failed to recalculate character", "character_id", id, "error", err)
			continue
		}
		if reflect.DeepEqual(got.Character, out.Character) {
			continue
		}

		changed++
		slog.InfoContext(ctx, "character needs repair", "character_id", id, "ids_filled", filled, "dry_run", repairDryRun)
		if repairDryRun {
			continue
		}
		if _, err := deps.repo.Update(ctx, characterrepo.UpdateInput{Character: out.Character}); err != nil {
			failed++
			slog.ErrorContext(ctx, "failed to store repaired character", "character_id", id, "error", err)
		}
	}

	fmt.Printf("Checked %d characters: %d changed, %d failed\n", len(ids.IDs), changed, failed)
	if failed > 0 {
		return errors.Internalf("%d characters could not be repaired", failed)
	}
	return nil
}
