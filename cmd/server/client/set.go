package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

var setPatchFile string

var setCmd = &cobra.Command{
	Use:   "set key=value [key=value ...]",
	Short: "Update a character",
	Long: `Apply a patch to a character. Keys are patch field names:

  set --id char_x ST=12 name="Sir Anselm"
  set --id char_x HP=15                      (marks HP overridden)
  set --id char_x 'resetSecondary=["HP"]'
  set --id char_x 'skills={"add":[{"name":"Climbing","attribute":"DX","difficulty":"A","points":1}]}'`,
	RunE: runSet,
}

func init() {
	requireID(setCmd)
	setCmd.Flags().StringVar(&setPatchFile, "patch-file", "", "JSON patch to apply instead of key=value args")
}

func runSet(_ *cobra.Command, args []string) error {
	var (
		patch *engine.Patch
		err   error
	)
	switch {
	case setPatchFile != "":
		patch, err = readPatchFile(setPatchFile)
	case len(args) > 0:
		patch, err = parseAssignments(args)
	default:
		return fmt.Errorf("nothing to set: pass key=value pairs or --patch-file")
	}
	if err != nil {
		return err
	}

	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.UpdateCharacter(ctx, &character.UpdateCharacterInput{
		CharacterID: characterID,
		Patch:       patch,
	})
	if err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	RenderSheet(os.Stdout, out.Character, nil)
	return nil
}
