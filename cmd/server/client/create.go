package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

var (
	createPlayerID  string
	createName      string
	createPatchFile string
)

var createCmd = &cobra.Command{
	Use:   "create [key=value ...]",
	Short: "Create a character",
	Long: `Create a 100-point character at attribute 10. Optional key=value pairs or a
patch file are applied before the first save, e.g. "create --name Anselm ST=12".`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createPlayerID, "player-id", "", "Owning player ID")
	createCmd.Flags().StringVar(&createName, "name", "", "Character name")
	createCmd.Flags().StringVar(&createPatchFile, "patch-file", "", "JSON patch to apply")
}

func runCreate(_ *cobra.Command, args []string) error {
	input := &character.CreateCharacterInput{
		PlayerID: createPlayerID,
		Name:     createName,
	}

	var err error
	switch {
	case createPatchFile != "":
		input.Patch, err = readPatchFile(createPatchFile)
	case len(args) > 0:
		input.Patch, err = parseAssignments(args)
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

	out, err := client.CreateCharacter(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	fmt.Printf("Created character %s\n", out.Character.ID)
	RenderSheet(os.Stdout, out.Character, nil)
	return nil
}
