package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a character",
	RunE:  runGet,
}

var listPlayerID string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List characters",
	Long:  `List every character, or only those of one player with --player-id.`,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a character",
	RunE:  runDelete,
}

func init() {
	requireID(getCmd)
	requireID(deleteCmd)
	listCmd.Flags().StringVar(&listPlayerID, "player-id", "", "Filter by player ID")
}

func runGet(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.GetCharacter(ctx, &character.GetCharacterInput{CharacterID: characterID})
	if err != nil {
		return fmt.Errorf("failed to get character: %w", err)
	}

	RenderSheet(os.Stdout, out.Character, nil)
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.ListCharacters(ctx, &character.ListCharactersInput{PlayerID: listPlayerID})
	if err != nil {
		return fmt.Errorf("failed to list characters: %w", err)
	}

	if len(out.Characters) == 0 {
		fmt.Println("No characters found")
		return nil
	}
	for _, c := range out.Characters {
		fmt.Printf("%-40s %-24s %4d pts  player=%s\n", c.ID, c.Name, c.PointTotal, c.PlayerID)
	}
	return nil
}

func runDelete(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.DeleteCharacter(ctx, &character.DeleteCharacterInput{CharacterID: characterID}); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	fmt.Printf("Deleted character %s\n", characterID)
	return nil
}
