package client

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/internal/services/character"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a character's combat summary",
	RunE:  runSummary,
}

func init() {
	requireID(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := client.GetSummary(ctx, &character.GetSummaryInput{CharacterID: characterID})
	if err != nil {
		return fmt.Errorf("failed to get summary: %w", err)
	}

	fmt.Printf("Combat summary for %s\n", characterID)
	RenderSummary(os.Stdout, out.Summary)
	return nil
}
