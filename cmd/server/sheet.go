package main

import (
	"context"
	"fmt"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/gurps-api/cmd/server/client"
	"github.com/KirkDiggler/gurps-api/internal/codec"
	"github.com/KirkDiggler/gurps-api/internal/config"
	"github.com/KirkDiggler/gurps-api/internal/engine"
	"github.com/KirkDiggler/gurps-api/internal/entities/gurps"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
)

var (
	convertIn  string
	convertOut string
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Work with character files without a server",
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a character file between JSON, YAML and CSV",
	Long: `Read a character file, fill missing ids, recalculate derived values and
write it in the format named by the output extension.`,
	RunE: runConvert,
}

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print a character file with its combat summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "Input file (required)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output file (required)")
	_ = convertCmd.MarkFlagRequired("in")  // nolint:errcheck // safe to ignore in init
	_ = convertCmd.MarkFlagRequired("out") // nolint:errcheck // safe to ignore in init

	sheetCmd.AddCommand(convertCmd)
	sheetCmd.AddCommand(showCmd)
}

// offlineEngine builds an engine with the rules settings from the environment
func offlineEngine() (engine.Engine, idgen.Generator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	gen := idgen.NewUUID("")
	e, err := newEngine(cfg.Rules, events.NewBus(), gen)
	if err != nil {
		return nil, nil, err
	}
	return e, gen, nil
}

// loadSheet reads, normalizes and recalculates a character file
func loadSheet(ctx context.Context, path string) (*gurps.Character, engine.Engine, error) {
	format, err := codec.FormatFromFileName(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	e, gen, err := offlineEngine()
	if err != nil {
		return nil, nil, err
	}

	c, err := codec.Load(data, format, gen)
	if err != nil {
		return nil, nil, err
	}

	out, err := e.Recalculate(ctx, &engine.RecalculateInput{Character: c})
	if err != nil {
		return nil, nil, err
	}
	return out.Character, e, nil
}

func runConvert(cmd *cobra.Command, _ []string) error {
	outFormat, err := codec.FormatFromFileName(convertOut)
	if err != nil {
		return err
	}

	c, _, err := loadSheet(cmd.Context(), convertIn)
	if err != nil {
		return err
	}

	data, err := codec.Encode(c, outFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(convertOut, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", convertOut, err)
	}

	fmt.Printf("Wrote %s (%s, %d bytes)\n", convertOut, outFormat, len(data))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	c, e, err := loadSheet(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	summary, err := e.Summarize(cmd.Context(), &engine.SummarizeInput{Character: c})
	if err != nil {
		return err
	}

	client.RenderSheet(os.Stdout, c, summary.Summary)
	return nil
}
