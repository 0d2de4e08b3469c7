package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollowaydev/talkulator/internal/audio"
	"github.com/hollowaydev/talkulator/internal/config"
	"github.com/hollowaydev/talkulator/internal/expr"
	"github.com/hollowaydev/talkulator/internal/pipeline"
)

var flagSaveAudio string

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate one expression without the TUI",
	Long:  "Runs a single calculation through the remote pipeline and prints the result. Skips the rate limiter; you are your own judgement here.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&flagSaveAudio, "save-audio", "", "Write the synthesized audio to this file")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	expression := args[0]
	for _, r := range expression {
		if !expr.IsInput(r) {
			return fmt.Errorf("expression contains unsupported character %q", r)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closeLog := setupLogging()
	defer closeLog()

	client := newRemoteClient(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*cfg.RequestTimeout())
	defer cancel()

	out, err := pipeline.Evaluate(ctx, client, expression, pipeline.NewTraceID())
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	fmt.Printf("  %s = %s\n", expression, out.DisplayText)
	fmt.Printf("  audio: %.1fs, trace %s\n", out.AudioLength, out.TraceID)

	if flagSaveAudio != "" {
		mime, data, err := audio.DecodeDataURL(out.AudioDataURL)
		if err != nil {
			return fmt.Errorf("decoding audio payload: %w", err)
		}
		if err := os.WriteFile(flagSaveAudio, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("  saved %d bytes (%s) to %s\n", len(data), mime, flagSaveAudio)
	}
	return nil
}
