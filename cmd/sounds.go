package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"

	"github.com/hollowaydev/talkulator/internal/audio"
	"github.com/hollowaydev/talkulator/internal/config"
)

var flagPlaySound string

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List the built-in sound assets",
	RunE:  runSounds,
}

func init() {
	soundsCmd.Flags().StringVar(&flagPlaySound, "play", "", "Play one asset by name (keypress, ack, busy, fail)")
	rootCmd.AddCommand(soundsCmd)
}

func runSounds(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	wantPlayback := flagPlaySound != ""
	sounds, audioOn := newSoundCache(cfg, wantPlayback)
	if wantPlayback && !audioOn {
		return fmt.Errorf("no audio device available")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.PreloadTimeout()+time.Second)
	defer cancel()
	sounds.PreloadAll(ctx, audio.Assets(), audio.Manifest())

	var toPlay *audio.Clip
	for _, p := range audio.Manifest() {
		name := strippedName(p)
		status, _ := sounds.Status(p)
		clip, _ := sounds.Clip(p)

		line := fmt.Sprintf("  %-10s %s", name, status)
		if clip != nil {
			line += fmt.Sprintf("  %.2fs", clip.Duration().Seconds())
		}
		fmt.Println(line)

		if name == flagPlaySound {
			toPlay = clip
		}
	}

	if flagPlaySound != "" {
		if toPlay == nil {
			return fmt.Errorf("no playable asset named %q", flagPlaySound)
		}
		fmt.Printf("\n  Playing %s...\n", flagPlaySound)
		sounds.PlayClip(toPlay)
		// Playback is asynchronous; hold the process open until it ends.
		time.Sleep(toPlay.Duration() + 100*time.Millisecond)
	}
	return nil
}

func strippedName(assetPath string) string {
	base := path.Base(assetPath)
	if ext := path.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base
}
