// Package cmd implements the talkulator CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/hollowaydev/talkulator/internal/audio"
	"github.com/hollowaydev/talkulator/internal/config"
	"github.com/hollowaydev/talkulator/internal/remote"
	"github.com/hollowaydev/talkulator/internal/tui"
	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

var (
	flagMute  bool
	flagDebug bool
	flagTheme string
)

var rootCmd = &cobra.Command{
	Use:   "talkulator",
	Short: "A talking calculator with strong opinions",
	Long:  "Type an expression, press enter, and let a remote comedian do the math out loud.",
	RunE:  runRoot,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable all sound playback")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write debug logs to the config directory")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "Color theme (overrides config)")
}

func runRoot(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	closeLog := setupLogging()
	defer closeLog()

	if flagTheme != "" {
		theme.SetActive(flagTheme)
	} else {
		theme.SetActive(cfg.Appearance.Theme)
	}

	// Force TrueColor profile so background styling always produces
	// ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	client := newRemoteClient(cfg)

	audioOn := cfg.Audio.Enabled && !flagMute
	sounds, audioOn := newSoundCache(cfg, audioOn)

	app := tui.NewApp(cfg, client, sounds, audioOn)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func newRemoteClient(cfg config.Config) *remote.Client {
	return remote.NewClient(remote.Config{
		GenerateURL:   config.GetGenerateURL(cfg),
		SynthesizeURL: config.GetSynthesizeURL(cfg),
		Timeout:       cfg.RequestTimeout(),
	})
}

// newSoundCache builds the sound cache, degrading to a silent one when
// the audio device cannot be opened. The returned flag reflects whether
// sound actually works.
func newSoundCache(cfg config.Config, audioOn bool) (*audio.Cache, bool) {
	var sink audio.Sink = audio.NopSink{}
	if audioOn {
		s, err := audio.NewSpeakerSink(audio.MixRate)
		if err != nil {
			slog.Warn("audio device unavailable, muting", "err", err)
			audioOn = false
		} else {
			sink = s
		}
	}

	return audio.NewCache(audio.Config{
		Sink:           sink,
		SampleRate:     audio.MixRate,
		Debounce:       cfg.Debounce(),
		PreloadTimeout: cfg.PreloadTimeout(),
		Fallback:       audio.SoundKeypress,
	}), audioOn
}

// setupLogging routes slog to a file under the config dir when --debug
// is set, and discards it otherwise. A TUI cannot share stderr.
func setupLogging() func() {
	if !flagDebug {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}

	f, err := os.OpenFile(config.LogPath(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	return func() { _ = f.Close() }
}
