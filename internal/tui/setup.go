package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hollowaydev/talkulator/internal/config"
	"github.com/hollowaydev/talkulator/internal/remote"
	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// setupValues backs the first-run huh form.
type setupValues struct {
	generateURL   string
	synthesizeURL string
	themeName     string
	audioEnabled  bool
}

func newSetupValues(cfg config.Config, audioOn bool) setupValues {
	return setupValues{
		generateURL:   cfg.Endpoints.GenerateURL,
		synthesizeURL: cfg.Endpoints.SynthesizeURL,
		themeName:     theme.Active.Name,
		audioEnabled:  audioOn,
	}
}

func newSetupForm(v *setupValues) *huh.Form {
	themeNames := make([]string, len(theme.All))
	for i, t := range theme.All {
		themeNames[i] = t.Name
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to talkulator!").
				Description("The calculator that phones a friend and reads the answer aloud.\nNo arithmetic is performed on this machine. None."),

			huh.NewInput().
				Title("Generation endpoint").
				Description("Where expressions go to be \"computed\"").
				Value(&v.generateURL),

			huh.NewInput().
				Title("Synthesis endpoint").
				Description("Where explanations become speech").
				Value(&v.synthesizeURL),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(themeNames...)...).
				Value(&v.themeName),

			huh.NewConfirm().
				Title("Enable sound?").
				Value(&v.audioEnabled),
		),
	)
}

// applySetup persists the setup choices and rewires the pieces that
// depend on them.
func (a App) applySetup() App {
	v := a.setupVals

	a.cfg.Endpoints.GenerateURL = strings.TrimSpace(v.generateURL)
	a.cfg.Endpoints.SynthesizeURL = strings.TrimSpace(v.synthesizeURL)
	a.cfg.Appearance.Theme = v.themeName
	a.cfg.Audio.Enabled = v.audioEnabled

	theme.SetActive(v.themeName)
	a.audioOn = v.audioEnabled
	a.client = remote.NewClient(remote.Config{
		GenerateURL:   config.GetGenerateURL(a.cfg),
		SynthesizeURL: config.GetSynthesizeURL(a.cfg),
		Timeout:       a.cfg.RequestTimeout(),
	})

	// Best-effort persist; the session keeps the values either way.
	_ = config.Save(a.cfg)
	return a
}
