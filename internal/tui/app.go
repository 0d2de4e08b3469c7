// Package tui hosts the talkulator calculator in a Bubble Tea program.
// Every state transition runs on the Update goroutine; network calls and
// asset preload are the only background work, and their completion
// messages are guarded against staleness before touching the session.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hollowaydev/talkulator/internal/audio"
	"github.com/hollowaydev/talkulator/internal/config"
	"github.com/hollowaydev/talkulator/internal/limiter"
	"github.com/hollowaydev/talkulator/internal/pipeline"
	"github.com/hollowaydev/talkulator/internal/remote"
	"github.com/hollowaydev/talkulator/internal/session"
	"github.com/hollowaydev/talkulator/internal/tui/theme"
)

// evalDoneMsg is sent when the calculation pipeline finishes, success
// or not. TraceID lets Update discard completions the session has
// moved past.
type evalDoneMsg struct {
	traceID string
	display string
	clip    *audio.Clip
	err     error
}

// preloadDoneMsg is sent once the sound assets finish preloading.
type preloadDoneMsg struct{}

// refillTickMsg drives the limiter's periodic single-token refill.
type refillTickMsg struct{}

// cooldownMsg fires after the busy-notice hold time; gen is the display
// generation captured when the notice was shown.
type cooldownMsg struct {
	gen int
}

// App is the root Bubble Tea model.
type App struct {
	cfg    config.Config
	sess   *session.Session
	bucket *limiter.Bucket
	client *remote.Client
	sounds *audio.Cache

	// UI state
	width     int
	height    int
	showHelp  bool
	lastKey   string
	preloaded bool
	audioOn   bool
	spinner   spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const minTerminalWidth = 44

// NewApp creates the calculator model. The caller wires the remote
// client and the sound cache so headless tests can substitute fakes.
func NewApp(cfg config.Config, client *remote.Client, sounds *audio.Cache, audioOn bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		cfg:       cfg,
		sess:      session.New(),
		bucket:    limiter.New(limiterConfig(cfg)),
		client:    client,
		sounds:    sounds,
		audioOn:   audioOn,
		spinner:   sp,
		needSetup: !config.Exists(),
	}
	if a.needSetup {
		a.setupVals = newSetupValues(cfg, audioOn)
		a.setupForm = newSetupForm(&a.setupVals)
	}
	return a
}

func limiterConfig(cfg config.Config) limiter.Config {
	return limiter.Config{
		MaxTokens:       cfg.Limiter.MaxTokens,
		RefillPerMinute: cfg.Limiter.RefillPerMinute,
		ConsumePerCall:  cfg.Limiter.ConsumePerCall,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		preloadCmd(a.sounds, a.cfg.PreloadTimeout()),
		refillTick(a.bucket.RefillPeriod()),
	}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case evalDoneMsg:
		return a.updateEvalDone(msg)

	case preloadDoneMsg:
		a.preloaded = true
		return a, nil

	case refillTickMsg:
		// The refill timer runs for the whole session regardless of
		// activity and is never cancelled by other transitions.
		a.bucket.Refill()
		return a, refillTick(a.bucket.RefillPeriod())

	case cooldownMsg:
		// Only clears when nothing newer has been displayed since the
		// notice went up; the session checks the generation.
		a.sess.ClearBusyNotice(msg.gen)
		return a, nil

	case spinner.TickMsg:
		if a.sess.Mode() == session.ModePending {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global: quit
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Help toggle / dismiss
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit

	case "backspace":
		if a.sess.Mode() == session.ModeEditing {
			a.sess.Backspace()
			a.playSound(audio.SoundKeypress, false)
			a.lastKey = ""
		}
		return a, nil

	case "esc", "c":
		a.sess.Clear()
		a.lastKey = ""
		return a, nil

	case "enter", "=":
		return a.startEvaluation()
	}

	// Expression keystrokes
	if len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if a.sess.Input(r) {
			a.playSound(audio.SoundKeypress, false)
			a.lastKey = string(r)
		}
	}
	return a, nil
}

// startEvaluation runs the Editing -> Pending transition: limiter
// admission first, token consumed before the request is dispatched.
func (a App) startEvaluation() (tea.Model, tea.Cmd) {
	if !a.sess.CanEvaluate() {
		return a, nil
	}
	a.lastKey = "⏎"

	if a.bucket.TryConsume() == limiter.Rejected {
		gen := a.sess.RateLimited()
		a.playSound(audio.SoundBusy, true)
		return a, cooldownTick(a.cfg.Cooldown(), gen)
	}

	traceID := pipeline.NewTraceID()
	a.sess.BeginEvaluation(traceID)
	a.playSound(audio.SoundAck, true)

	return a, tea.Batch(
		a.spinner.Tick,
		evalCmd(a.client, a.sounds, a.sess.Expression(), traceID),
	)
}

func (a App) updateEvalDone(msg evalDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if a.sess.ResolveFailure(msg.traceID) {
			a.playSound(audio.SoundFail, true)
		} else {
			slog.Debug("stale failure discarded", "trace_id", msg.traceID)
		}
		return a, nil
	}

	if a.sess.ResolveSuccess(msg.traceID, msg.display, msg.clip) {
		// Exactly one autoplay of the synthesized explanation.
		if a.audioOn {
			a.sounds.PlayClip(msg.clip)
		}
	} else {
		slog.Debug("stale result discarded", "trace_id", msg.traceID)
	}
	return a, nil
}

// playSound routes notification sounds through the cache unless the
// user muted audio. Play errors are diagnostic only.
func (a App) playSound(path string, force bool) {
	if !a.audioOn {
		return
	}
	_ = a.sounds.Play(path, force)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a = a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// ─── Commands ───────────────────────────────────────────────────

func refillTick(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return refillTickMsg{}
	})
}

func cooldownTick(hold time.Duration, gen int) tea.Cmd {
	return tea.Tick(hold, func(time.Time) tea.Msg {
		return cooldownMsg{gen: gen}
	})
}

// preloadCmd buffers the sound manifest in the background. The cache is
// internally synchronized; everything else stays on the Update goroutine.
func preloadCmd(sounds *audio.Cache, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout+time.Second)
		defer cancel()
		sounds.PreloadAll(ctx, audio.Assets(), audio.Manifest())
		return preloadDoneMsg{}
	}
}

// evalCmd runs both pipeline stages off the event loop. Speech decode
// failures degrade to a silent result; they are not pipeline failures.
func evalCmd(client *remote.Client, sounds *audio.Cache, expression, traceID string) tea.Cmd {
	return func() tea.Msg {
		out, err := pipeline.Evaluate(context.Background(), client, expression, traceID)
		if err != nil {
			return evalDoneMsg{traceID: traceID, err: err}
		}

		clip, err := sounds.DecodeSpeech(out.AudioDataURL)
		if err != nil {
			slog.Warn("undecodable speech payload", "trace_id", traceID, "err", err)
			clip = nil
		}
		return evalDoneMsg{traceID: traceID, display: out.DisplayText, clip: clip}
	}
}
