// Package session implements the calculator's state machine. It owns
// the current mode, expression, result text, and synthesized audio, and
// every mutation funnels through a named transition method.
//
// The package is pure: no UI, no network, no timers. The Bubble Tea
// layer maps key events and completion messages onto these transitions,
// and the guards here (trace id comparison, display generation counter)
// make late or stale events harmless.
package session

import (
	"github.com/hollowaydev/talkulator/internal/audio"
	"github.com/hollowaydev/talkulator/internal/expr"
)

// Mode is the session's lifecycle state.
type Mode int

const (
	// ModeIdle has no expression; the display shows the placeholder.
	ModeIdle Mode = iota
	// ModeEditing has a non-empty expression under construction.
	ModeEditing
	// ModePending has an evaluation in flight; input is locked except
	// for clear.
	ModePending
	// ModeResolved shows a remote result with its audio played once.
	ModeResolved
	// ModeFailed shows the apology string after a pipeline failure.
	ModeFailed
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeEditing:
		return "editing"
	case ModePending:
		return "pending"
	case ModeResolved:
		return "resolved"
	case ModeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Fixed user-facing strings.
const (
	// Placeholder is shown when there is nothing else to show.
	Placeholder = "0"
	// Apology replaces the result after any pipeline failure,
	// regardless of which stage broke.
	Apology = "So sorry. The math spirits are not answering."
	// BusyNotice is shown while the limiter is out of tokens.
	BusyNotice = "Hold on, still catching my breath..."
)

// Session is the single process-wide calculator state.
type Session struct {
	mode       Mode
	expression string
	resultText string
	audio      *audio.Clip

	// reqID is the trace id of the in-flight request, empty when none.
	// Completions carrying any other id are stale and discarded.
	reqID string

	// displayGen increments on every change to what the user sees. The
	// busy-notice cooldown captures it and only clears if nothing newer
	// has been displayed since.
	displayGen int
	notice     string
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Expression returns the current expression buffer.
func (s *Session) Expression() string { return s.expression }

// ResultText returns the last remote result or apology string.
func (s *Session) ResultText() string { return s.resultText }

// Audio returns the synthesized clip of the current result, if any.
func (s *Session) Audio() *audio.Clip { return s.audio }

// Notice returns the active busy notice, if any.
func (s *Session) Notice() string { return s.notice }

// Display projects the session onto the single display line.
func (s *Session) Display() string {
	switch s.mode {
	case ModeIdle:
		return Placeholder
	case ModeEditing:
		if s.notice != "" {
			return s.notice
		}
		return s.expression
	case ModePending:
		return s.expression
	default: // Resolved, Failed
		return s.resultText
	}
}

// Input applies one keystroke. An accepted keystroke from Resolved or
// Failed discards the prior result and audio first, so typing always
// starts a fresh expression; a rejected keystroke changes nothing at
// all. Returns whether the keystroke was accepted.
func (s *Session) Input(r rune) bool {
	if !expr.IsInput(r) {
		return false // never mutate on a key the editor won't take
	}
	switch s.mode {
	case ModePending:
		return false // input locked while a request is in flight
	case ModeResolved, ModeFailed:
		s.discardResult()
		s.expression = ""
		s.mode = ModeIdle
	}

	next, ok := expr.Append(s.expression, r)
	if !ok {
		return false
	}
	s.expression = next
	s.clearNotice()
	s.mode = ModeEditing
	return true
}

// Backspace removes one trailing character while editing; reducing the
// buffer to empty returns the session to Idle.
func (s *Session) Backspace() {
	if s.mode != ModeEditing {
		return
	}
	s.expression = expr.Backspace(s.expression)
	s.clearNotice()
	if s.expression == "" {
		s.mode = ModeIdle
	}
}

// Clear resets expression, result, and audio unconditionally. A request
// already in flight is not cancelled; dropping reqID guarantees its
// eventual completion is treated as stale.
func (s *Session) Clear() {
	s.discardResult()
	s.expression = ""
	s.reqID = ""
	s.clearNotice()
	s.mode = ModeIdle
}

// CanEvaluate reports whether an evaluate action may be admitted:
// a non-empty expression and no request already in flight.
func (s *Session) CanEvaluate() bool {
	return s.mode == ModeEditing && s.expression != ""
}

// BeginEvaluation transitions Editing to Pending for the given trace
// id. The caller has already consumed a limiter token.
func (s *Session) BeginEvaluation(traceID string) {
	s.reqID = traceID
	s.clearNotice()
	s.mode = ModePending
}

// ResolveSuccess applies a successful pipeline outcome. Returns false,
// changing nothing, when the completion is stale (the session has moved
// on to a different request or been reset).
func (s *Session) ResolveSuccess(traceID, displayText string, clip *audio.Clip) bool {
	if !s.accept(traceID) {
		return false
	}
	s.resultText = displayText
	s.audio = clip
	s.reqID = ""
	s.bump()
	s.mode = ModeResolved
	return true
}

// ResolveFailure applies a failed pipeline outcome, collapsing every
// failure kind onto the fixed apology string. Returns false on stale
// completions.
func (s *Session) ResolveFailure(traceID string) bool {
	if !s.accept(traceID) {
		return false
	}
	s.resultText = Apology
	s.audio = nil
	s.reqID = ""
	s.bump()
	s.mode = ModeFailed
	return true
}

// RateLimited shows the busy notice without leaving Editing and returns
// the display generation the cooldown clear must present.
func (s *Session) RateLimited() int {
	s.notice = BusyNotice
	s.bump()
	return s.displayGen
}

// ClearBusyNotice removes the busy notice if and only if the display
// has not changed since gen was issued. A stale cooldown never clobbers
// newer state.
func (s *Session) ClearBusyNotice(gen int) {
	if s.displayGen != gen {
		return
	}
	s.notice = ""
	s.bump()
}

// accept reports whether a completion for traceID is current.
func (s *Session) accept(traceID string) bool {
	return s.mode == ModePending && s.reqID != "" && s.reqID == traceID
}

func (s *Session) discardResult() {
	changed := s.resultText != "" || s.audio != nil
	s.resultText = ""
	s.audio = nil
	if changed {
		s.bump()
	}
}

func (s *Session) clearNotice() {
	if s.notice != "" {
		s.notice = ""
		s.bump()
	}
}

func (s *Session) bump() { s.displayGen++ }
