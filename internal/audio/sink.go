package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// Sink is where clips go to be heard. The production sink drives the
// system speaker; tests and --mute substitute their own.
type Sink interface {
	Play(c *Clip)
}

// SpeakerSink plays clips through the default audio device.
type SpeakerSink struct{}

// NewSpeakerSink initializes the speaker at the given rate. The buffer
// is a tenth of a second, small enough that short key sounds feel
// immediate.
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("audio: initializing speaker: %w", err)
	}
	return &SpeakerSink{}, nil
}

// Play starts the clip asynchronously from its beginning.
func (s *SpeakerSink) Play(c *Clip) {
	speaker.Play(c.Streamer())
}

// NopSink discards every clip. Used when audio is disabled or the
// speaker could not be initialized.
type NopSink struct{}

// Play does nothing.
func (NopSink) Play(*Clip) {}
