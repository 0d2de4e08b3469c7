// Package audio owns every playable sound in the application: the
// preloaded notification assets and the synthesized speech clips coming
// back from the remote service. Failures here degrade to silence, never
// to errors surfacing in the calculation flow.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

// MixRate is the sample rate every clip is resampled to, matching the
// rate the speaker is initialized with.
const MixRate = beep.SampleRate(44100)

const resampleQuality = 4

// ErrUnsupportedAudio indicates a payload that is neither WAV nor MP3.
var ErrUnsupportedAudio = errors.New("audio: unsupported format")

// Clip is a fully buffered, rewindable sound. Ownership stays with
// whoever decoded it (the cache for assets, the session for speech).
type Clip struct {
	buf *beep.Buffer
}

// Decode buffers an entire WAV or MP3 payload into memory, resampled to
// the given mix rate.
func Decode(data []byte, rate beep.SampleRate) (*Clip, error) {
	streamer, format, err := decodeAny(data)
	if err != nil {
		return nil, err
	}
	defer func() { _ = streamer.Close() }()

	buf := beep.NewBuffer(beep.Format{
		SampleRate:  rate,
		NumChannels: 2,
		Precision:   2,
	})
	if format.SampleRate == rate {
		buf.Append(streamer)
	} else {
		buf.Append(beep.Resample(resampleQuality, format.SampleRate, rate, streamer))
	}

	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: empty stream", ErrUnsupportedAudio)
	}
	return &Clip{buf: buf}, nil
}

// decodeAny sniffs the container and picks the matching decoder.
func decodeAny(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	if len(data) > 4 && bytes.HasPrefix(data, []byte("RIFF")) {
		s, f, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("audio: decoding wav: %w", err)
		}
		return s, f, nil
	}
	// MP3 frames have no single magic; let the decoder decide.
	s, f, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("%w: %w", ErrUnsupportedAudio, err)
	}
	return s, f, nil
}

// Streamer returns a fresh streamer positioned at the start of the clip.
// Every call rewinds, so repeated plays always start from zero.
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

// Duration returns the playable length of the clip.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}
