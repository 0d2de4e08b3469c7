package audio

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"
	"time"
)

// recordSink counts plays for assertions.
type recordSink struct {
	mu    sync.Mutex
	plays []*Clip
}

func (r *recordSink) Play(c *Clip) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plays = append(r.plays, c)
}

func (r *recordSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.plays)
}

// assetBytes reads one of the embedded WAV assets for use as test data.
func assetBytes(t *testing.T, path string) []byte {
	t.Helper()
	data, err := fs.ReadFile(Assets(), path)
	if err != nil {
		t.Fatalf("reading embedded asset %s: %v", path, err)
	}
	return data
}

// fakeClock steps time manually for debounce tests.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(t *testing.T, sink Sink, clock *fakeClock) *Cache {
	t.Helper()
	cfg := Config{Sink: sink, Debounce: 60 * time.Millisecond}
	if clock != nil {
		cfg.Now = clock.now
	}
	c := NewCache(cfg)
	c.PreloadAll(context.Background(), Assets(), Manifest())
	return c
}

func TestPreloadAll_EmbeddedManifestReady(t *testing.T) {
	c := newTestCache(t, &recordSink{}, nil)
	for _, p := range Manifest() {
		st, ok := c.Status(p)
		if !ok || st != StatusReady {
			t.Errorf("Status(%s) = (%v, %v), want (ready, true)", p, st, ok)
		}
	}
}

func TestPreloadAll_FailureIsIndependent(t *testing.T) {
	fsys := fstest.MapFS{
		"good.wav": {Data: assetBytes(t, SoundKeypress)},
		"junk.wav": {Data: []byte("this is not audio at all")},
	}

	c := NewCache(Config{Sink: &recordSink{}})
	c.PreloadAll(context.Background(), fsys, []string{"good.wav", "junk.wav", "absent.wav"})

	if st, _ := c.Status("good.wav"); st != StatusReady {
		t.Errorf("good.wav = %v, want ready", st)
	}
	if st, _ := c.Status("junk.wav"); st != StatusFailed {
		t.Errorf("junk.wav = %v, want failed", st)
	}
	if st, _ := c.Status("absent.wav"); st != StatusFailed {
		t.Errorf("absent.wav = %v, want failed", st)
	}
}

func TestPlay_ReadyAsset(t *testing.T) {
	sink := &recordSink{}
	c := newTestCache(t, sink, nil)

	if err := c.Play(SoundAck, true); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if sink.count() != 1 {
		t.Errorf("sink plays = %d, want 1", sink.count())
	}
}

func TestPlay_DebounceSuppressesRapidRepeats(t *testing.T) {
	sink := &recordSink{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(t, sink, clock)

	clock.advance(time.Second) // move past the zero-value last timestamp
	_ = c.Play(SoundKeypress, false)
	clock.advance(30 * time.Millisecond)
	_ = c.Play(SoundKeypress, false) // inside window: suppressed
	if sink.count() != 1 {
		t.Fatalf("plays = %d, want 1 (second call debounced)", sink.count())
	}

	// Suppressed calls leave no state behind: 70ms after the accepted
	// play the window has elapsed even though a call happened at 30ms.
	clock.advance(40 * time.Millisecond)
	_ = c.Play(SoundKeypress, false)
	if sink.count() != 2 {
		t.Errorf("plays = %d, want 2", sink.count())
	}
}

func TestPlay_ForcedBypassesDebounce(t *testing.T) {
	sink := &recordSink{}
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := newTestCache(t, sink, clock)

	clock.advance(time.Second)
	_ = c.Play(SoundKeypress, false)
	_ = c.Play(SoundBusy, true) // same instant, forced
	_ = c.Play(SoundFail, true)
	if sink.count() != 3 {
		t.Errorf("plays = %d, want 3 (forced calls never debounced)", sink.count())
	}
}

func TestPlay_MissFallsBackToKeypress(t *testing.T) {
	sink := &recordSink{}
	c := newTestCache(t, sink, nil)

	if err := c.Play("assets/no-such-sound.wav", true); err != nil {
		t.Fatalf("Play with fallback available: %v", err)
	}
	if sink.count() != 1 {
		t.Errorf("plays = %d, want 1 (fallback)", sink.count())
	}
}

func TestPlay_TotalMissIsSilentNoop(t *testing.T) {
	sink := &recordSink{}
	c := NewCache(Config{Sink: sink}) // nothing preloaded

	err := c.Play(SoundAck, true)
	if !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("err = %v, want ErrAssetMissing", err)
	}
	if sink.count() != 0 {
		t.Errorf("plays = %d, want 0", sink.count())
	}
}

func TestPlay_SilentMissDoesNotStartDebounceWindow(t *testing.T) {
	sink := &recordSink{}
	clock := &fakeClock{t: time.Unix(1000, 0)}

	// Only ack is playable; the keypress fallback itself is broken.
	fsys := fstest.MapFS{
		"assets/ack.wav":      {Data: assetBytes(t, SoundAck)},
		"assets/keypress.wav": {Data: []byte("broken")},
	}
	c := NewCache(Config{Sink: sink, Debounce: 60 * time.Millisecond, Now: clock.now})
	c.PreloadAll(context.Background(), fsys, []string{SoundAck, SoundKeypress})

	clock.advance(time.Second)
	if err := c.Play(SoundBusy, false); !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("err = %v, want ErrAssetMissing", err)
	}

	// The silent miss played nothing, so a real sound right after must
	// not be suppressed.
	clock.advance(10 * time.Millisecond)
	if err := c.Play(SoundAck, false); err != nil {
		t.Fatalf("Play after miss: %v", err)
	}
	if sink.count() != 1 {
		t.Errorf("plays = %d, want 1", sink.count())
	}
}

func TestPlayClip_NilIsNoop(t *testing.T) {
	sink := &recordSink{}
	c := NewCache(Config{Sink: sink})
	c.PlayClip(nil)
	if sink.count() != 0 {
		t.Errorf("plays = %d, want 0", sink.count())
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("definitely not audio"), MixRate); !errors.Is(err, ErrUnsupportedAudio) {
		t.Errorf("err = %v, want ErrUnsupportedAudio", err)
	}
}

func TestDecode_WavHasDuration(t *testing.T) {
	clip, err := Decode(assetBytes(t, SoundFail), MixRate)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if clip.Duration() <= 0 {
		t.Errorf("Duration = %v, want > 0", clip.Duration())
	}
}
