package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"golang.org/x/sync/errgroup"
)

// Defaults for the cache timing knobs.
const (
	DefaultDebounce       = 60 * time.Millisecond
	DefaultPreloadTimeout = 5 * time.Second
)

// ErrAssetMissing indicates a play request where neither the asset nor
// the fallback was ready. Play degrades to silence; this error exists
// for logs and tests.
var ErrAssetMissing = errors.New("audio: asset missing")

// Status is the load state of a cache entry.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type entry struct {
	status Status
	clip   *Clip
}

// Config tunes the cache. Zero values get defaults; a nil Sink becomes
// a NopSink.
type Config struct {
	Sink           Sink
	SampleRate     beep.SampleRate
	Debounce       time.Duration
	PreloadTimeout time.Duration
	Fallback       string
	Now            func() time.Time // test seam
}

// Cache holds every preloaded sound asset for the life of a session.
// Entries never expire. The mutex only covers the entry map and the
// debounce timestamp; preload workers are the one concurrent writer.
type Cache struct {
	sink           Sink
	rate           beep.SampleRate
	debounce       time.Duration
	preloadTimeout time.Duration
	fallback       string
	now            func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	last    time.Time // last accepted non-forced play
}

// NewCache creates an empty cache; call PreloadAll before playing.
func NewCache(cfg Config) *Cache {
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = MixRate
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PreloadTimeout <= 0 {
		cfg.PreloadTimeout = DefaultPreloadTimeout
	}
	if cfg.Fallback == "" {
		cfg.Fallback = SoundKeypress
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Cache{
		sink:           cfg.Sink,
		rate:           cfg.SampleRate,
		debounce:       cfg.Debounce,
		preloadTimeout: cfg.PreloadTimeout,
		fallback:       cfg.Fallback,
		now:            cfg.Now,
		entries:        make(map[string]*entry),
	}
}

// PreloadAll buffers every manifest asset concurrently. Each attempt
// independently ends Ready or Failed within the preload timeout;
// failures are logged and never block or fail the rest.
func (c *Cache) PreloadAll(ctx context.Context, fsys fs.FS, paths []string) {
	c.mu.Lock()
	for _, p := range paths {
		c.entries[p] = &entry{status: StatusPending}
	}
	c.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			clip, err := c.loadOne(ctx, fsys, p)

			c.mu.Lock()
			e := c.entries[p]
			if err != nil {
				e.status = StatusFailed
			} else {
				e.status = StatusReady
				e.clip = clip
			}
			c.mu.Unlock()

			if err != nil {
				slog.Warn("sound preload failed", "asset", p, "err", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// loadOne reads and decodes a single asset under the preload timeout.
func (c *Cache) loadOne(ctx context.Context, fsys fs.FS, path string) (*Clip, error) {
	ctx, cancel := context.WithTimeout(ctx, c.preloadTimeout)
	defer cancel()

	type result struct {
		clip *Clip
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			done <- result{nil, fmt.Errorf("reading asset: %w", err)}
			return
		}
		clip, err := Decode(data, c.rate)
		done <- result{clip, err}
	}()

	select {
	case r := <-done:
		return r.clip, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Status reports the load state of an asset path.
func (c *Cache) Status(path string) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok {
		return 0, false
	}
	return e.status, true
}

// Clip returns the decoded clip for a ready asset path.
func (c *Cache) Clip(path string) (*Clip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clip := c.readyClipLocked(path)
	return clip, clip != nil
}

// Play rewinds and plays the asset. A missing or failed entry falls
// back to the generic key-press asset; if even that is unavailable the
// call is a logged no-op. Non-forced calls within the debounce window
// of the previous accepted non-forced call are suppressed entirely.
// Forced calls bypass debounce.
//
// The returned error is diagnostic only; callers are free to ignore it.
func (c *Cache) Play(path string, force bool) error {
	c.mu.Lock()
	var now time.Time
	if !force {
		now = c.now()
		if now.Sub(c.last) < c.debounce {
			c.mu.Unlock()
			return nil // suppressed, no state change
		}
	}

	clip := c.readyClipLocked(path)
	if clip == nil && path != c.fallback {
		clip = c.readyClipLocked(c.fallback)
	}
	// The window only starts when something actually plays; a silent
	// miss must not suppress the next keypress sound.
	if clip != nil && !force {
		c.last = now
	}
	c.mu.Unlock()

	if clip == nil {
		slog.Debug("no playable sound", "asset", path)
		return fmt.Errorf("%w: %s", ErrAssetMissing, path)
	}
	c.sink.Play(clip)
	return nil
}

// PlayClip plays an externally decoded clip (synthesized speech).
// Always forced; speech is never debounced.
func (c *Cache) PlayClip(clip *Clip) {
	if clip == nil {
		return
	}
	c.sink.Play(clip)
}

// DecodeSpeech turns a synthesis data URL into a playable clip at the
// cache's mix rate.
func (c *Cache) DecodeSpeech(dataURL string) (*Clip, error) {
	_, data, err := DecodeDataURL(dataURL)
	if err != nil {
		return nil, err
	}
	return Decode(data, c.rate)
}

func (c *Cache) readyClipLocked(path string) *Clip {
	if e, ok := c.entries[path]; ok && e.status == StatusReady {
		return e.clip
	}
	return nil
}
