// Package limiter implements the token bucket that throttles remote
// calculation calls.
//
// The bucket is not safe for concurrent use; every mutation happens on
// the UI event loop. Refill scheduling belongs to the caller (the TUI
// drives it from a tick at RefillPeriod).
package limiter

import "time"

// Result is the outcome of an admission attempt.
type Result int

const (
	// Admitted means tokens were consumed and the call may proceed.
	Admitted Result = iota
	// Rejected means the bucket is too empty; no tokens were consumed.
	Rejected
)

func (r Result) String() string {
	if r == Admitted {
		return "admitted"
	}
	return "rejected"
}

// Config tunes the bucket.
type Config struct {
	MaxTokens       int
	RefillPerMinute int
	ConsumePerCall  int
}

// Bucket is a capacity-bounded, periodically refilled token counter.
type Bucket struct {
	tokens  int
	max     int
	perCall int
	period  time.Duration
}

// New creates a full bucket. Zero or negative config values fall back
// to a 1-token, 1-per-minute, 1-per-call bucket.
func New(cfg Config) *Bucket {
	if cfg.MaxTokens < 1 {
		cfg.MaxTokens = 1
	}
	if cfg.RefillPerMinute < 1 {
		cfg.RefillPerMinute = 1
	}
	if cfg.ConsumePerCall < 1 {
		cfg.ConsumePerCall = 1
	}
	return &Bucket{
		tokens:  cfg.MaxTokens,
		max:     cfg.MaxTokens,
		perCall: cfg.ConsumePerCall,
		period:  time.Minute / time.Duration(cfg.RefillPerMinute),
	}
}

// TryConsume admits the call and consumes exactly ConsumePerCall tokens,
// or rejects without touching the counter.
func (b *Bucket) TryConsume() Result {
	if b.tokens < b.perCall {
		return Rejected
	}
	b.tokens -= b.perCall
	return Admitted
}

// Refill adds a single token, clamped to the maximum. It is called once
// per RefillPeriod for the life of the session.
func (b *Bucket) Refill() {
	if b.tokens < b.max {
		b.tokens++
	}
}

// Tokens returns the current token count.
func (b *Bucket) Tokens() int { return b.tokens }

// Max returns the bucket capacity.
func (b *Bucket) Max() int { return b.max }

// RefillPeriod returns the interval between single-token refills,
// derived from the per-minute refill rate.
func (b *Bucket) RefillPeriod() time.Duration { return b.period }
