package limiter

import (
	"testing"
	"time"
)

func TestTryConsume_DrainsThenRejects(t *testing.T) {
	b := New(Config{MaxTokens: 3, RefillPerMinute: 2, ConsumePerCall: 1})

	for i := 0; i < 3; i++ {
		if got := b.TryConsume(); got != Admitted {
			t.Fatalf("consume %d = %v, want admitted", i, got)
		}
	}
	if got := b.TryConsume(); got != Rejected {
		t.Fatalf("consume on empty = %v, want rejected", got)
	}
	if b.Tokens() != 0 {
		t.Errorf("Tokens after rejection = %d, want 0 (rejection must not mutate)", b.Tokens())
	}
}

func TestTryConsume_RejectsBelowPerCall(t *testing.T) {
	b := New(Config{MaxTokens: 5, RefillPerMinute: 1, ConsumePerCall: 2})

	if got := b.TryConsume(); got != Admitted {
		t.Fatalf("first consume = %v, want admitted", got)
	}
	if got := b.TryConsume(); got != Admitted {
		t.Fatalf("second consume = %v, want admitted", got)
	}
	// One token left, per-call is two.
	if got := b.TryConsume(); got != Rejected {
		t.Fatalf("consume with 1 < 2 tokens = %v, want rejected", got)
	}
	if b.Tokens() != 1 {
		t.Errorf("Tokens = %d, want 1", b.Tokens())
	}
}

func TestRefill_ClampsAtMax(t *testing.T) {
	b := New(Config{MaxTokens: 2, RefillPerMinute: 60, ConsumePerCall: 1})

	b.Refill()
	b.Refill()
	if b.Tokens() != 2 {
		t.Errorf("Tokens after refill at max = %d, want 2", b.Tokens())
	}

	b.TryConsume()
	b.Refill()
	if b.Tokens() != 2 {
		t.Errorf("Tokens after consume+refill = %d, want 2", b.Tokens())
	}
}

func TestTokensNeverNegative(t *testing.T) {
	b := New(Config{MaxTokens: 1, RefillPerMinute: 1, ConsumePerCall: 1})
	for i := 0; i < 10; i++ {
		b.TryConsume()
		if b.Tokens() < 0 {
			t.Fatalf("Tokens went negative: %d", b.Tokens())
		}
	}
}

func TestRefillPeriod_DerivedFromRate(t *testing.T) {
	cases := []struct {
		perMinute int
		want      time.Duration
	}{
		{1, time.Minute},
		{3, 20 * time.Second},
		{60, time.Second},
	}
	for _, tc := range cases {
		b := New(Config{MaxTokens: 1, RefillPerMinute: tc.perMinute, ConsumePerCall: 1})
		if got := b.RefillPeriod(); got != tc.want {
			t.Errorf("RefillPeriod(rate=%d) = %v, want %v", tc.perMinute, got, tc.want)
		}
	}
}

func TestNew_DefaultsOnZeroConfig(t *testing.T) {
	b := New(Config{})
	if b.Max() != 1 || b.Tokens() != 1 {
		t.Errorf("zero config bucket = %d/%d tokens, want 1/1", b.Tokens(), b.Max())
	}
	if b.RefillPeriod() != time.Minute {
		t.Errorf("zero config period = %v, want 1m", b.RefillPeriod())
	}
}
