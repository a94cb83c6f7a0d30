package backoff

import (
	"testing"
	"time"
)

func TestPolicy_StartDelay(t *testing.T) {
	p := Policy{MinStartDelay: 500 * time.Millisecond, MaxStartDelay: 2 * time.Second}

	for i := 0; i < 100; i++ {
		d := p.StartDelay()
		if d < p.MinStartDelay || d >= p.MaxStartDelay {
			t.Fatalf("StartDelay() = %v, want in [%v, %v)", d, p.MinStartDelay, p.MaxStartDelay)
		}
	}
}

func TestPolicy_StartDelayDegenerateWindow(t *testing.T) {
	p := Policy{MinStartDelay: time.Second, MaxStartDelay: time.Second}
	if d := p.StartDelay(); d != time.Second {
		t.Errorf("StartDelay() = %v, want %v", d, time.Second)
	}
}

func TestPolicy_RateLimitWait(t *testing.T) {
	p := Policy{Unit: time.Second}

	tests := []struct {
		attempt  int
		min, max time.Duration
	}{
		{0, 1 * time.Second, 2 * time.Second},
		{1, 2 * time.Second, 4 * time.Second},
		{2, 4 * time.Second, 8 * time.Second},
	}

	for _, tt := range tests {
		for i := 0; i < 50; i++ {
			d := p.RateLimitWait(tt.attempt)
			if d < tt.min || d >= tt.max {
				t.Fatalf("RateLimitWait(%d) = %v, want in [%v, %v)", tt.attempt, d, tt.min, tt.max)
			}
		}
	}
}

func TestPolicy_RetryWait(t *testing.T) {
	p := Policy{Unit: time.Second}
	for i := 0; i < 50; i++ {
		d := p.RetryWait()
		if d < time.Second || d >= 2*time.Second {
			t.Fatalf("RetryWait() = %v, want in [1s, 2s)", d)
		}
	}
}

func TestPolicy_ZeroValueNeverSleeps(t *testing.T) {
	var p Policy
	if d := p.StartDelay(); d != 0 {
		t.Errorf("StartDelay() = %v, want 0", d)
	}
	if d := p.RateLimitWait(3); d != 0 {
		t.Errorf("RateLimitWait() = %v, want 0", d)
	}
	if d := p.RetryWait(); d != 0 {
		t.Errorf("RetryWait() = %v, want 0", d)
	}
	if d := p.TimeoutWait(); d != 0 {
		t.Errorf("TimeoutWait() = %v, want 0", d)
	}
}
