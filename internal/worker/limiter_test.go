package worker

import "testing"

func TestProgressThrottle_Limits(t *testing.T) {
	throttle := NewProgressThrottle(1, 1)

	if !throttle.Allow(1, 100) {
		t.Error("expected first update to pass")
	}
	if throttle.Allow(2, 100) {
		t.Error("expected second immediate update to be throttled")
	}
	if !throttle.Allow(100, 100) {
		t.Error("expected final update to always pass")
	}
}

func TestProgressThrottle_Unlimited(t *testing.T) {
	for _, rate := range []float64{0, -1} {
		throttle := NewProgressThrottle(rate, 0)
		for i := 1; i < 50; i++ {
			if !throttle.Allow(i, 100) {
				t.Fatalf("rate %v: expected update %d to pass", rate, i)
			}
		}
	}
}
