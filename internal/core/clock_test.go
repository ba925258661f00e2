package core

import (
	"testing"
	"time"
)

func TestFrameClockFirstTickIsNominal(t *testing.T) {
	c := NewFrameClock(60)
	if got := c.Tick(time.Unix(100, 0)); got != 1.0 {
		t.Errorf("first Tick() = %f, expected 1.0", got)
	}
}

func TestFrameClockScale(t *testing.T) {
	c := NewFrameClock(50) // 20ms nominal
	start := time.Unix(0, 0)
	c.Tick(start)

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected float64
	}{
		{"nominal", 20 * time.Millisecond, 1.0},
		{"half frame", 10 * time.Millisecond, 0.5},
		{"slow frame", 30 * time.Millisecond, 1.5},
		{"stall is capped", 500 * time.Millisecond, MaxDTScale},
	}

	now := start
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now = now.Add(tc.elapsed)
			if got := c.Tick(now); got != tc.expected {
				t.Errorf("Tick() = %f, expected %f", got, tc.expected)
			}
		})
	}
}

func TestFrameClockBackwardsAndReset(t *testing.T) {
	c := NewFrameClock(60)
	base := time.Unix(10, 0)
	c.Tick(base)

	if got := c.Tick(base.Add(-time.Second)); got != 1.0 {
		t.Errorf("backwards Tick() = %f, expected 1.0", got)
	}

	c.Reset()
	if got := c.Tick(base.Add(time.Hour)); got != 1.0 {
		t.Errorf("Tick() after Reset = %f, expected 1.0", got)
	}
}

func TestFrameClockDefaultRate(t *testing.T) {
	c := NewFrameClock(0)
	if c.Nominal() != time.Second/60 {
		t.Errorf("Nominal() = %v, expected 1/60s", c.Nominal())
	}
}

func TestInputFrameScale(t *testing.T) {
	f := NewInputFrame()
	if f.Scale() != 1.0 {
		t.Errorf("unset Scale() = %f, expected 1.0", f.Scale())
	}

	f.DTScale = 1.5
	f.Set(ActionJump)
	clone := f.Clone()
	if clone.Scale() != 1.5 || !clone.Has(ActionJump) {
		t.Error("Clone should copy actions and DTScale")
	}

	f.Clear()
	if f.Has(ActionJump) || f.DTScale != 0 {
		t.Error("Clear should reset actions and DTScale")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clear should not affect the clone")
	}
}
