package activity

import (
	"testing"
)

func TestTicksDiff_Plain(t *testing.T) {
	if got := TicksDiff(1500, 1000); got != 500 {
		t.Fatalf("got=%d want=500", got)
	}
	if got := TicksDiff(1000, 1500); got != -500 {
		t.Fatalf("got=%d want=-500", got)
	}
}

func TestTicksDiff_AcrossWrap(t *testing.T) {
	// 100ms interval spanning the counter wrap.
	a := int64(40)
	b := int64(ticksPeriod - 60)
	if got := TicksDiff(a, b); got != 100 {
		t.Fatalf("got=%d want=100", got)
	}
	if got := TicksDiff(b, a); got != -100 {
		t.Fatalf("got=%d want=-100", got)
	}
}

func TestMonotonicClock_Advances(t *testing.T) {
	c := NewMonotonicClock()
	a := c.TicksMs()
	b := c.TicksMs()
	if TicksDiff(b, a) < 0 {
		t.Fatalf("clock went backwards: a=%d b=%d", a, b)
	}
}
