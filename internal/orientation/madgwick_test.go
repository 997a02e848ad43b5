package orientation

import (
	"math"
	"testing"
)

func TestUpdate_NormIsUnit(t *testing.T) {
	f := NewFilter(DefaultBeta)
	// A mix of rotation rates and an off-axis accel vector.
	f.Update(10, -5, 3, 0.1, 0.2, 0.97, 0.02)
	if n := f.Quaternion().Norm(); math.Abs(n-1) > 1e-9 {
		t.Fatalf("norm=%v want 1", n)
	}
	// Keep integrating; the invariant must hold every step.
	for i := 0; i < 100; i++ {
		f.Update(25, 12, -8, 0.3, -0.1, 0.9, 0.02)
		if n := f.Quaternion().Norm(); math.Abs(n-1) > 1e-9 {
			t.Fatalf("step %d: norm=%v want 1", i, n)
		}
	}
}

func TestUpdate_ZeroAccelIsNoOp(t *testing.T) {
	f := NewFilter(DefaultBeta)
	f.Update(10, -5, 3, 0.1, 0.2, 0.97, 0.02)
	before := f.Quaternion()

	f.Update(90, 90, 90, 0, 0, 0, 0.02)
	if got := f.Quaternion(); got != before {
		t.Fatalf("quaternion changed on zero accel: got=%+v want=%+v", got, before)
	}
}

func TestUpdate_ZeroGradientIsNoOp(t *testing.T) {
	// At identity with accel exactly along +Z the objective terms all vanish,
	// so the corrective gradient has zero magnitude and the update must bail
	// before integrating.
	f := NewFilter(DefaultBeta)
	f.Update(0, 0, 0, 0, 0, 1, 0.02)
	if got := f.Quaternion(); got != Identity() {
		t.Fatalf("quaternion changed on zero gradient: got=%+v want identity", got)
	}
}

func TestIdentity_EulerAndGravity(t *testing.T) {
	f := NewFilter(DefaultBeta)

	p := f.Euler()
	if p.Roll != 0 || p.Pitch != 0 || p.Yaw != 0 {
		t.Fatalf("euler=%+v want (0,0,0)", p)
	}

	g := f.GravityVector()
	if g.X != 0 || g.Y != 0 || g.Z != 1 {
		t.Fatalf("gravity=%+v want (0,0,1)", g)
	}
}

func TestEuler_PitchClampsAtGimbalLock(t *testing.T) {
	// q = (cos45, 0, sin45, 0) is a +90° pitch: sinp = 2*q0*q2 = 1 exactly.
	s := math.Sqrt(2) / 2
	f := &Filter{beta: DefaultBeta, q: Quaternion{W: s, Y: s}}
	if p := f.Euler(); p.Pitch != 90 {
		t.Fatalf("pitch=%v want 90", p.Pitch)
	}

	f.q = Quaternion{W: s, Y: -s}
	if p := f.Euler(); p.Pitch != -90 {
		t.Fatalf("pitch=%v want -90", p.Pitch)
	}
}

func TestUpdate_SingleStepFromIdentity(t *testing.T) {
	// From identity with accel along +Y and no rotation, the objective terms
	// are f1=0, f2=-1, f3=1, so the normalized gradient is (0,1,0,0) and one
	// step integrates to normalize(1, -beta*dt, 0, 0).
	f := NewFilter(DefaultBeta)
	f.Update(0, 0, 0, 0, 1, 0, 0.02)

	d := DefaultBeta * 0.02
	n := math.Sqrt(1 + d*d)
	q := f.Quaternion()
	if math.Abs(q.W-1/n) > 1e-12 || math.Abs(q.X-(-d/n)) > 1e-12 {
		t.Fatalf("got=%+v want (%v,%v,0,0)", q, 1/n, -d/n)
	}
	if q.Y != 0 || q.Z != 0 {
		t.Fatalf("got=%+v want zero y/z", q)
	}
}

func TestNormalized_UnitResult(t *testing.T) {
	q := Quaternion{W: 3, X: 4, Y: 0, Z: 0}.Normalized()
	if math.Abs(q.Norm()-1) > 1e-12 {
		t.Fatalf("norm=%v want 1", q.Norm())
	}
	if math.Abs(q.W-0.6) > 1e-12 || math.Abs(q.X-0.8) > 1e-12 {
		t.Fatalf("got=%+v want (0.6,0.8,0,0)", q)
	}
}
