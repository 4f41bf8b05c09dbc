package physics

import (
	"math"
	"testing"

	"github.com/san-kum/conserve/internal/dynamo"
)

var testDomain = dynamo.Domain{Min: -5, Max: 5}

func TestMomentumCurve_Formula(t *testing.T) {
	states := []dynamo.State{
		{M0: 1, V0: 1, M1: 1, V1: -1},
		{M0: 2, V0: 3, M1: 1, V1: -1},
		{M0: -3, V0: 0.5, M1: 4.5, V1: 2},
		{M0: 0.1, V0: -5, M1: 5, V1: 5},
	}

	for _, s := range states {
		n := 0
		for p := range MomentumCurve(s, testDomain) {
			want := s.M0*(s.V0-p.X)/s.M1 + s.V1
			if math.Abs(p.Y-want) > 1e-12 {
				t.Errorf("%v: y(%v) = %v, want %v", s, p.X, p.Y, want)
			}
			// the sampled state must conserve momentum
			if got := s.M0*p.X + s.M1*p.Y; math.Abs(got-Momentum(s)) > 1e-9 {
				t.Errorf("%v: momentum at x=%v is %v, want %v", s, p.X, got, Momentum(s))
			}
			n++
		}
		if n != Samples {
			t.Errorf("expected %d samples, got %d", Samples, n)
		}
	}
}

func TestEnergyCurve_Symmetry(t *testing.T) {
	s := dynamo.State{M0: 1.5, V0: 2, M1: 0.7, V1: -1.2}
	upper, lower := EnergyCurve(s, testDomain)

	up, lo := Collect(upper), Collect(lower)
	if len(up) != Samples || len(lo) != Samples {
		t.Fatalf("expected %d samples, got %d and %d", Samples, len(up), len(lo))
	}

	finite := 0
	for i := range up {
		if up[i].X != lo[i].X {
			t.Fatalf("x mismatch at %d: %v vs %v", i, up[i].X, lo[i].X)
		}
		if !up[i].Finite() || !lo[i].Finite() {
			continue
		}
		finite++
		if up[i].Y != -lo[i].Y {
			t.Errorf("upper(%v) = %v, lower = %v", up[i].X, up[i].Y, lo[i].Y)
		}
		// every finite sample lies on the energy ellipse
		e := s.M0*up[i].X*up[i].X + s.M1*up[i].Y*up[i].Y
		if math.Abs(e-EnergyConstant(s)) > 1e-9 {
			t.Errorf("energy at x=%v is %v, want %v", up[i].X, e, EnergyConstant(s))
		}
	}
	if finite == 0 {
		t.Error("expected some finite samples")
	}
}

func TestEnergyCurve_UnreachableIsNaN(t *testing.T) {
	s := dynamo.State{M0: 1, V0: 1, M1: 1, V1: 0}
	upper, _ := EnergyCurve(s, testDomain)

	for p := range upper {
		if math.Abs(p.X) > ReachableBound(s) && !math.IsNaN(p.Y) {
			t.Errorf("expected NaN beyond bound at x=%v, got %v", p.X, p.Y)
		}
	}
}

func TestCurves_Idempotent(t *testing.T) {
	s := dynamo.State{M0: 2, V0: -1, M1: 3, V1: 4}

	seq := MomentumCurve(s, testDomain)
	a, b := Collect(seq), Collect(seq)
	if !samePoints(a, b) {
		t.Error("momentum curve differs between iterations")
	}
	if !samePoints(a, Collect(MomentumCurve(s, testDomain))) {
		t.Error("momentum curve differs between calls")
	}

	u1, l1 := EnergyCurve(s, testDomain)
	u2, l2 := EnergyCurve(s, testDomain)
	if !samePoints(Collect(u1), Collect(u2)) || !samePoints(Collect(l1), Collect(l2)) {
		t.Error("energy curve differs between calls")
	}
	if !samePoints(Collect(u1), Collect(u1)) {
		t.Error("energy curve differs between iterations")
	}
}

func TestCurves_SampleCount(t *testing.T) {
	states := []dynamo.State{
		{},
		{M0: 1, V0: 1, M1: 0, V1: 1},
		{M0: -5, V0: 5, M1: -5, V1: 5},
		{M0: math.NaN(), V0: 1, M1: 1, V1: 1},
	}
	domains := []dynamo.Domain{testDomain, {Min: 0, Max: 1e-6}, {Min: -1000, Max: 1000}}

	for _, s := range states {
		for _, d := range domains {
			if n := len(Collect(MomentumCurve(s, d))); n != Samples {
				t.Errorf("momentum %v over %v: %d samples", s, d, n)
			}
			upper, lower := EnergyCurve(s, d)
			if n := len(Collect(upper)); n != Samples {
				t.Errorf("upper %v over %v: %d samples", s, d, n)
			}
			if n := len(Collect(lower)); n != Samples {
				t.Errorf("lower %v over %v: %d samples", s, d, n)
			}
		}
	}
}

func TestCurves_SpansDomain(t *testing.T) {
	pts := Collect(MomentumCurve(dynamo.State{M0: 1, M1: 1}, testDomain))
	if pts[0].X != testDomain.Min || pts[len(pts)-1].X != testDomain.Max {
		t.Errorf("samples span [%v, %v], want [%v, %v]", pts[0].X, pts[len(pts)-1].X, testDomain.Min, testDomain.Max)
	}
}

func TestCurves_EarlyBreak(t *testing.T) {
	n := 0
	for range MomentumCurve(dynamo.State{M0: 1, M1: 1}, testDomain) {
		n++
		if n == 10 {
			break
		}
	}
	if n != 10 {
		t.Errorf("expected to stop after 10, got %d", n)
	}
}

func TestCurves_BothAtRest(t *testing.T) {
	s := dynamo.State{M0: 1, V0: 0, M1: 1, V1: 0}
	d := dynamo.Domain{Min: 0, Max: 5}

	for p := range MomentumCurve(s, d) {
		if math.Abs(p.Y+p.X) > 1e-12 {
			t.Errorf("expected y = -x, got y(%v) = %v", p.X, p.Y)
		}
	}

	upper, lower := EnergyCurve(s, d)
	for _, half := range [][]dynamo.Point{Collect(upper), Collect(lower)} {
		if half[0].X != 0 || half[0].Y != 0 {
			t.Errorf("expected (0, 0) at x=0, got %v", half[0])
		}
		for _, p := range half[1:] {
			if p.Finite() {
				t.Errorf("expected non-finite sample at x=%v, got %v", p.X, p.Y)
			}
		}
	}
}

func TestCurves_ZeroMass(t *testing.T) {
	states := []dynamo.State{
		{M0: 2, V0: 3, M1: 0, V1: -1},
		{M0: 0, V0: 0, M1: 0, V1: 0},
		{M0: -1, V0: 4, M1: 0, V1: 5},
	}

	for _, s := range states {
		for p := range MomentumCurve(s, testDomain) {
			if p.Finite() {
				t.Errorf("%v: momentum sample at x=%v is finite: %v", s, p.X, p.Y)
			}
		}
		upper, lower := EnergyCurve(s, testDomain)
		for p := range upper {
			if p.Finite() {
				t.Errorf("%v: upper sample at x=%v is finite: %v", s, p.X, p.Y)
			}
		}
		for p := range lower {
			if p.Finite() {
				t.Errorf("%v: lower sample at x=%v is finite: %v", s, p.X, p.Y)
			}
		}
	}
}

func TestCurves_Scenario(t *testing.T) {
	s := dynamo.State{M0: 2, V0: 3, M1: 1, V1: -1}

	pts := Collect(MomentumCurve(s, dynamo.Domain{Min: 3, Max: 5}))
	if pts[0].X != 3 || pts[0].Y != -1.0 {
		t.Errorf("momentum at x=3: got %v, want -1", pts[0])
	}
	if got := MomentumAt(s, 3); got != -1.0 {
		t.Errorf("MomentumAt(3) = %v, want -1", got)
	}

	if EnergyConstant(s) != 19 {
		t.Errorf("d = %v, want 19", EnergyConstant(s))
	}
	upper, lower := EnergyCurve(s, dynamo.Domain{Min: 0, Max: 5})
	up, lo := Collect(upper), Collect(lower)
	if math.Abs(up[0].Y-4.3589) > 1e-4 || up[0].Y != math.Sqrt(19) {
		t.Errorf("upper at x=0: got %v, want sqrt(19)", up[0].Y)
	}
	if lo[0].Y != -math.Sqrt(19) {
		t.Errorf("lower at x=0: got %v, want -sqrt(19)", lo[0].Y)
	}
}

func TestCurvesN(t *testing.T) {
	s := dynamo.State{M0: 1, V0: 1, M1: 1, V1: 1}
	if n := len(Collect(MomentumCurveN(s, testDomain, 64))); n != 64 {
		t.Errorf("expected 64 samples, got %d", n)
	}
	upper, lower := EnergyCurveN(s, testDomain, 3)
	up, lo := Collect(upper), Collect(lower)
	if len(up) != 3 || len(lo) != 3 {
		t.Fatalf("expected 3 samples, got %d and %d", len(up), len(lo))
	}
	if up[1].X != 0 || up[1].Y != math.Sqrt(2) {
		t.Errorf("midpoint = %v, want (0, sqrt(2))", up[1])
	}
}

func samePoints(a, b []dynamo.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].X != b[i].X {
			return false
		}
		ya, yb := a[i].Y, b[i].Y
		if math.IsNaN(ya) && math.IsNaN(yb) {
			continue
		}
		if ya != yb {
			return false
		}
	}
	return true
}
