package bend

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestReducingBend(t *testing.T) {
	r, err := Geometry{
		InletDiameter:  0.3,
		OutletDiameter: 0.2,
		Angle:          60,
		FlowRate:       0.1,
		InletPressure:  200e3,
		Density:        1000,
	}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	checks := []struct {
		name      string
		got, want float64
		tol       float64
	}{
		{"A1", r.InletArea, 0.0706858347, 1e-9},
		{"A2", r.OutletArea, 0.0314159265, 1e-9},
		{"U1", r.InletVelocity, 1.4147106053, 1e-9},
		{"U2", r.OutletVelocity, 3.1830988618, 1e-9},
		{"p2", r.OutletPressure, 195934.6438662, 1e-6},
		{"Fx", r.Fx, 11077.1166350, 1e-6},
		{"Fy", r.Fy, -5055.1275394, 1e-6},
		{"|R|", r.Magnitude, 12176.0760257, 1e-6},
		{"φ", r.Direction, 155.4700494776, 1e-8},
	}
	for _, c := range checks {
		if !near(c.got, c.want, c.tol) {
			t.Errorf("%s = %.10f, want %.10f", c.name, c.got, c.want)
		}
	}
	if r.Rx != -r.Fx || r.Ry != -r.Fy {
		t.Error("reaction is not the negated fluid force")
	}
}

func TestStraightReducer(t *testing.T) {
	r, err := Geometry{InletDiameter: 0.2, OutletDiameter: 0.1, Angle: 0, FlowRate: 0.05, InletPressure: 0, Density: 1000}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if r.Fy != 0 {
		t.Errorf("Fy = %v for a straight reducer", r.Fy)
	}
	if r.Magnitude == 0 {
		t.Error("area change alone should load the reducer")
	}
}

func TestRightAngleEqualDiameters(t *testing.T) {
	g := Geometry{InletDiameter: 0.15, OutletDiameter: 0.15, Angle: 90, FlowRate: 0.04, InletPressure: 50e3, Density: 1000}
	r, err := g.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if r.InletVelocity != r.OutletVelocity {
		t.Fatalf("U1 %v != U2 %v", r.InletVelocity, r.OutletVelocity)
	}
	if r.OutletPressure != g.InletPressure {
		t.Errorf("p2 = %v, want p1", r.OutletPressure)
	}
	wantFx := -r.MassFlow*r.InletVelocity + g.InletPressure*r.InletArea
	if !near(r.Fx, wantFx, 1e-9) {
		t.Errorf("Fx = %v, want %v", r.Fx, wantFx)
	}
	if r.Magnitude <= 0 {
		t.Error("direction change alone should produce a reaction")
	}

	// pure momentum: no pressure, still nonzero
	g.InletPressure = 0
	r, err = g.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if r.Magnitude <= 0 {
		t.Error("zero-pressure bend produced no reaction")
	}
}

func TestGeometryValidation(t *testing.T) {
	base := Geometry{InletDiameter: 0.2, OutletDiameter: 0.1, Angle: 45, FlowRate: 0.05, InletPressure: 1e5, Density: 1000}
	mutations := map[string]func(*Geometry){
		"zero inlet":   func(g *Geometry) { g.InletDiameter = 0 },
		"zero outlet":  func(g *Geometry) { g.OutletDiameter = 0 },
		"angle > 180":  func(g *Geometry) { g.Angle = 181 },
		"angle < 0":    func(g *Geometry) { g.Angle = -5 },
		"zero density": func(g *Geometry) { g.Density = 0 },
		"inf pressure": func(g *Geometry) { g.InletPressure = math.Inf(1) },
		"negative Q":   func(g *Geometry) { g.FlowRate = -1 },
	}
	for name, mutate := range mutations {
		g := base
		mutate(&g)
		if _, err := g.Analyze(); err == nil {
			t.Errorf("%s accepted", name)
		}
	}
}
