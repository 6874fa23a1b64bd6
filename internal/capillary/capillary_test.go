package capillary

import (
	"math"
	"testing"
)

func TestWaterInOneMillimetreTube(t *testing.T) {
	r, err := Tube{SurfaceTension: 0.0728, ContactAngle: 0, Density: 998, Diameter: 0.001, Gravity: 9.81}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	want := 4 * 0.0728 / (998 * 9.81 * 0.001)
	if math.Abs(r.Rise-want) > 1e-12 {
		t.Errorf("h = %v, want %v", r.Rise, want)
	}
	// textbook reference: about 30 mm
	if math.Abs(r.RiseMM-29.78) > 0.1 {
		t.Errorf("h = %.3f mm, want ≈29.8 mm", r.RiseMM)
	}
	if r.Depression {
		t.Error("water should rise in glass")
	}
}

func TestMercuryIsDepressed(t *testing.T) {
	p, ok := LookupPreset("mercury-glass")
	if !ok {
		t.Fatal("mercury preset missing")
	}
	r, err := p.Tube.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if !r.Depression || r.Rise >= 0 {
		t.Errorf("mercury rise = %v, want a depression", r.Rise)
	}
}

func TestRightAngleGivesNoRise(t *testing.T) {
	r, err := Tube{SurfaceTension: 0.07, ContactAngle: 90, Density: 1000, Diameter: 0.002}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.Rise) > 1e-15 {
		t.Errorf("h(90°) = %v", r.Rise)
	}
}

func TestTubeValidation(t *testing.T) {
	bad := []Tube{
		{SurfaceTension: 0.07, ContactAngle: 0, Density: 1000, Diameter: 0},
		{SurfaceTension: 0.07, ContactAngle: 0, Density: 0, Diameter: 0.001},
		{SurfaceTension: 0.07, ContactAngle: 181, Density: 1000, Diameter: 0.001},
		{SurfaceTension: -0.07, ContactAngle: 0, Density: 1000, Diameter: 0.001},
	}
	for _, tube := range bad {
		if _, err := tube.Analyze(); err == nil {
			t.Errorf("%+v accepted", tube)
		}
	}
}
