package pitot

import (
	"math"
	"testing"
)

func TestVelocityFromReading(t *testing.T) {
	r, err := Reading{ManometerDensity: 1000, FluidDensity: 1.225, Height: 0.05, Gravity: 9.81}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sqrt(2 * 1000 * 9.81 * 0.05 / 1.225)
	if math.Abs(r.Velocity-want) > 1e-12 {
		t.Errorf("U = %v, want %v", r.Velocity, want)
	}
	if r.ActualVelocity != r.Velocity || r.Calibration != 1 {
		t.Errorf("uncalibrated reading changed velocity: %+v", r)
	}
	// q equals the manometer pressure when it is read against ρm alone
	if math.Abs(r.DynamicPressure-r.ManometerPressure) > 1e-9 {
		t.Errorf("q = %v, ρm·g·h = %v", r.DynamicPressure, r.ManometerPressure)
	}
}

func TestCalibration(t *testing.T) {
	r, err := Reading{ManometerDensity: 13600, FluidDensity: 1000, Height: 0.02, Calibration: 0.97}.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(r.ActualVelocity-0.97*r.Velocity) > 1e-15 {
		t.Errorf("C·U = %v, U = %v", r.ActualVelocity, r.Velocity)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, u := range []float64{0.5, 2.31, 46.6, 120, 250} {
		h, err := ManometerHeight(13600, 1.225, 9.81, u)
		if err != nil {
			t.Fatal(err)
		}
		r, err := Reading{ManometerDensity: 13600, FluidDensity: 1.225, Height: h, Gravity: 9.81}.Analyze()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(r.Velocity-u) > 1e-9*u {
			t.Errorf("round trip U=%v → h=%v → U'=%v", u, h, r.Velocity)
		}
	}
}

func TestRejectsZeroFluidDensity(t *testing.T) {
	if _, err := (Reading{ManometerDensity: 1000, FluidDensity: 0, Height: 0.1}).Analyze(); err == nil {
		t.Error("ρf = 0 accepted")
	}
	if _, err := ManometerHeight(1000, 0, 9.81, 1); err == nil {
		t.Error("ManometerHeight accepted ρf = 0")
	}
	if _, err := (Reading{ManometerDensity: 1000, FluidDensity: 1, Height: 0.1, Calibration: -1}).Analyze(); err == nil {
		t.Error("negative calibration accepted")
	}
}

func TestPresets(t *testing.T) {
	p, ok := LookupPreset("aircraft-10000ft")
	if !ok {
		t.Fatal("aircraft preset missing")
	}
	r, err := p.Reading.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	if r.Velocity < 40 || r.Velocity > 55 {
		t.Errorf("aircraft U = %v m/s, expected ~46.6", r.Velocity)
	}
	for _, p := range Presets {
		if err := p.Reading.Validate(); err != nil {
			t.Errorf("preset %s: %v", p.Key, err)
		}
	}
}
