package manometer

import (
	"math"
	"testing"
)

func TestMercuryWater(t *testing.T) {
	p, ok := LookupPreset("mercury-water")
	if !ok {
		t.Fatal("mercury-water preset missing")
	}
	r, err := p.Reading.Analyze()
	if err != nil {
		t.Fatal(err)
	}
	// (13600 − 1000)·9.81·0.1
	if math.Abs(r.PressureDifference-12360.6) > 1e-6 {
		t.Errorf("Δp = %v", r.PressureDifference)
	}
	if math.Abs(r.FluidHead-1.26) > 1e-9 {
		t.Errorf("head = %v m of water, want 1.26", r.FluidHead)
	}
	if math.Abs(r.DensityRatio-13.6) > 1e-12 {
		t.Errorf("ratio = %v", r.DensityRatio)
	}
}

func TestReadingValidation(t *testing.T) {
	bad := []Reading{
		{ManometerDensity: 1000, FluidDensity: 1000, Height: 0.1},
		{ManometerDensity: 800, FluidDensity: 1000, Height: 0.1},
		{ManometerDensity: 13600, FluidDensity: 0, Height: 0.1},
		{ManometerDensity: 13600, FluidDensity: 1000, Height: -0.1},
	}
	for _, r := range bad {
		if _, err := r.Analyze(); err == nil {
			t.Errorf("%+v accepted", r)
		}
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, p := range Presets {
		if err := p.Reading.Validate(); err != nil {
			t.Errorf("preset %s: %v", p.Key, err)
		}
	}
}

func TestOilWaterPreset(t *testing.T) {
	p, ok := LookupPreset("oil-water")
	if !ok {
		t.Fatal("oil-water preset missing")
	}
	if p.Name != "Oil–Water" {
		t.Errorf("name = %q", p.Name)
	}
	if _, ok := LookupPreset("water-oil"); ok {
		t.Error("stale water-oil key still resolves")
	}
}
