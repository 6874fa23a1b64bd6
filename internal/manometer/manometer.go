// Package manometer evaluates differential U-tube manometer readings.
package manometer

import (
	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Reading is a U-tube manometer whose gauge liquid (density ManometerDensity) is
// deflected by Height under a working fluid of density FluidDensity.
type Reading struct {
	ManometerDensity float64 `json:"manometer_density"` // ρm, kg/m³
	FluidDensity     float64 `json:"fluid_density"`     // ρf, kg/m³
	Height           float64 `json:"height"`            // h, m
	Gravity          float64 `json:"gravity,omitempty"` // g, m/s² (0 = standard)
}

// Result of a manometer reading
type Result struct {
	PressureDifference float64 `json:"pressure_difference"` // Δp = (ρm−ρf)·g·h, Pa
	FluidHead          float64 `json:"fluid_head"`          // Δp/(ρf·g), m of working fluid
	DensityRatio       float64 `json:"density_ratio"`       // ρm/ρf
}

func (r Reading) gravity() float64 {
	if r.Gravity == 0 {
		return fluid.Gravity
	}
	return r.Gravity
}

// Validate checks the reading; the gauge liquid must be the heavier one
func (r Reading) Validate() error {
	if err := fluid.FirstError(
		fluid.Positive("manometer density", r.ManometerDensity),
		fluid.Positive("fluid density", r.FluidDensity),
		fluid.NonNegative("height", r.Height),
		fluid.Positive("gravity", r.gravity()),
	); err != nil {
		return err
	}
	if r.ManometerDensity <= r.FluidDensity {
		return &fluid.InputError{Field: "manometer density", Value: r.ManometerDensity, Rule: "must exceed the working fluid density"}
	}
	return nil
}

// Analyze converts the deflection into a pressure difference
func (r Reading) Analyze() (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	g := r.gravity()
	dp := (r.ManometerDensity - r.FluidDensity) * g * r.Height
	return &Result{
		PressureDifference: dp,
		FluidHead:          dp / (r.FluidDensity * g),
		DensityRatio:       r.ManometerDensity / r.FluidDensity,
	}, nil
}

// Preset is a named gauge-liquid / working-fluid pair
type Preset struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Reading Reading `json:"reading"`
}

// Presets lists the common manometer pairings
var Presets = []Preset{
	{
		Key:     "mercury-water",
		Name:    "Mercury–Water",
		Reading: Reading{ManometerDensity: fluid.MercuryDensity, FluidDensity: fluid.StandardWaterDensity, Height: 0.1},
	},
	{
		Key:     "water-air",
		Name:    "Water–Air",
		Reading: Reading{ManometerDensity: fluid.StandardWaterDensity, FluidDensity: fluid.SeaLevelAirDensity, Height: 0.05},
	},
	{
		Key:     "oil-water",
		Name:    "Oil–Water",
		Reading: Reading{ManometerDensity: fluid.StandardWaterDensity, FluidDensity: 850, Height: 0.2},
	},
	{
		Key:     "mercury-air",
		Name:    "Mercury–Air",
		Reading: Reading{ManometerDensity: fluid.MercuryDensity, FluidDensity: fluid.SeaLevelAirDensity, Height: 0.076},
	},
}

// LookupPreset finds a preset by key
func LookupPreset(key string) (Preset, bool) {
	for _, p := range Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}
