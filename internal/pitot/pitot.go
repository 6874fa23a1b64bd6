// Package pitot derives flow velocity from a Pitot-static tube read on a
// differential manometer.
package pitot

import (
	"math"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Reading is a Pitot-static probe connected to a manometer
type Reading struct {
	ManometerDensity float64 `json:"manometer_density"`     // ρm, kg/m³
	FluidDensity     float64 `json:"fluid_density"`         // ρf, kg/m³
	Height           float64 `json:"height"`                // h, m
	Gravity          float64 `json:"gravity,omitempty"`     // g, m/s² (0 = standard)
	Calibration      float64 `json:"calibration,omitempty"` // C (0 = uncalibrated, C = 1)
}

// Result of a Pitot reading
type Result struct {
	ManometerPressure float64 `json:"manometer_pressure"` // ρm·g·h, Pa
	Velocity          float64 `json:"velocity"`           // U, m/s
	ActualVelocity    float64 `json:"actual_velocity"`    // C·U, m/s
	DynamicPressure   float64 `json:"dynamic_pressure"`   // q = ½ρf·U², Pa
	Calibration       float64 `json:"calibration"`        // C applied
}

func (r Reading) gravity() float64 {
	if r.Gravity == 0 {
		return fluid.Gravity
	}
	return r.Gravity
}

func (r Reading) calibration() float64 {
	if r.Calibration == 0 {
		return 1
	}
	return r.Calibration
}

// Validate checks the reading
func (r Reading) Validate() error {
	return fluid.FirstError(
		fluid.Positive("manometer density", r.ManometerDensity),
		fluid.Positive("fluid density", r.FluidDensity),
		fluid.NonNegative("height", r.Height),
		fluid.Positive("gravity", r.gravity()),
		fluid.Positive("calibration", r.calibration()),
	)
}

// Analyze evaluates U = √(2ρm·g·h/ρf) and q = ½ρf·U²
func (r Reading) Analyze() (*Result, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	g := r.gravity()
	c := r.calibration()

	u := math.Sqrt(2 * r.ManometerDensity * g * r.Height / r.FluidDensity)
	return &Result{
		ManometerPressure: r.ManometerDensity * g * r.Height,
		Velocity:          u,
		ActualVelocity:    c * u,
		DynamicPressure:   0.5 * r.FluidDensity * u * u,
		Calibration:       c,
	}, nil
}

// ManometerHeight is the inverse of Analyze: the deflection h = ρf·U²/(2ρm·g)
// produced by an uncalibrated velocity u.
func ManometerHeight(manometerDensity, fluidDensity, g, u float64) (float64, error) {
	if err := fluid.FirstError(
		fluid.Positive("manometer density", manometerDensity),
		fluid.Positive("fluid density", fluidDensity),
		fluid.Positive("gravity", g),
		fluid.NonNegative("velocity", u),
	); err != nil {
		return 0, err
	}
	return fluidDensity * u * u / (2 * manometerDensity * g), nil
}

// Preset is a named Pitot scenario
type Preset struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Reading Reading `json:"reading"`
}

// Presets lists the standard Pitot scenarios
var Presets = []Preset{
	{
		Key:     "aircraft-10000ft",
		Name:    "Aircraft at 10,000 ft",
		Reading: Reading{ManometerDensity: fluid.StandardWaterDensity, FluidDensity: 0.9046, Height: 0.1, Calibration: 0.98},
	},
	{
		Key:     "wind-tunnel",
		Name:    "Sea-level wind tunnel",
		Reading: Reading{ManometerDensity: fluid.StandardWaterDensity, FluidDensity: fluid.SeaLevelAirDensity, Height: 0.05},
	},
	{
		Key:     "water-channel",
		Name:    "Water channel",
		Reading: Reading{ManometerDensity: fluid.MercuryDensity, FluidDensity: fluid.StandardWaterDensity, Height: 0.02},
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
