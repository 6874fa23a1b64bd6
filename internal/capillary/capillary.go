// Package capillary computes the meniscus rise (or depression) of a liquid in a
// narrow circular tube.
package capillary

import (
	"math"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Tube describes the liquid and the tube it stands in
type Tube struct {
	SurfaceTension float64 `json:"surface_tension"`   // σ, N/m
	ContactAngle   float64 `json:"contact_angle"`     // θ, degrees
	Density        float64 `json:"density"`           // ρ, kg/m³
	Diameter       float64 `json:"diameter"`          // d, m
	Gravity        float64 `json:"gravity,omitempty"` // g, m/s² (0 = standard)
}

// Result of a capillary calculation. A negative rise is a depression.
type Result struct {
	Rise       float64 `json:"rise"`    // h, m
	RiseMM     float64 `json:"rise_mm"` // h, mm
	Depression bool    `json:"depression"`
}

func (t Tube) gravity() float64 {
	if t.Gravity == 0 {
		return fluid.Gravity
	}
	return t.Gravity
}

// Validate checks the tube inputs
func (t Tube) Validate() error {
	return fluid.FirstError(
		fluid.NonNegative("surface tension", t.SurfaceTension),
		fluid.InRange("contact angle", t.ContactAngle, 0, 180),
		fluid.Positive("density", t.Density),
		fluid.Positive("diameter", t.Diameter),
		fluid.Positive("gravity", t.gravity()),
	)
}

// Analyze evaluates h = 4σcosθ/(ρgd)
func (t Tube) Analyze() (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	h := 4 * t.SurfaceTension * math.Cos(fluid.Radians(t.ContactAngle)) /
		(t.Density * t.gravity() * t.Diameter)
	return &Result{
		Rise:       h,
		RiseMM:     h * 1000,
		Depression: h < 0,
	}, nil
}

// Preset is a named liquid/tube pairing
type Preset struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Tube Tube   `json:"tube"`
}

// Presets lists the classic capillary demonstrations
var Presets = []Preset{
	{
		Key:  "water-glass",
		Name: "Water–Glass",
		Tube: Tube{SurfaceTension: fluid.WaterSurfaceTension, ContactAngle: 0, Density: fluid.WaterDensity, Diameter: 0.001},
	},
	{
		Key:  "mercury-glass",
		Name: "Mercury–Glass",
		Tube: Tube{SurfaceTension: 0.485, ContactAngle: 140, Density: fluid.MercuryDensity, Diameter: 0.001},
	},
	{
		Key:  "glycerin-glass",
		Name: "Glycerin–Glass",
		Tube: Tube{SurfaceTension: 0.0634, ContactAngle: 0, Density: 1260, Diameter: 0.002},
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
