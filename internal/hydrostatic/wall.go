// Package hydrostatic computes the resultant water force on planar walls and
// where it acts.
package hydrostatic

import (
	"math"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// VerticalWall is a vertical rectangular wall retaining fluid up to Depth
type VerticalWall struct {
	Depth   float64 `json:"depth"`             // D, m
	Width   float64 `json:"width"`             // w, m
	Density float64 `json:"density"`           // ρ, kg/m³
	Gravity float64 `json:"gravity,omitempty"` // g, m/s² (0 = standard)
}

// VerticalResult holds the resultant of the triangular pressure prism
type VerticalResult struct {
	Force            float64 `json:"force"`              // F, N
	CenterOfPressure float64 `json:"center_of_pressure"` // ȳ, m below the free surface
	BaseMoment       float64 `json:"base_moment"`        // M about the base, N·m
	MaxPressure      float64 `json:"max_pressure"`       // ρgD at the base, Pa
	MeanPressure     float64 `json:"mean_pressure"`      // ½ρgD, Pa
}

func gravityOrDefault(g float64) float64 {
	if g == 0 {
		return fluid.Gravity
	}
	return g
}

// Validate checks the wall inputs
func (w VerticalWall) Validate() error {
	return fluid.FirstError(
		fluid.NonNegative("depth", w.Depth),
		fluid.Positive("width", w.Width),
		fluid.Positive("density", w.Density),
		fluid.Positive("gravity", gravityOrDefault(w.Gravity)),
	)
}

// Analyze computes F = ½ρgwD², ȳ = (2/3)D and M = F·(D−ȳ)
func (w VerticalWall) Analyze() (*VerticalResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	g := gravityOrDefault(w.Gravity)

	result := &VerticalResult{
		Force:            0.5 * w.Density * g * w.Width * w.Depth * w.Depth,
		CenterOfPressure: 2.0 / 3.0 * w.Depth,
		MaxPressure:      w.Density * g * w.Depth,
	}
	result.BaseMoment = result.Force * (w.Depth - result.CenterOfPressure)
	result.MeanPressure = result.MaxPressure / 2
	return result, nil
}

// PressureAt returns the gauge pressure at depth y below the surface
func (w VerticalWall) PressureAt(y float64) float64 {
	y = math.Max(0, math.Min(y, w.Depth))
	return w.Density * gravityOrDefault(w.Gravity) * y
}

// InclinedWall is a rectangular wall of slant length Length inclined at Angle
// degrees from the horizontal, wetted from the waterline down to its toe.
type InclinedWall struct {
	Length  float64 `json:"length"`            // L along the slope, m
	Angle   float64 `json:"angle"`             // θ from horizontal, degrees
	Width   float64 `json:"width"`             // w, m
	Density float64 `json:"density"`           // ρ, kg/m³
	Gravity float64 `json:"gravity,omitempty"` // g, m/s² (0 = standard)
}

// InclinedResult holds the resultant on an inclined wall. Slant distances are
// measured along the wall from the waterline.
type InclinedResult struct {
	VerticalDepth    float64 `json:"vertical_depth"`     // h = L·sinθ, m
	NormalForce      float64 `json:"normal_force"`       // Fn, N
	HorizontalForce  float64 `json:"horizontal_force"`   // Fh = Fn·sinθ, N
	VerticalForce    float64 `json:"vertical_force"`     // Fv = Fn·cosθ, N
	CenterOfPressure float64 `json:"center_of_pressure"` // s_cp along the slope, m
	CenterDepth      float64 `json:"center_depth"`       // vertical depth of s_cp, m
	MaxPressure      float64 `json:"max_pressure"`       // at the toe, Pa
}

// Validate checks the wall inputs; the angle must lie in [0°, 90°]
func (w InclinedWall) Validate() error {
	return fluid.FirstError(
		fluid.NonNegative("length", w.Length),
		fluid.InRange("angle", w.Angle, 0, 90),
		fluid.Positive("width", w.Width),
		fluid.Positive("density", w.Density),
		fluid.Positive("gravity", gravityOrDefault(w.Gravity)),
	)
}

// Analyze integrates the pressure, which grows with vertical depth s·sinθ, over the
// slope: Fn = ½ρgwL²·sinθ acting (2/3)L down the slope from the waterline.
func (w InclinedWall) Analyze() (*InclinedResult, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	g := gravityOrDefault(w.Gravity)
	theta := fluid.Radians(w.Angle)
	sin, cos := math.Sin(theta), math.Cos(theta)

	result := &InclinedResult{
		VerticalDepth:    w.Length * sin,
		NormalForce:      0.5 * w.Density * g * w.Width * w.Length * w.Length * sin,
		CenterOfPressure: 2.0 / 3.0 * w.Length,
	}
	result.HorizontalForce = result.NormalForce * sin
	result.VerticalForce = result.NormalForce * cos
	result.CenterDepth = result.CenterOfPressure * sin
	result.MaxPressure = w.Density * g * result.VerticalDepth
	return result, nil
}

// PressureAt returns the gauge pressure at slant distance s from the waterline
func (w InclinedWall) PressureAt(s float64) float64 {
	s = math.Max(0, math.Min(s, w.Length))
	return w.Density * gravityOrDefault(w.Gravity) * s * math.Sin(fluid.Radians(w.Angle))
}
