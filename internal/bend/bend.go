// Package bend resolves the momentum balance on a reducing pipe bend and reports
// the reaction the pipe supports must carry.
package bend

import (
	"math"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Geometry of the bend and the flow through it. The x axis is aligned with the
// inlet, y is perpendicular to it in the plane of the bend.
type Geometry struct {
	InletDiameter  float64 `json:"inlet_diameter"`  // D1, m
	OutletDiameter float64 `json:"outlet_diameter"` // D2, m
	Angle          float64 `json:"angle"`           // θ, degrees
	FlowRate       float64 `json:"flow_rate"`       // Q, m³/s
	InletPressure  float64 `json:"inlet_pressure"`  // p1 gauge, Pa
	Density        float64 `json:"density"`         // ρ, kg/m³
}

// Result of the momentum balance
type Result struct {
	InletArea      float64 `json:"inlet_area"`      // A1, m²
	OutletArea     float64 `json:"outlet_area"`     // A2, m²
	InletVelocity  float64 `json:"inlet_velocity"`  // U1, m/s
	OutletVelocity float64 `json:"outlet_velocity"` // U2, m/s
	OutletPressure float64 `json:"outlet_pressure"` // p2 gauge, Pa
	MassFlow       float64 `json:"mass_flow"`       // ṁ, kg/s

	// Force exerted on the fluid, N
	Fx float64 `json:"fx"`
	Fy float64 `json:"fy"`

	// Reaction on the pipe, N
	Rx        float64 `json:"rx"`
	Ry        float64 `json:"ry"`
	Magnitude float64 `json:"magnitude"` // |R|, N
	Direction float64 `json:"direction"` // φ = atan2(Ry, Rx), degrees
}

// Validate checks the geometry; θ must lie in [0°, 180°]
func (g Geometry) Validate() error {
	return fluid.FirstError(
		fluid.Positive("inlet diameter", g.InletDiameter),
		fluid.Positive("outlet diameter", g.OutletDiameter),
		fluid.InRange("angle", g.Angle, 0, 180),
		fluid.NonNegative("flow rate", g.FlowRate),
		fluid.Finite("inlet pressure", g.InletPressure),
		fluid.Positive("density", g.Density),
	)
}

// Analyze applies continuity, Bernoulli (no elevation or loss terms) and the
// momentum equation resolved along x and y.
func (g Geometry) Analyze() (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	theta := fluid.Radians(g.Angle)
	sin, cos := math.Sin(theta), math.Cos(theta)

	r := &Result{
		InletArea:  fluid.CircleArea(g.InletDiameter),
		OutletArea: fluid.CircleArea(g.OutletDiameter),
		MassFlow:   g.Density * g.FlowRate,
	}
	r.InletVelocity = g.FlowRate / r.InletArea
	r.OutletVelocity = g.FlowRate / r.OutletArea
	u1, u2 := r.InletVelocity, r.OutletVelocity

	r.OutletPressure = g.InletPressure + 0.5*g.Density*(u1*u1-u2*u2)

	r.Fx = r.MassFlow*(u2*cos-u1) + g.InletPressure*r.InletArea - r.OutletPressure*r.OutletArea*cos
	r.Fy = r.MassFlow*u2*sin - r.OutletPressure*r.OutletArea*sin

	r.Rx, r.Ry = -r.Fx, -r.Fy
	r.Magnitude = math.Hypot(r.Rx, r.Ry)
	r.Direction = fluid.Degrees(math.Atan2(r.Ry, r.Rx))
	return r, nil
}
