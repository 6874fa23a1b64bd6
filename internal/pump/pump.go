// Package pump computes the head a pump must deliver to push a flow through a
// pipe system, and the power it draws doing so.
package pump

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

// System is a pump lifting fluid from a suction reservoir to a delivery point
type System struct {
	Density            float64          `json:"density"`                       // ρ, kg/m³
	Viscosity          float64          `json:"viscosity"`                     // μ, Pa·s
	FlowRate           float64          `json:"flow_rate"`                     // Q, m³/s
	Run                pipeflow.PipeRun `json:"run"`                           // suction + delivery pipework
	StaticLift         float64          `json:"static_lift"`                   // Δz, m
	PressureDifference float64          `json:"pressure_difference,omitempty"` // p_delivery − p_suction, Pa
	Efficiency         float64          `json:"efficiency"`                    // η, (0, 1]
}

// Result of a pump sizing calculation
type Result struct {
	Pipe           pipeflow.SystemResult `json:"pipe"`
	StaticHead     float64               `json:"static_head"`     // Δz, m
	PressureHead   float64               `json:"pressure_head"`   // Δp/(ρg), m
	FrictionHead   float64               `json:"friction_head"`   // h_loss, m
	TotalHead      float64               `json:"total_head"`      // H, m
	HydraulicPower float64               `json:"hydraulic_power"` // ρgQH, W
	ShaftPower     float64               `json:"shaft_power"`     // ρgQH/η, W
}

// Validate checks the scalar inputs; the run is checked by pipeflow
func (s System) Validate() error {
	return fluid.FirstError(
		fluid.Positive("density", s.Density),
		fluid.Positive("viscosity", s.Viscosity),
		fluid.Positive("flow rate", s.FlowRate),
		fluid.Finite("static lift", s.StaticLift),
		fluid.Finite("pressure difference", s.PressureDifference),
		fluid.Efficiency("efficiency", s.Efficiency),
	)
}

// Analyze computes H = Δz + Δp/(ρg) + h_loss and the corresponding powers
func (s System) Analyze() (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pipe, err := pipeflow.Evaluate(s.Run, pipeflow.FlowParameters{
		Density:   s.Density,
		Viscosity: s.Viscosity,
		FlowRate:  s.FlowRate,
	})
	if err != nil {
		return nil, fmt.Errorf("pipe run: %w", err)
	}

	r := &Result{
		Pipe:         *pipe,
		StaticHead:   s.StaticLift,
		PressureHead: s.PressureDifference / (s.Density * fluid.Gravity),
		FrictionHead: pipe.Loss.TotalLoss,
	}
	r.TotalHead = r.StaticHead + r.PressureHead + r.FrictionHead
	if r.TotalHead <= 0 {
		return nil, fmt.Errorf("%w: total head %.3f m is not positive, the system flows without a pump", fluid.ErrInvalidInput, r.TotalHead)
	}

	r.HydraulicPower = s.Density * fluid.Gravity * s.FlowRate * r.TotalHead
	r.ShaftPower = r.HydraulicPower / s.Efficiency
	return r, nil
}
