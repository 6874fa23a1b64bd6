// Package turbine estimates the output of a hydro turbine fed through a penstock.
package turbine

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

// HoursPerYear is used when no operating period is given
const HoursPerYear = 8760.0

// System is a reservoir feeding a turbine through a penstock
type System struct {
	Density    float64          `json:"density"`         // ρ, kg/m³
	Viscosity  float64          `json:"viscosity"`       // μ, Pa·s
	FlowRate   float64          `json:"flow_rate"`       // Q, m³/s
	GrossHead  float64          `json:"gross_head"`      // H_g, m
	Penstock   pipeflow.PipeRun `json:"penstock"`        // penstock pipework
	Efficiency float64          `json:"efficiency"`      // η, (0, 1]
	Hours      float64          `json:"hours,omitempty"` // operating hours (0 = one year)
}

// Result of a turbine calculation
type Result struct {
	Pipe           pipeflow.SystemResult `json:"pipe"`
	HeadLoss       float64               `json:"head_loss"`       // m
	NetHead        float64               `json:"net_head"`        // H_n = H_g − h_loss, m
	HeadEfficiency float64               `json:"head_efficiency"` // H_n/H_g
	HydraulicPower float64               `json:"hydraulic_power"` // ρgQH_n, W
	Power          float64               `json:"power"`           // ηρgQH_n, W
	Hours          float64               `json:"hours"`           // h
	Energy         float64               `json:"energy"`          // MWh
}

func (s System) hours() float64 {
	if s.Hours == 0 {
		return HoursPerYear
	}
	return s.Hours
}

// Validate checks the scalar inputs; the penstock is checked by pipeflow
func (s System) Validate() error {
	return fluid.FirstError(
		fluid.Positive("density", s.Density),
		fluid.Positive("viscosity", s.Viscosity),
		fluid.Positive("flow rate", s.FlowRate),
		fluid.Positive("gross head", s.GrossHead),
		fluid.Efficiency("efficiency", s.Efficiency),
		fluid.Positive("hours", s.hours()),
	)
}

// Analyze deducts the penstock loss from the gross head and converts the rest
// into electrical output.
func (s System) Analyze() (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	pipe, err := pipeflow.Evaluate(s.Penstock, pipeflow.FlowParameters{
		Density:   s.Density,
		Viscosity: s.Viscosity,
		FlowRate:  s.FlowRate,
	})
	if err != nil {
		return nil, fmt.Errorf("penstock: %w", err)
	}

	r := &Result{
		Pipe:     *pipe,
		HeadLoss: pipe.Loss.TotalLoss,
		Hours:    s.hours(),
	}
	r.NetHead = s.GrossHead - r.HeadLoss
	if r.NetHead <= 0 {
		return nil, fmt.Errorf("%w: penstock loss %.3f m consumes the gross head %.3f m", fluid.ErrInvalidInput, r.HeadLoss, s.GrossHead)
	}
	r.HeadEfficiency = r.NetHead / s.GrossHead
	r.HydraulicPower = s.Density * fluid.Gravity * s.FlowRate * r.NetHead
	r.Power = s.Efficiency * r.HydraulicPower
	r.Energy = r.Power / 1e6 * r.Hours
	return r, nil
}
