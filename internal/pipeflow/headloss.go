package pipeflow

import (
	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// PipeRun is a straight pipe with fittings
type PipeRun struct {
	Name      string         `json:"name,omitempty"`
	Length    float64        `json:"length"`    // L, m
	Diameter  float64        `json:"diameter"`  // D, m
	Roughness float64        `json:"roughness"` // ε, m
	Fittings  []FittingCount `json:"fittings,omitempty"`
}

// Validate checks the run geometry
func (r PipeRun) Validate() error {
	if err := fluid.FirstError(
		fluid.NonNegative("length", r.Length),
		fluid.Positive("diameter", r.Diameter),
		fluid.NonNegative("roughness", r.Roughness),
	); err != nil {
		return err
	}
	for _, f := range r.Fittings {
		if f.Quantity < 0 {
			return &fluid.InputError{Field: f.Key + " quantity", Value: float64(f.Quantity), Rule: "must be >= 0"}
		}
		if err := fluid.NonNegative(f.Key+" ratio", f.Ratio); err != nil {
			return err
		}
	}
	return nil
}

// FittingsLength returns D·Σ(nᵢ·quantityᵢ)
func (r PipeRun) FittingsLength() float64 {
	var sum float64
	for _, f := range r.Fittings {
		sum += f.Contribution()
	}
	return r.Diameter * sum
}

// EquivalentLength returns Le = L + D·Σ(nᵢ·quantityᵢ)
func (r PipeRun) EquivalentLength() float64 {
	return r.Length + r.FittingsLength()
}

// HeadLoss evaluates h = f·(4·L/D)·V²/(2g) with g = 9.81 m/s²
func HeadLoss(f, length, d, v float64) float64 {
	return f * (4 * length / d) * (v * v / (2 * fluid.Gravity))
}

// HeadLossResult splits the friction loss of a run into its pipe and fitting shares
type HeadLossResult struct {
	EquivalentLength float64 `json:"equivalent_length"` // Le, m
	FittingsLength   float64 `json:"fittings_length"`   // Le - L, m
	PipeLoss         float64 `json:"pipe_loss"`         // m
	FittingsLoss     float64 `json:"fittings_loss"`     // m
	TotalLoss        float64 `json:"total_loss"`        // m
}

// HeadLoss computes the friction loss through the run for friction factor f and
// mean velocity v.
func (r PipeRun) HeadLoss(f, v float64) (*HeadLossResult, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := fluid.FirstError(
		fluid.Positive("friction factor", f),
		fluid.NonNegative("velocity", v),
	); err != nil {
		return nil, err
	}

	result := &HeadLossResult{
		EquivalentLength: r.EquivalentLength(),
		FittingsLength:   r.FittingsLength(),
	}
	result.PipeLoss = HeadLoss(f, r.Length, r.Diameter, v)
	result.TotalLoss = HeadLoss(f, result.EquivalentLength, r.Diameter, v)
	result.FittingsLoss = result.TotalLoss - result.PipeLoss
	return result, nil
}

// SystemResult is the complete evaluation of fluid flowing through a run
type SystemResult struct {
	Run          PipeRun        `json:"run"`
	Flow         FlowResult     `json:"flow"`
	Loss         HeadLossResult `json:"loss"`
	PressureDrop float64        `json:"pressure_drop"` // ρ·g·h, Pa
}

// Evaluate classifies the flow through the run and aggregates its losses.
// The run diameter overrides flow.Diameter.
func Evaluate(run PipeRun, flow FlowParameters) (*SystemResult, error) {
	if err := run.Validate(); err != nil {
		return nil, err
	}
	// Δp = ρ·g·h
	if err := fluid.Positive("density", flow.Density); err != nil {
		return nil, err
	}
	flow.Diameter = run.Diameter

	fr, err := Analyze(flow, run.Roughness)
	if err != nil {
		return nil, err
	}
	loss, err := run.HeadLoss(fr.FrictionFactor, fr.Velocity)
	if err != nil {
		return nil, err
	}

	return &SystemResult{
		Run:          run,
		Flow:         *fr,
		Loss:         *loss,
		PressureDrop: flow.Density * fluid.Gravity * loss.TotalLoss,
	}, nil
}
