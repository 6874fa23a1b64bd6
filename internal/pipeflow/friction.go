// Package pipeflow classifies pipe flow, evaluates the Darcy friction factor and
// aggregates friction losses over a pipe run with fittings.
package pipeflow

import (
	"math"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Regime is the flow regime label derived from the Reynolds number
type Regime string

const (
	Laminar      Regime = "laminar"
	Transitional Regime = "transitional"
	Turbulent    Regime = "turbulent"
)

// Regime thresholds. Re below LaminarLimit is laminar, Re above TurbulentLimit is
// turbulent, both limits themselves are transitional.
const (
	LaminarLimit   = 2300.0
	TurbulentLimit = 4000.0
)

// Reynolds computes Re = ρVD/μ
func Reynolds(rho, v, d, mu float64) (float64, error) {
	if err := fluid.FirstError(
		fluid.Positive("density", rho),
		fluid.Positive("velocity", v),
		fluid.Positive("diameter", d),
		fluid.Positive("viscosity", mu),
	); err != nil {
		return 0, err
	}
	return rho * v * d / mu, nil
}

// ReynoldsKinematic computes Re = VD/ν
func ReynoldsKinematic(v, d, nu float64) (float64, error) {
	if err := fluid.FirstError(
		fluid.Positive("velocity", v),
		fluid.Positive("diameter", d),
		fluid.Positive("kinematic viscosity", nu),
	); err != nil {
		return 0, err
	}
	return v * d / nu, nil
}

// Classify maps a Reynolds number onto its flow regime
func Classify(re float64) Regime {
	switch {
	case re < LaminarLimit:
		return Laminar
	case re <= TurbulentLimit:
		return Transitional
	default:
		return Turbulent
	}
}

// FrictionFactor returns the Darcy friction factor: 64/Re for laminar flow and the
// Churchill correlation otherwise.
func FrictionFactor(re, relRoughness float64) (float64, error) {
	if err := fluid.FirstError(
		fluid.Positive("reynolds number", re),
		fluid.NonNegative("relative roughness", relRoughness),
	); err != nil {
		return 0, err
	}
	if Classify(re) == Laminar {
		return 64 / re, nil
	}
	return Churchill(re, relRoughness), nil
}

// Churchill evaluates the Churchill (1977) friction factor correlation.
// It is explicit in f, so no Colebrook iteration is needed. Re must be positive.
func Churchill(re, relRoughness float64) float64 {
	a, b := ChurchillTerms(re, relRoughness)
	return 8 * math.Pow(math.Pow(8/re, 12)+1/math.Pow(a+b, 1.5), 1.0/12)
}

// ChurchillTerms returns the intermediate A and B of the Churchill correlation
func ChurchillTerms(re, relRoughness float64) (a, b float64) {
	a = math.Pow(2.457*math.Log(1/(math.Pow(7/re, 0.9)+0.27*relRoughness)), 16)
	b = math.Pow(37530/re, 16)
	return a, b
}

// FlowParameters describes the fluid and the mean flow through a circular pipe.
// Either Velocity or FlowRate must be set; Velocity wins when both are.
// Viscosity (dynamic) wins over KinematicViscosity.
type FlowParameters struct {
	Density            float64 `json:"density"`                       // ρ, kg/m³
	Viscosity          float64 `json:"viscosity,omitempty"`           // μ, Pa·s
	KinematicViscosity float64 `json:"kinematic_viscosity,omitempty"` // ν, m²/s
	Diameter           float64 `json:"diameter"`                      // D, m
	Velocity           float64 `json:"velocity,omitempty"`            // V, m/s
	FlowRate           float64 `json:"flow_rate,omitempty"`           // Q, m³/s
}

// Area returns the pipe cross-section area
func (p FlowParameters) Area() float64 {
	return fluid.CircleArea(p.Diameter)
}

// MeanVelocity returns V, deriving it from Q = V·A when only Q is given
func (p FlowParameters) MeanVelocity() (float64, error) {
	if p.Velocity != 0 {
		if err := fluid.Positive("velocity", p.Velocity); err != nil {
			return 0, err
		}
		return p.Velocity, nil
	}
	if err := fluid.FirstError(
		fluid.Positive("flow rate", p.FlowRate),
		fluid.Positive("diameter", p.Diameter),
	); err != nil {
		return 0, err
	}
	return p.FlowRate / p.Area(), nil
}

// Reynolds computes the Reynolds number with whichever viscosity is set.
// The kinematic form needs no density.
func (p FlowParameters) Reynolds() (float64, error) {
	v, err := p.MeanVelocity()
	if err != nil {
		return 0, err
	}
	if p.Viscosity == 0 && p.KinematicViscosity != 0 {
		return ReynoldsKinematic(v, p.Diameter, p.KinematicViscosity)
	}
	return Reynolds(p.Density, v, p.Diameter, p.Viscosity)
}

// FlowResult holds the classification of a pipe flow
type FlowResult struct {
	Area              float64 `json:"area"`               // m²
	Velocity          float64 `json:"velocity"`           // m/s
	FlowRate          float64 `json:"flow_rate"`          // m³/s
	Reynolds          float64 `json:"reynolds"`           // -
	Regime            Regime  `json:"regime"`             // laminar | transitional | turbulent
	RelativeRoughness float64 `json:"relative_roughness"` // ε/D
	FrictionFactor    float64 `json:"friction_factor"`    // Darcy f
}

// Analyze classifies the flow and evaluates the friction factor for a pipe of
// absolute roughness eps (m).
func Analyze(p FlowParameters, eps float64) (*FlowResult, error) {
	if err := fluid.NonNegative("roughness", eps); err != nil {
		return nil, err
	}
	re, err := p.Reynolds()
	if err != nil {
		return nil, err
	}
	v, _ := p.MeanVelocity()

	result := &FlowResult{
		Area:              p.Area(),
		Velocity:          v,
		Reynolds:          re,
		Regime:            Classify(re),
		RelativeRoughness: eps / p.Diameter,
	}
	result.FlowRate = v * result.Area

	result.FrictionFactor, err = FrictionFactor(re, result.RelativeRoughness)
	if err != nil {
		return nil, err
	}
	return result, nil
}
