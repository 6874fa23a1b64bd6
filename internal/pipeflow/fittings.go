package pipeflow

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// Fitting is a pipe fitting type with its equivalent-length ratio n = Le/D
type Fitting struct {
	Key   string  `json:"key"`
	Name  string  `json:"name"`
	Ratio float64 `json:"ratio"`
}

// Fittings is the canonical equivalent-length table (Crane TP-410 values, fully open valves)
var Fittings = []Fitting{
	{Key: "gate-valve", Name: "Gate valve (open)", Ratio: 8},
	{Key: "globe-valve", Name: "Globe valve (open)", Ratio: 340},
	{Key: "angle-valve", Name: "Angle valve (open)", Ratio: 150},
	{Key: "ball-valve", Name: "Ball valve (open)", Ratio: 3},
	{Key: "butterfly-valve", Name: "Butterfly valve (open)", Ratio: 45},
	{Key: "check-valve", Name: "Swing check valve", Ratio: 100},
	{Key: "elbow-90", Name: "90° standard elbow", Ratio: 30},
	{Key: "elbow-90-long", Name: "90° long-radius elbow", Ratio: 20},
	{Key: "elbow-45", Name: "45° standard elbow", Ratio: 16},
	{Key: "return-bend", Name: "180° close return bend", Ratio: 50},
	{Key: "tee-run", Name: "Standard tee, flow through run", Ratio: 20},
	{Key: "tee-branch", Name: "Standard tee, flow through branch", Ratio: 60},
}

// LookupFitting finds a fitting by key, case-insensitively
func LookupFitting(key string) (Fitting, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range Fittings {
		if f.Key == key {
			return f, true
		}
	}
	return Fitting{}, false
}

// FittingCount is a number of identical fittings installed in a run
type FittingCount struct {
	Fitting
	Quantity int `json:"quantity"`
}

// NewFittingCount resolves a table key into a counted fitting
func NewFittingCount(key string, quantity int) (FittingCount, error) {
	f, ok := LookupFitting(key)
	if !ok {
		return FittingCount{}, fmt.Errorf("%w: unknown fitting %q", fluid.ErrInvalidInput, key)
	}
	if quantity < 0 {
		return FittingCount{}, &fluid.InputError{Field: key + " quantity", Value: float64(quantity), Rule: "must be >= 0"}
	}
	return FittingCount{Fitting: f, Quantity: quantity}, nil
}

// Contribution returns n·quantity, the dimensionless length this entry adds
func (c FittingCount) Contribution() float64 {
	return c.Ratio * float64(c.Quantity)
}
