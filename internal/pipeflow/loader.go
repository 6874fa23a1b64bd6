package pipeflow

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexiusacademia/gofluid/internal/fluid"
)

// A pipe run on disk or over the wire looks like
//
//	{
//	  "name": "Suction line",
//	  "length": 100, "diameter": 0.1, "roughness": 4.5e-5,
//	  "fittings": [
//	    {"key": "elbow-90", "quantity": 2},
//	    {"name": "Y-strainer", "ratio": 75, "quantity": 1}
//	  ]
//	}
//
// Entries with a key take their name and ratio from the fitting table; entries
// without one must carry their own.

// CustomKey marks a fitting that is not in the table
const CustomKey = "custom"

// Resolve completes a decoded fitting entry from the fitting table
func (c FittingCount) Resolve() (FittingCount, error) {
	if c.Key != "" && c.Key != CustomKey {
		return NewFittingCount(c.Key, c.Quantity)
	}
	if c.Name == "" || !(c.Ratio > 0) {
		return FittingCount{}, &fluid.InputError{Field: "custom fitting ratio", Value: c.Ratio, Rule: "custom fittings need a name and a ratio > 0"}
	}
	if c.Quantity < 0 {
		return FittingCount{}, &fluid.InputError{Field: c.Name + " quantity", Value: float64(c.Quantity), Rule: "must be >= 0"}
	}
	c.Key = CustomKey
	return c, nil
}

// Resolve returns a copy of the run with every fitting resolved and validated
func (r PipeRun) Resolve() (PipeRun, error) {
	out := r
	out.Fittings = make([]FittingCount, 0, len(r.Fittings))
	for i, fc := range r.Fittings {
		resolved, err := fc.Resolve()
		if err != nil {
			return PipeRun{}, fmt.Errorf("fitting %d: %w", i+1, err)
		}
		out.Fittings = append(out.Fittings, resolved)
	}
	if err := out.Validate(); err != nil {
		return PipeRun{}, err
	}
	return out, nil
}

// LoadRunFromFile loads a pipe run definition from a JSON file
func LoadRunFromFile(path string) (*PipeRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRun(f)
}

// ReadRun decodes and validates a pipe run definition
func ReadRun(r io.Reader) (*PipeRun, error) {
	var raw PipeRun
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode pipe run: %w", err)
	}
	run, err := raw.Resolve()
	if err != nil {
		return nil, err
	}
	return &run, nil
}
