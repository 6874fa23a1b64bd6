package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/alexiusacademia/gofluid/internal/bend"
	"github.com/alexiusacademia/gofluid/internal/capillary"
	"github.com/alexiusacademia/gofluid/internal/config"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/hydrostatic"
	"github.com/alexiusacademia/gofluid/internal/manometer"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
	"github.com/alexiusacademia/gofluid/internal/pitot"
	"github.com/alexiusacademia/gofluid/internal/pump"
	"github.com/alexiusacademia/gofluid/internal/turbine"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

// Outcome is a finished calculation: the normalized input, the typed result
// and the worked solution.
type Outcome struct {
	Input  any
	Result any
	Sheet  *worksheet.Sheet
}

// Calculator decodes a JSON body and runs one analysis
type Calculator struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	run   func(body []byte, phys config.Physics) (*Outcome, error)
}

// Run decodes body and evaluates it with the physics defaults applied
func (c Calculator) Run(body []byte, phys config.Physics) (*Outcome, error) {
	return c.run(body, phys)
}

// PipeFlowInput is the body of a pipe-flow request
type PipeFlowInput struct {
	Fluid     string                  `json:"fluid,omitempty"`
	Flow      pipeflow.FlowParameters `json:"flow"`
	Roughness float64                 `json:"roughness"`
}

// PipeSystemInput is the body of a pipe-headloss request
type PipeSystemInput struct {
	Fluid string                  `json:"fluid,omitempty"`
	Run   pipeflow.PipeRun        `json:"run"`
	Flow  pipeflow.FlowParameters `json:"flow"`
}

// PumpInput is the body of a pump request
type PumpInput struct {
	Fluid string `json:"fluid,omitempty"`
	pump.System
}

// TurbineInput is the body of a turbine request
type TurbineInput struct {
	Fluid string `json:"fluid,omitempty"`
	turbine.System
}

var calculators = map[string]Calculator{}

func register(name, title string, run func([]byte, config.Physics) (*Outcome, error)) {
	calculators[name] = Calculator{Name: name, Title: title, run: run}
}

// Lookup finds a calculator by name
func Lookup(name string) (Calculator, bool) {
	c, ok := calculators[name]
	return c, ok
}

// Calculators lists the registered calculators by name
func Calculators() []Calculator {
	list := make([]Calculator, 0, len(calculators))
	for _, c := range calculators {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

func decode[T any](body []byte) (T, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: decode request: %v", fluid.ErrInvalidInput, err)
	}
	return v, nil
}

func gravity(g float64, phys config.Physics) float64 {
	if g == 0 {
		return phys.Gravity
	}
	return g
}

// fluidProps fills unset density and viscosity from a preset. The request's
// own fluid wins over the configured default.
func fluidProps(key string, phys config.Physics, density, viscosity *float64) error {
	if *density != 0 && *viscosity != 0 {
		return nil
	}
	if key == "" {
		key = phys.DefaultFluid
	}
	if key == "" {
		return nil
	}
	f, ok := fluid.LookupFluid(key)
	if !ok {
		return fmt.Errorf("%w: unknown fluid %q", fluid.ErrInvalidInput, key)
	}
	if *density == 0 {
		*density = f.Density
	}
	if *viscosity == 0 {
		*viscosity = f.Viscosity
	}
	return nil
}

func init() {
	register("hydrostatic-vertical", "Hydrostatic force on a vertical wall", func(body []byte, phys config.Physics) (*Outcome, error) {
		w, err := decode[hydrostatic.VerticalWall](body)
		if err != nil {
			return nil, err
		}
		w.Gravity = gravity(w.Gravity, phys)
		r, err := w.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: w, Result: r, Sheet: worksheet.VerticalWall(w, r)}, nil
	})

	register("hydrostatic-inclined", "Hydrostatic force on an inclined wall", func(body []byte, phys config.Physics) (*Outcome, error) {
		w, err := decode[hydrostatic.InclinedWall](body)
		if err != nil {
			return nil, err
		}
		w.Gravity = gravity(w.Gravity, phys)
		r, err := w.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: w, Result: r, Sheet: worksheet.InclinedWall(w, r)}, nil
	})

	register("capillary", "Capillary rise", func(body []byte, phys config.Physics) (*Outcome, error) {
		t, err := decode[capillary.Tube](body)
		if err != nil {
			return nil, err
		}
		t.Gravity = gravity(t.Gravity, phys)
		r, err := t.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: t, Result: r, Sheet: worksheet.Capillary(t, r)}, nil
	})

	register("manometer", "U-tube manometer", func(body []byte, phys config.Physics) (*Outcome, error) {
		m, err := decode[manometer.Reading](body)
		if err != nil {
			return nil, err
		}
		m.Gravity = gravity(m.Gravity, phys)
		r, err := m.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: m, Result: r, Sheet: worksheet.Manometer(m, r)}, nil
	})

	register("pitot", "Pitot tube velocity", func(body []byte, phys config.Physics) (*Outcome, error) {
		p, err := decode[pitot.Reading](body)
		if err != nil {
			return nil, err
		}
		p.Gravity = gravity(p.Gravity, phys)
		r, err := p.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: p, Result: r, Sheet: worksheet.Pitot(p, r)}, nil
	})

	register("bend", "Reaction on a reducing bend", func(body []byte, phys config.Physics) (*Outcome, error) {
		g, err := decode[bend.Geometry](body)
		if err != nil {
			return nil, err
		}
		r, err := g.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: g, Result: r, Sheet: worksheet.Bend(g, r)}, nil
	})

	register("pipe-flow", "Pipe flow regime and friction factor", func(body []byte, phys config.Physics) (*Outcome, error) {
		in, err := decode[PipeFlowInput](body)
		if err != nil {
			return nil, err
		}
		if in.Flow.KinematicViscosity == 0 {
			if err := fluidProps(in.Fluid, phys, &in.Flow.Density, &in.Flow.Viscosity); err != nil {
				return nil, err
			}
		}
		r, err := pipeflow.Analyze(in.Flow, in.Roughness)
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: in, Result: r, Sheet: worksheet.PipeFlow(in.Flow, in.Roughness, r)}, nil
	})

	register("pipe-headloss", "Head loss through a pipe run", func(body []byte, phys config.Physics) (*Outcome, error) {
		in, err := decode[PipeSystemInput](body)
		if err != nil {
			return nil, err
		}
		if in.Run, err = in.Run.Resolve(); err != nil {
			return nil, err
		}
		if in.Flow.KinematicViscosity == 0 {
			if err := fluidProps(in.Fluid, phys, &in.Flow.Density, &in.Flow.Viscosity); err != nil {
				return nil, err
			}
		}
		r, err := pipeflow.Evaluate(in.Run, in.Flow)
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: in, Result: r, Sheet: worksheet.PipeSystem(in.Run, in.Flow, r)}, nil
	})

	register("pump", "Pump head and power", func(body []byte, phys config.Physics) (*Outcome, error) {
		in, err := decode[PumpInput](body)
		if err != nil {
			return nil, err
		}
		if in.Run, err = in.Run.Resolve(); err != nil {
			return nil, err
		}
		if err := fluidProps(in.Fluid, phys, &in.Density, &in.Viscosity); err != nil {
			return nil, err
		}
		r, err := in.System.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: in, Result: r, Sheet: worksheet.Pump(in.System, r)}, nil
	})

	register("turbine", "Hydro turbine output", func(body []byte, phys config.Physics) (*Outcome, error) {
		in, err := decode[TurbineInput](body)
		if err != nil {
			return nil, err
		}
		if in.Penstock, err = in.Penstock.Resolve(); err != nil {
			return nil, fmt.Errorf("penstock: %w", err)
		}
		if err := fluidProps(in.Fluid, phys, &in.Density, &in.Viscosity); err != nil {
			return nil, err
		}
		r, err := in.System.Analyze()
		if err != nil {
			return nil, err
		}
		return &Outcome{Input: in, Result: r, Sheet: worksheet.Turbine(in.System, r)}, nil
	})
}
