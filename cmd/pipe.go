package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofluid/internal/batch"
	"github.com/alexiusacademia/gofluid/internal/diagram"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	// Pipe run inputs, shared with pump and turbine
	runFile       string
	runLength     float64
	runDiameter   float64
	runRoughness  float64
	runFittings   []string
	runFittingLog bool

	// Flow inputs
	flowRate      float64
	flowVelocity  float64
	flowDensity   float64
	flowViscosity float64
	flowKinematic float64
)

var pipeCmd = &cobra.Command{
	Use:   "pipe",
	Short: "Pipe flow regime, friction factor and head loss",
	Long: `Classify the flow in a circular pipe and evaluate its friction loss.

Subcommands:
  flow      - Reynolds number, regime and Darcy friction factor
  headloss  - Head loss through a pipe run including its fittings
  fittings  - List the equivalent-length table

The friction factor is 64/Re below Re = 2300 and the Churchill
correlation above it.`,
}

var pipeFlowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Reynolds number, regime and friction factor",
	Long: `Compute the Reynolds number of a pipe flow, classify its regime and
evaluate the Darcy friction factor.

  Re = ρ·V·D/μ   (or V·D/ν)

Examples:
  # Water at 1.5 m/s in a 100 mm commercial steel pipe
  gofluid pipe flow --diameter 0.1 --velocity 1.5 --roughness 4.5e-5

  # Oil by flow rate, with the operating point on a Moody chart
  gofluid pipe flow --diameter 0.05 --flow 0.002 --fluid oil-sae30 -o moody.png`,
	RunE: runPipeFlow,
}

var pipeHeadlossCmd = &cobra.Command{
	Use:   "headloss",
	Short: "Head loss through a pipe run with fittings",
	Long: `Evaluate the friction head loss through a pipe run. Fittings are
counted as an equivalent length Le = L + D·Σ(n·count).

  h = f·(4·Le/D)·V²/(2g)

Fittings are given as key:count (see 'gofluid pipe fittings'), or the
whole run can be read from a JSON file with --run.

Examples:
  gofluid pipe headloss --length 200 --diameter 0.15 --roughness 4.5e-5 \
      --flow 0.02 --fitting elbow-90:4 --fitting gate-valve:2 --fitting check-valve

  gofluid pipe headloss --run suction.json --flow 0.02 -d`,
	RunE: runPipeHeadloss,
}

var pipeFittingsCmd = &cobra.Command{
	Use:   "fittings",
	Short: "List the fitting equivalent-length table",
	Run: func(cmd *cobra.Command, args []string) {
		printFittings()
	},
}

// addRunFlags binds the pipe run flags to c
func addRunFlags(c *cobra.Command) {
	c.Flags().StringVar(&runFile, "run", "", "Read the pipe run from a JSON file")
	c.Flags().Float64VarP(&runLength, "length", "l", 0, "Pipe length L (m)")
	c.Flags().Float64Var(&runDiameter, "diameter", 0, "Pipe diameter D (m)")
	c.Flags().Float64Var(&runRoughness, "roughness", 0, "Absolute roughness ε (m)")
	c.Flags().StringArrayVarP(&runFittings, "fitting", "f", nil, "Fitting as key[:count], repeatable")
	c.MarkFlagsMutuallyExclusive("run", "length")
	c.MarkFlagsMutuallyExclusive("run", "fitting")
}

// buildRun reads the run from --run or assembles it from the flags
func buildRun(name string) (pipeflow.PipeRun, error) {
	if runFile != "" {
		run, err := pipeflow.LoadRunFromFile(runFile)
		if err != nil {
			return pipeflow.PipeRun{}, err
		}
		return *run, nil
	}
	fittings, err := batch.ParseFittings(strings.Join(runFittings, ";"))
	if err != nil {
		return pipeflow.PipeRun{}, err
	}
	run := pipeflow.PipeRun{
		Name:      name,
		Length:    runLength,
		Diameter:  runDiameter,
		Roughness: runRoughness,
		Fittings:  fittings,
	}
	return run, run.Validate()
}

func init() {
	rootCmd.AddCommand(pipeCmd)
	pipeCmd.AddCommand(pipeFlowCmd)
	pipeCmd.AddCommand(pipeHeadlossCmd)
	pipeCmd.AddCommand(pipeFittingsCmd)

	for _, c := range []*cobra.Command{pipeFlowCmd, pipeHeadlossCmd} {
		c.Flags().Float64VarP(&flowRate, "flow", "q", 0, "Flow rate Q (m³/s)")
		c.Flags().Float64VarP(&flowVelocity, "velocity", "v", 0, "Mean velocity V (m/s), wins over --flow")
		c.Flags().Float64Var(&flowDensity, "density", 0, "Density ρ (kg/m³) (default from --fluid)")
		c.Flags().Float64Var(&flowViscosity, "viscosity", 0, "Dynamic viscosity μ (Pa·s) (default from --fluid)")
		c.Flags().Float64Var(&flowKinematic, "kinematic-viscosity", 0, "Kinematic viscosity ν (m²/s), used when μ is not given")
		c.MarkFlagsOneRequired("flow", "velocity")
		addFluidFlag(c)
		addOutputFlags(c, true)
	}

	pipeFlowCmd.Flags().Float64Var(&runDiameter, "diameter", 0, "Pipe diameter D (m) [required]")
	pipeFlowCmd.Flags().Float64Var(&runRoughness, "roughness", 0, "Absolute roughness ε (m)")
	pipeFlowCmd.MarkFlagRequired("diameter")

	addRunFlags(pipeHeadlossCmd)
	pipeHeadlossCmd.Flags().BoolVar(&runFittingLog, "breakdown", false, "Print the loss contributed by each fitting")
}

func flowParameters() (pipeflow.FlowParameters, error) {
	p := pipeflow.FlowParameters{
		Density:            flowDensity,
		Viscosity:          flowViscosity,
		KinematicViscosity: flowKinematic,
		Diameter:           runDiameter,
		Velocity:           flowVelocity,
		FlowRate:           flowRate,
	}
	if p.KinematicViscosity > 0 && p.Viscosity == 0 {
		return p, nil
	}
	return p, fillFluid(&p.Density, &p.Viscosity)
}

func runPipeFlow(cmd *cobra.Command, args []string) error {
	p, err := flowParameters()
	if err != nil {
		return err
	}
	result, err := pipeflow.Analyze(p, runRoughness)
	if err != nil {
		return err
	}
	if err := finish(worksheet.PipeFlow(p, runRoughness, result), p, result); err != nil {
		return err
	}

	if outDiagram {
		fmt.Println(diagram.DrawSummaryBox("FLOW REGIME", []string{
			fmt.Sprintf("Re = %s", worksheet.Num(result.Reynolds)),
			fmt.Sprintf("%s flow", result.Regime),
			fmt.Sprintf("f  = %.5f", result.FrictionFactor),
		}))
	}
	point := diagram.MoodyPoint{
		Reynolds:          result.Reynolds,
		FrictionFactor:    result.FrictionFactor,
		RelativeRoughness: result.RelativeRoughness,
	}
	if outDiagram {
		fmt.Println(diagram.DrawFrictionCurve(point))
	}
	if outImage != "" {
		return exported(diagram.ExportMoodyChart(nil, &point, outImage))
	}
	return nil
}

func runPipeHeadloss(cmd *cobra.Command, args []string) error {
	run, err := buildRun("")
	if err != nil {
		return err
	}
	runDiameter = run.Diameter
	p, err := flowParameters()
	if err != nil {
		return err
	}
	result, err := pipeflow.Evaluate(run, p)
	if err != nil {
		return err
	}
	if err := finish(worksheet.PipeSystem(run, p, result), run, result); err != nil {
		return err
	}

	if runFittingLog {
		printFittingBreakdown(run, result)
	}
	bars := lossBars(run, result)
	if outDiagram {
		fmt.Println(diagram.DrawBars("Head loss breakdown", "m", bars))
	}
	if outImage != "" {
		return exported(diagram.ExportBars("Head loss breakdown", "m", bars, outImage))
	}
	return nil
}

// lossBars splits the total loss into the straight pipe and each fitting type
func lossBars(run pipeflow.PipeRun, r *pipeflow.SystemResult) []diagram.Bar {
	bars := []diagram.Bar{{Label: "pipe", Value: r.Loss.PipeLoss}}
	for _, f := range run.Fittings {
		h := pipeflow.HeadLoss(r.Flow.FrictionFactor, run.Diameter*f.Contribution(), run.Diameter, r.Flow.Velocity)
		label := f.Key
		if label == pipeflow.CustomKey {
			label = f.Name
		}
		bars = append(bars, diagram.Bar{Label: label, Value: h})
	}
	return bars
}

func printFittingBreakdown(run pipeflow.PipeRun, r *pipeflow.SystemResult) {
	fmt.Println("FITTINGS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := newTable()
	fmt.Fprintf(w, "  Fitting\tCount\tLe/D\tLe (m)\th (m)\n")
	for _, f := range run.Fittings {
		le := run.Diameter * f.Contribution()
		h := pipeflow.HeadLoss(r.Flow.FrictionFactor, le, run.Diameter, r.Flow.Velocity)
		fmt.Fprintf(w, "  %s\t%d\t%.0f\t%.3f\t%.4f\n", f.Name, f.Quantity, f.Ratio, le, h)
	}
	w.Flush()
	fmt.Println()
}
