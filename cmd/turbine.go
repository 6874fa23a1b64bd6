package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/diagram"
	"github.com/alexiusacademia/gofluid/internal/turbine"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	turbineFlow       float64
	turbineHead       float64
	turbineEfficiency float64
	turbineHours      float64
)

var turbineCmd = &cobra.Command{
	Use:   "turbine",
	Short: "Hydro turbine output through a penstock",
	Long: `Estimate the power and energy of a hydro turbine fed by a penstock.

  H_n = H_g − h_loss
  P   = η·ρ·g·Q·H_n
  E   = P·t   (t = 8760 h unless --hours is given)

The penstock is given with the pipe run flags or --run.

Examples:
  gofluid turbine --flow 2 --head 80 --efficiency 0.9 \
      --length 500 --diameter 1 --fitting elbow-90:2

  gofluid turbine --flow 2 --head 80 --run penstock.json --hours 24 -d`,
	RunE: runTurbine,
}

func init() {
	rootCmd.AddCommand(turbineCmd)

	turbineCmd.Flags().Float64VarP(&turbineFlow, "flow", "q", 0, "Flow rate Q (m³/s) [required]")
	turbineCmd.Flags().Float64Var(&turbineHead, "head", 0, "Gross head H_g (m) [required]")
	turbineCmd.Flags().Float64VarP(&turbineEfficiency, "efficiency", "e", 0.9, "Turbine-generator efficiency η (0 to 1]")
	turbineCmd.Flags().Float64Var(&turbineHours, "hours", 0, "Operating hours for the energy estimate (default one year)")
	turbineCmd.Flags().Float64Var(&flowDensity, "density", 0, "Density ρ (kg/m³) (default from --fluid)")
	turbineCmd.Flags().Float64Var(&flowViscosity, "viscosity", 0, "Dynamic viscosity μ (Pa·s) (default from --fluid)")
	turbineCmd.MarkFlagRequired("flow")
	turbineCmd.MarkFlagRequired("head")
	addRunFlags(turbineCmd)
	addFluidFlag(turbineCmd)
	addOutputFlags(turbineCmd, true)
}

func runTurbine(cmd *cobra.Command, args []string) error {
	penstock, err := buildRun("Penstock")
	if err != nil {
		return err
	}
	sys := turbine.System{
		Density:    flowDensity,
		Viscosity:  flowViscosity,
		FlowRate:   turbineFlow,
		GrossHead:  turbineHead,
		Penstock:   penstock,
		Efficiency: turbineEfficiency,
		Hours:      turbineHours,
	}
	if err := fillFluid(&sys.Density, &sys.Viscosity); err != nil {
		return err
	}

	result, err := sys.Analyze()
	if err != nil {
		return err
	}
	if err := finish(worksheet.Turbine(sys, result), sys, result); err != nil {
		return err
	}

	bars := []diagram.Bar{
		{Label: "gross", Value: sys.GrossHead},
		{Label: "penstock loss", Value: result.HeadLoss},
		{Label: "net", Value: result.NetHead},
	}
	if outDiagram {
		fmt.Println(diagram.DrawBars("Head balance", "m", bars))
		fmt.Println(diagram.DrawSummaryBox("TURBINE OUTPUT", []string{
			fmt.Sprintf("P = %s MW", worksheet.Num(result.Power/1e6)),
			fmt.Sprintf("E = %s MWh over %s h", worksheet.Num(result.Energy), worksheet.Num(result.Hours)),
		}))
	}
	if outImage != "" {
		return exported(diagram.ExportBars("Head balance", "m", bars, outImage))
	}
	return nil
}
