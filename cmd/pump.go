package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/diagram"
	"github.com/alexiusacademia/gofluid/internal/pump"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	pumpFlow       float64
	pumpLift       float64
	pumpPressure   float64
	pumpEfficiency float64
)

var pumpCmd = &cobra.Command{
	Use:   "pump",
	Short: "Pump head and power for a pipe system",
	Long: `Size a pump lifting fluid through a pipe run.

  H     = Δz + Δp/(ρg) + h_loss
  P_h   = ρ·g·Q·H
  P_sh  = P_h / η

Examples:
  gofluid pump --flow 0.02 --lift 25 --efficiency 0.75 \
      --length 200 --diameter 0.15 --roughness 4.5e-5 \
      --fitting elbow-90:4 --fitting gate-valve:2 --fitting check-valve

  gofluid pump --flow 0.02 --lift 25 --efficiency 0.75 --run delivery.json -d`,
	RunE: runPump,
}

func init() {
	rootCmd.AddCommand(pumpCmd)

	pumpCmd.Flags().Float64VarP(&pumpFlow, "flow", "q", 0, "Flow rate Q (m³/s) [required]")
	pumpCmd.Flags().Float64Var(&pumpLift, "lift", 0, "Static lift Δz (m), negative when delivering downhill")
	pumpCmd.Flags().Float64Var(&pumpPressure, "pressure", 0, "Delivery minus suction pressure Δp (Pa)")
	pumpCmd.Flags().Float64VarP(&pumpEfficiency, "efficiency", "e", 0.75, "Pump efficiency η (0 to 1]")
	pumpCmd.Flags().Float64Var(&flowDensity, "density", 0, "Density ρ (kg/m³) (default from --fluid)")
	pumpCmd.Flags().Float64Var(&flowViscosity, "viscosity", 0, "Dynamic viscosity μ (Pa·s) (default from --fluid)")
	pumpCmd.MarkFlagRequired("flow")
	addRunFlags(pumpCmd)
	addFluidFlag(pumpCmd)
	addOutputFlags(pumpCmd, true)
}

func runPump(cmd *cobra.Command, args []string) error {
	run, err := buildRun("Pump line")
	if err != nil {
		return err
	}
	sys := pump.System{
		Density:            flowDensity,
		Viscosity:          flowViscosity,
		FlowRate:           pumpFlow,
		Run:                run,
		StaticLift:         pumpLift,
		PressureDifference: pumpPressure,
		Efficiency:         pumpEfficiency,
	}
	if err := fillFluid(&sys.Density, &sys.Viscosity); err != nil {
		return err
	}

	result, err := sys.Analyze()
	if err != nil {
		return err
	}
	if err := finish(worksheet.Pump(sys, result), sys, result); err != nil {
		return err
	}

	bars := []diagram.Bar{
		{Label: "static", Value: result.StaticHead},
		{Label: "pressure", Value: result.PressureHead},
		{Label: "friction", Value: result.FrictionHead},
		{Label: "total", Value: result.TotalHead},
	}
	if outDiagram {
		fmt.Println(diagram.DrawBars("Pump head", "m", bars))
		fmt.Println(diagram.DrawSummaryBox("PUMP DUTY", []string{
			fmt.Sprintf("Q = %s m³/s at H = %s m", worksheet.Num(sys.FlowRate), worksheet.Num(result.TotalHead)),
			fmt.Sprintf("Shaft power = %s kW", worksheet.Num(result.ShaftPower/1000)),
		}))
	}
	if outImage != "" {
		return exported(diagram.ExportBars("Pump head", "m", bars, outImage))
	}
	return nil
}
