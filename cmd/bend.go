package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/bend"
	"github.com/alexiusacademia/gofluid/internal/diagram"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	bendInlet    float64
	bendOutlet   float64
	bendAngle    float64
	bendFlow     float64
	bendPressure float64
	bendDensity  float64
)

var bendCmd = &cobra.Command{
	Use:   "bend",
	Short: "Reaction on a reducing pipe bend",
	Long: `Resolve the momentum balance on a reducing bend to find the force
the pipe supports must carry.

The x axis runs along the inlet. The outlet pressure follows from
Bernoulli without losses; the reaction is the negated force on the fluid.

  Fx = ṁ(U₂cosθ − U₁) + p₁A₁ − p₂A₂cosθ
  Fy = ṁU₂sinθ − p₂A₂sinθ

Examples:
  # 300 → 200 mm, 60° bend, 100 L/s at 200 kPa
  gofluid bend --inlet 0.3 --outlet 0.2 --angle 60 --flow 0.1 --pressure 200000 -d`,
	RunE: runBend,
}

func init() {
	rootCmd.AddCommand(bendCmd)

	bendCmd.Flags().Float64Var(&bendInlet, "inlet", 0, "Inlet diameter D₁ (m) [required]")
	bendCmd.Flags().Float64Var(&bendOutlet, "outlet", 0, "Outlet diameter D₂ (m) [required]")
	bendCmd.Flags().Float64VarP(&bendAngle, "angle", "a", 0, "Deflection angle θ (degrees, 0 to 180) [required]")
	bendCmd.Flags().Float64VarP(&bendFlow, "flow", "q", 0, "Flow rate Q (m³/s) [required]")
	bendCmd.Flags().Float64Var(&bendPressure, "pressure", 0, "Inlet gauge pressure p₁ (Pa)")
	bendCmd.Flags().Float64Var(&bendDensity, "density", fluid.StandardWaterDensity, "Fluid density (kg/m³)")
	bendCmd.MarkFlagRequired("inlet")
	bendCmd.MarkFlagRequired("outlet")
	bendCmd.MarkFlagRequired("angle")
	bendCmd.MarkFlagRequired("flow")
	addOutputFlags(bendCmd, true)
}

func runBend(cmd *cobra.Command, args []string) error {
	g := bend.Geometry{
		InletDiameter:  bendInlet,
		OutletDiameter: bendOutlet,
		Angle:          bendAngle,
		FlowRate:       bendFlow,
		InletPressure:  bendPressure,
		Density:        bendDensity,
	}
	result, err := g.Analyze()
	if err != nil {
		return err
	}
	if err := finish(worksheet.Bend(g, result), g, result); err != nil {
		return err
	}

	data := diagram.BendDiagramData{
		Angle:          g.Angle,
		InletDiameter:  g.InletDiameter,
		OutletDiameter: g.OutletDiameter,
		InletVelocity:  result.InletVelocity,
		OutletVelocity: result.OutletVelocity,
		Rx:             result.Rx,
		Ry:             result.Ry,
		Magnitude:      result.Magnitude,
		Direction:      result.Direction,
	}
	if outDiagram {
		fmt.Println(diagram.DrawBend(data))
	}
	if outImage != "" {
		return exported(diagram.ExportBend(data, outImage))
	}
	return nil
}
