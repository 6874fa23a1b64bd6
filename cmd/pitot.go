package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/pitot"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	pitotPreset       string
	pitotGaugeDensity float64
	pitotFluidDensity float64
	pitotHeight       float64
	pitotCalibration  float64
	pitotGravity      float64
	pitotTarget       float64
)

var pitotCmd = &cobra.Command{
	Use:   "pitot",
	Short: "Velocity from a Pitot-static tube",
	Long: `Compute the flow velocity seen by a Pitot-static tube from its
manometer reading.

  U = √(2·ρm·g·h / ρf),   U_actual = C·U

With --velocity the inverse is solved instead: the manometer reading
that a given velocity would produce.

Examples:
  gofluid pitot --preset aircraft-10000ft
  gofluid pitot --gauge-density 1000 --fluid-density 1.225 --height 0.05
  gofluid pitot --gauge-density 13600 --fluid-density 1.225 --velocity 60`,
	RunE: runPitot,
}

func init() {
	rootCmd.AddCommand(pitotCmd)

	pitotCmd.Flags().StringVarP(&pitotPreset, "preset", "p", "", "Preset scenario (see 'gofluid presets')")
	pitotCmd.Flags().Float64Var(&pitotGaugeDensity, "gauge-density", 0, "Manometer liquid density ρm (kg/m³)")
	pitotCmd.Flags().Float64Var(&pitotFluidDensity, "fluid-density", 0, "Flowing fluid density ρf (kg/m³)")
	pitotCmd.Flags().Float64Var(&pitotHeight, "height", 0, "Manometer reading h (m)")
	pitotCmd.Flags().Float64VarP(&pitotCalibration, "calibration", "c", 0, "Calibration factor C (default 1)")
	pitotCmd.Flags().Float64Var(&pitotGravity, "gravity", 0, "Gravitational acceleration (m/s²) (default from config)")
	pitotCmd.Flags().Float64Var(&pitotTarget, "velocity", 0, "Solve for the reading produced by this velocity (m/s)")
	addOutputFlags(pitotCmd, false)
}

func runPitot(cmd *cobra.Command, args []string) error {
	var r pitot.Reading
	if pitotPreset != "" {
		p, ok := pitot.LookupPreset(pitotPreset)
		if !ok {
			return fmt.Errorf("unknown pitot preset %q", pitotPreset)
		}
		r = p.Reading
	}

	flags := cmd.Flags()
	if flags.Changed("gauge-density") {
		r.ManometerDensity = pitotGaugeDensity
	}
	if flags.Changed("fluid-density") {
		r.FluidDensity = pitotFluidDensity
	}
	if flags.Changed("height") {
		r.Height = pitotHeight
	}
	if flags.Changed("calibration") {
		r.Calibration = pitotCalibration
	}
	r.Gravity = gravityOr(pitotGravity)

	if flags.Changed("velocity") {
		h, err := pitot.ManometerHeight(r.ManometerDensity, r.FluidDensity, r.Gravity, pitotTarget)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("  U = %s m/s  →  h = %s m (%s mm)\n", worksheet.Num(pitotTarget), worksheet.Num(h), worksheet.Num(h*1000))
		fmt.Println()
		r.Height = h
	}

	result, err := r.Analyze()
	if err != nil {
		return err
	}
	return finish(worksheet.Pitot(r, result), r, result)
}
