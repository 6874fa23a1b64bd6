package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/manometer"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	manoPreset       string
	manoGaugeDensity float64
	manoFluidDensity float64
	manoHeight       float64
	manoGravity      float64
)

var manometerCmd = &cobra.Command{
	Use:   "manometer",
	Short: "U-tube manometer pressure difference",
	Long: `Convert a U-tube manometer deflection into a pressure difference.

  Δp = (ρm − ρf)·g·h

Examples:
  # Mercury under water, 100 mm deflection
  gofluid manometer --preset mercury-water

  # Same pair, 250 mm
  gofluid manometer --preset mercury-water --height 0.25

  gofluid manometer --gauge-density 13600 --fluid-density 1000 --height 0.1`,
	RunE: runManometer,
}

func init() {
	rootCmd.AddCommand(manometerCmd)

	manometerCmd.Flags().StringVarP(&manoPreset, "preset", "p", "", "Preset gauge/working fluid pair (see 'gofluid presets')")
	manometerCmd.Flags().Float64Var(&manoGaugeDensity, "gauge-density", 0, "Manometer liquid density ρm (kg/m³)")
	manometerCmd.Flags().Float64Var(&manoFluidDensity, "fluid-density", 0, "Working fluid density ρf (kg/m³)")
	manometerCmd.Flags().Float64Var(&manoHeight, "height", 0, "Deflection h (m)")
	manometerCmd.Flags().Float64Var(&manoGravity, "gravity", 0, "Gravitational acceleration (m/s²) (default from config)")
	addOutputFlags(manometerCmd, false)
}

func runManometer(cmd *cobra.Command, args []string) error {
	var r manometer.Reading
	if manoPreset != "" {
		p, ok := manometer.LookupPreset(manoPreset)
		if !ok {
			return fmt.Errorf("unknown manometer preset %q", manoPreset)
		}
		r = p.Reading
	}

	flags := cmd.Flags()
	if flags.Changed("gauge-density") {
		r.ManometerDensity = manoGaugeDensity
	}
	if flags.Changed("fluid-density") {
		r.FluidDensity = manoFluidDensity
	}
	if flags.Changed("height") {
		r.Height = manoHeight
	}
	r.Gravity = gravityOr(manoGravity)

	result, err := r.Analyze()
	if err != nil {
		return err
	}
	return finish(worksheet.Manometer(r, result), r, result)
}
