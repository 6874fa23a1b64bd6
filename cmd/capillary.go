package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/capillary"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	capPreset   string
	capSigma    float64
	capAngle    float64
	capDensity  float64
	capDiameter float64
	capGravity  float64
)

var capillaryCmd = &cobra.Command{
	Use:   "capillary",
	Short: "Capillary rise in a tube",
	Long: `Calculate the rise (or depression) of a liquid in a narrow tube.

  h = 4·σ·cosθ / (ρ·g·d)

A contact angle above 90° gives a negative rise, as with mercury in glass.
Explicit flags override the values of a preset.

Examples:
  # Water in a 1 mm glass tube
  gofluid capillary --preset water-glass

  # Same tube, 0.5 mm bore
  gofluid capillary --preset water-glass --diameter 0.0005

  # Everything by hand
  gofluid capillary --sigma 0.0728 --angle 0 --density 998 --diameter 0.001`,
	RunE: runCapillary,
}

func init() {
	rootCmd.AddCommand(capillaryCmd)

	capillaryCmd.Flags().StringVarP(&capPreset, "preset", "p", "", "Preset liquid/tube pair (see 'gofluid presets')")
	capillaryCmd.Flags().Float64Var(&capSigma, "sigma", 0, "Surface tension σ (N/m)")
	capillaryCmd.Flags().Float64VarP(&capAngle, "angle", "a", 0, "Contact angle θ (degrees)")
	capillaryCmd.Flags().Float64Var(&capDensity, "density", 0, "Liquid density (kg/m³)")
	capillaryCmd.Flags().Float64Var(&capDiameter, "diameter", 0, "Tube bore (m)")
	capillaryCmd.Flags().Float64Var(&capGravity, "gravity", 0, "Gravitational acceleration (m/s²) (default from config)")
	addOutputFlags(capillaryCmd, false)
}

func runCapillary(cmd *cobra.Command, args []string) error {
	var t capillary.Tube
	if capPreset != "" {
		p, ok := capillary.LookupPreset(capPreset)
		if !ok {
			return fmt.Errorf("unknown capillary preset %q", capPreset)
		}
		t = p.Tube
	}

	flags := cmd.Flags()
	if flags.Changed("sigma") {
		t.SurfaceTension = capSigma
	}
	if flags.Changed("angle") {
		t.ContactAngle = capAngle
	}
	if flags.Changed("density") {
		t.Density = capDensity
	}
	if flags.Changed("diameter") {
		t.Diameter = capDiameter
	}
	t.Gravity = gravityOr(capGravity)

	result, err := t.Analyze()
	if err != nil {
		return err
	}
	return finish(worksheet.Capillary(t, result), t, result)
}
