package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gofluid/internal/capillary"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/manometer"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
	"github.com/alexiusacademia/gofluid/internal/pitot"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List fluid, fitting and instrument presets",
	Long: `List the built-in presets: working fluids, the fitting
equivalent-length table, and the capillary, manometer and Pitot
scenarios usable with --preset.`,
	Run: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func runPresets(cmd *cobra.Command, args []string) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     PRESETS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("FLUIDS (--fluid):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := newTable()
	fmt.Fprintf(w, "  Key\tName\tρ (kg/m³)\tμ (Pa·s)\tσ (N/m)\n")
	for _, f := range fluid.Fluids {
		sigma := "-"
		if f.SurfaceTension > 0 {
			sigma = fmt.Sprintf("%.4f", f.SurfaceTension)
		}
		fmt.Fprintf(w, "  %s\t%s\t%.4g\t%.4g\t%s\n", f.Key, f.Name, f.Density, f.Viscosity, sigma)
	}
	w.Flush()
	fmt.Println()

	printFittings()

	fmt.Println("CAPILLARY (gofluid capillary --preset):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = newTable()
	for _, p := range capillary.Presets {
		fmt.Fprintf(w, "  %s\t%s\tσ=%g N/m  θ=%g°  ρ=%g kg/m³  d=%g m\n", p.Key, p.Name,
			p.Tube.SurfaceTension, p.Tube.ContactAngle, p.Tube.Density, p.Tube.Diameter)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("MANOMETER (gofluid manometer --preset):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = newTable()
	for _, p := range manometer.Presets {
		fmt.Fprintf(w, "  %s\t%s\tρm=%g  ρf=%g kg/m³  h=%g m\n", p.Key, p.Name,
			p.Reading.ManometerDensity, p.Reading.FluidDensity, p.Reading.Height)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("PITOT (gofluid pitot --preset):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = newTable()
	for _, p := range pitot.Presets {
		fmt.Fprintf(w, "  %s\t%s\tρm=%g  ρf=%g kg/m³  h=%g m\n", p.Key, p.Name,
			p.Reading.ManometerDensity, p.Reading.FluidDensity, p.Reading.Height)
	}
	w.Flush()
	fmt.Println()
}

func printFittings() {
	fmt.Println("FITTINGS (--fitting key:count):")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := newTable()
	fmt.Fprintf(w, "  Key\tFitting\tLe/D\n")
	for _, f := range pipeflow.Fittings {
		fmt.Fprintf(w, "  %s\t%s\t%.0f\n", f.Key, f.Name, f.Ratio)
	}
	w.Flush()
	fmt.Println()
}
