package cmd

import (
	"fmt"

	"github.com/alexiusacademia/gofluid/internal/diagram"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/hydrostatic"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
	"github.com/spf13/cobra"
)

var (
	wallDepth   float64
	wallLength  float64
	wallAngle   float64
	wallWidth   float64
	wallDensity float64
	wallGravity float64
)

var hydrostaticCmd = &cobra.Command{
	Use:   "hydrostatic",
	Short: "Hydrostatic force on plane walls",
	Long: `Resultant force and centre of pressure on rectangular walls
retaining a liquid.

Subcommands:
  vertical  - Vertical wall wetted to a given depth
  inclined  - Wall inclined from the horizontal, wetted along its slant length`,
}

var hydrostaticVerticalCmd = &cobra.Command{
	Use:   "vertical",
	Short: "Force on a vertical wall",
	Long: `Calculate the hydrostatic force on a vertical rectangular wall.

  F = ½·ρ·g·w·D²   acting at ȳ = 2D/3 below the free surface

Examples:
  # 5 m of water against a 3 m wide wall
  gofluid hydrostatic vertical --depth 5 --width 3

  # Seawater, with the pressure diagram
  gofluid hydrostatic vertical --depth 5 --width 3 --density 1025 -d`,
	RunE: runHydrostaticVertical,
}

var hydrostaticInclinedCmd = &cobra.Command{
	Use:   "inclined",
	Short: "Force on an inclined wall",
	Long: `Calculate the hydrostatic force on a rectangular wall inclined at θ
from the horizontal, wetted along a slant length L.

  h  = L·sinθ
  Fn = ½·ρ·g·w·L²·sinθ   acting at 2L/3 along the slope

Examples:
  gofluid hydrostatic inclined --length 6 --angle 60 --width 2`,
	RunE: runHydrostaticInclined,
}

func init() {
	rootCmd.AddCommand(hydrostaticCmd)
	hydrostaticCmd.AddCommand(hydrostaticVerticalCmd)
	hydrostaticCmd.AddCommand(hydrostaticInclinedCmd)

	for _, c := range []*cobra.Command{hydrostaticVerticalCmd, hydrostaticInclinedCmd} {
		c.Flags().Float64VarP(&wallWidth, "width", "w", 0, "Wall width (m) [required]")
		c.Flags().Float64Var(&wallDensity, "density", fluid.WaterDensity, "Liquid density (kg/m³)")
		c.Flags().Float64Var(&wallGravity, "gravity", 0, "Gravitational acceleration (m/s²) (default from config)")
		c.MarkFlagRequired("width")
		addOutputFlags(c, true)
	}

	hydrostaticVerticalCmd.Flags().Float64Var(&wallDepth, "depth", 0, "Liquid depth (m) [required]")
	hydrostaticVerticalCmd.MarkFlagRequired("depth")

	hydrostaticInclinedCmd.Flags().Float64VarP(&wallLength, "length", "l", 0, "Wetted slant length (m) [required]")
	hydrostaticInclinedCmd.Flags().Float64VarP(&wallAngle, "angle", "a", 0, "Inclination from horizontal (degrees) [required]")
	hydrostaticInclinedCmd.MarkFlagRequired("length")
	hydrostaticInclinedCmd.MarkFlagRequired("angle")
}

func runHydrostaticVertical(cmd *cobra.Command, args []string) error {
	w := hydrostatic.VerticalWall{Depth: wallDepth, Width: wallWidth, Density: wallDensity, Gravity: gravityOr(wallGravity)}
	result, err := w.Analyze()
	if err != nil {
		return err
	}
	if err := finish(worksheet.VerticalWall(w, result), w, result); err != nil {
		return err
	}

	data := diagram.WallDiagramData{
		Title:       "VERTICAL WALL PRESSURE",
		Depth:       w.Depth,
		MaxPressure: result.MaxPressure,
		CenterDepth: result.CenterOfPressure,
		Force:       result.Force,
	}
	if outDiagram {
		fmt.Println(diagram.DrawWallPressure(data))
	}
	if outImage != "" {
		return exported(diagram.ExportWallPressure(data, outImage))
	}
	return nil
}

func runHydrostaticInclined(cmd *cobra.Command, args []string) error {
	w := hydrostatic.InclinedWall{Length: wallLength, Angle: wallAngle, Width: wallWidth, Density: wallDensity, Gravity: gravityOr(wallGravity)}
	result, err := w.Analyze()
	if err != nil {
		return err
	}
	if err := finish(worksheet.InclinedWall(w, result), w, result); err != nil {
		return err
	}

	data := diagram.WallDiagramData{
		Title:       "INCLINED WALL PRESSURE",
		Depth:       result.VerticalDepth,
		MaxPressure: result.MaxPressure,
		CenterDepth: result.CenterDepth,
		Force:       result.NormalForce,
	}
	if outDiagram {
		fmt.Println(diagram.DrawWallPressure(data))
	}
	if outImage != "" {
		return exported(diagram.ExportWallPressure(data, outImage))
	}
	return nil
}
