package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

var (
	waterFill  = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	waterEdge  = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	forceColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	pipeColor  = color.Gray{Y: 60}
)

// MoodyPoint marks an operating point on the Moody chart
type MoodyPoint struct {
	Reynolds          float64
	FrictionFactor    float64
	RelativeRoughness float64
}

// DefaultRoughnessCurves are the ε/D values drawn on a Moody chart
var DefaultRoughnessCurves = []float64{0, 1e-5, 1e-4, 1e-3, 5e-3, 0.01, 0.05}

// ExportWallPressure plots pressure against depth with the resultant marked
func ExportWallPressure(data WallDiagramData, filename string) error {
	if data.Depth <= 0 {
		return fmt.Errorf("wall has no wetted depth to draw")
	}
	p := plot.New()
	p.Title.Text = data.Title
	if p.Title.Text == "" {
		p.Title.Text = "Hydrostatic Pressure Distribution"
	}
	p.X.Label.Text = "Pressure (kPa)"
	p.Y.Label.Text = "Elevation below the free surface (m)"

	// depth is drawn downward from y = 0
	prism, err := plotter.NewPolygon(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.MaxPressure / 1000, Y: -data.Depth},
		{X: 0, Y: -data.Depth},
	})
	if err != nil {
		return err
	}
	prism.Color = waterFill
	prism.LineStyle.Color = waterEdge
	p.Add(prism)

	resultant, err := plotter.NewLine(plotter.XYs{
		{X: data.MaxPressure / 1000, Y: -data.CenterDepth},
		{X: 0, Y: -data.CenterDepth},
	})
	if err != nil {
		return err
	}
	resultant.LineStyle.Width = vg.Points(2)
	resultant.LineStyle.Color = forceColor
	resultant.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(resultant)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: data.MaxPressure / 2000, Y: -data.CenterDepth}},
		Labels: []string{fmt.Sprintf("F = %.2f kN", data.Force/1000)},
	})
	if err != nil {
		return err
	}
	p.Add(labels)

	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// ExportMoodyChart plots the friction factor against Re for a family of
// relative roughness values on log axes, marking the operating point when given.
func ExportMoodyChart(curves []float64, point *MoodyPoint, filename string) error {
	if len(curves) == 0 {
		curves = DefaultRoughnessCurves
	}
	p := plot.New()
	p.Title.Text = "Moody Chart (Churchill)"
	p.X.Label.Text = "Reynolds number Re"
	p.Y.Label.Text = "Darcy friction factor f"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Legend.Top = true

	laminar := make(plotter.XYs, 0, 40)
	for _, re := range logspace(600, pipeflow.LaminarLimit, 40) {
		laminar = append(laminar, plotter.XY{X: re, Y: 64 / re})
	}
	line, err := plotter.NewLine(laminar)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("laminar 64/Re", line)

	for i, rr := range curves {
		pts := make(plotter.XYs, 0, 120)
		for _, re := range logspace(pipeflow.LaminarLimit, 1e8, 120) {
			pts = append(pts, plotter.XY{X: re, Y: pipeflow.Churchill(re, rr)})
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("ε/D = %g", rr), l)
	}

	if point != nil && point.Reynolds > 0 && point.FrictionFactor > 0 {
		s, err := plotter.NewScatter(plotter.XYs{{X: point.Reynolds, Y: point.FrictionFactor}})
		if err != nil {
			return err
		}
		s.GlyphStyle.Color = forceColor
		s.GlyphStyle.Radius = vg.Points(5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("Re = %.0f, f = %.4f", point.Reynolds, point.FrictionFactor), s)
	}

	return save(p, 9*vg.Inch, 6*vg.Inch, filename)
}

// ExportBars draws a vertical bar chart, used for the head-loss breakdown
func ExportBars(title, unit string, bars []Bar, filename string) error {
	if len(bars) == 0 {
		return fmt.Errorf("no bars to draw")
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = unit

	values := make(plotter.Values, len(bars))
	names := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		names[i] = b.Label
	}
	chart, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return err
	}
	chart.Color = waterFill
	chart.LineStyle.Color = waterEdge
	p.Add(chart)
	p.NominalX(names...)

	return save(p, 7*vg.Inch, 5*vg.Inch, filename)
}

// ExportBend draws the bend centreline and the reaction vector at the elbow
func ExportBend(data BendDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Reducing Bend, θ = %.1f°", data.Angle)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	theta := data.Angle / 180 * math.Pi
	leg := 1.0
	centre, err := plotter.NewLine(plotter.XYs{
		{X: -leg, Y: 0},
		{X: 0, Y: 0},
		{X: leg * math.Cos(theta), Y: leg * math.Sin(theta)},
	})
	if err != nil {
		return err
	}
	centre.LineStyle.Width = vg.Points(6)
	centre.LineStyle.Color = pipeColor
	p.Add(centre)

	if data.Magnitude > 0 {
		scale := 0.8 * leg / data.Magnitude
		vec, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: 0},
			{X: data.Rx * scale, Y: data.Ry * scale},
		})
		if err != nil {
			return err
		}
		vec.LineStyle.Width = vg.Points(2)
		vec.LineStyle.Color = forceColor
		p.Add(vec)

		tip, err := plotter.NewScatter(plotter.XYs{{X: data.Rx * scale, Y: data.Ry * scale}})
		if err != nil {
			return err
		}
		tip.GlyphStyle.Color = forceColor
		tip.GlyphStyle.Shape = draw.TriangleGlyph{}
		tip.GlyphStyle.Radius = vg.Points(4)
		p.Add(tip)

		lbl, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: data.Rx * scale, Y: data.Ry * scale}},
			Labels: []string{fmt.Sprintf(" R = %.2f kN", data.Magnitude/1000)},
		})
		if err != nil {
			return err
		}
		p.Add(lbl)
	}

	p.X.Min, p.X.Max = -1.2*leg, 1.2*leg
	p.Y.Min, p.Y.Max = -1.2*leg, 1.2*leg
	return save(p, 6*vg.Inch, 6*vg.Inch, filename)
}

// save writes the plot in the format named by the file extension, defaulting
// to PNG when there is none.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf", ".jpg", ".jpeg":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

func logspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	a, b := math.Log10(lo), math.Log10(hi)
	for i := range out {
		out[i] = math.Pow(10, a+(b-a)*float64(i)/float64(n-1))
	}
	return out
}
