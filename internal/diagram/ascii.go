// Package diagram draws the calculator figures: ASCII sketches for the console
// and PNG/SVG/PDF plots through gonum/plot.
package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// WallDiagramData holds what is needed to draw the pressure prism on a wall
type WallDiagramData struct {
	Title       string
	Depth       float64 // vertical depth of the wetted wall, m
	MaxPressure float64 // pressure at Depth, Pa
	CenterDepth float64 // vertical depth of the centre of pressure, m
	Force       float64 // resultant, N
}

// BendDiagramData holds the geometry and reaction of a pipe bend
type BendDiagramData struct {
	Angle          float64 // degrees
	InletDiameter  float64 // m
	OutletDiameter float64 // m
	InletVelocity  float64 // m/s
	OutletVelocity float64 // m/s
	Rx, Ry         float64 // reaction on the pipe, N
	Magnitude      float64 // N
	Direction      float64 // degrees
}

// Bar is one labelled value in a bar chart
type Bar struct {
	Label string
	Value float64
}

// DrawWallPressure draws the triangular pressure distribution down a wall with
// the resultant marked at the centre of pressure.
func DrawWallPressure(data WallDiagramData) string {
	var sb strings.Builder

	title := data.Title
	if title == "" {
		title = "PRESSURE DISTRIBUTION"
	}
	sb.WriteString("\n")
	sb.WriteString("  " + strings.ToUpper(title) + "\n")
	sb.WriteString("  " + strings.Repeat("─", utf8.RuneCountInString(title)) + "\n\n")

	if data.Depth <= 0 || data.MaxPressure <= 0 {
		sb.WriteString("  ~~~~~~~~ (no wetted depth, no load)\n")
		return sb.String()
	}

	rows := 12
	widthChars := 32
	cpRow := int(math.Round(data.CenterDepth / data.Depth * float64(rows)))

	sb.WriteString("  ~~~~~~~~┬ 0 Pa (free surface)\n")
	for i := 1; i <= rows; i++ {
		bar := int(math.Round(float64(i) / float64(rows) * float64(widthChars)))
		line := fmt.Sprintf("          │%s", strings.Repeat("▓", bar))
		switch {
		case i == cpRow:
			line += fmt.Sprintf(" ◄─ F = %.2f kN at %.3f m", data.Force/1000, data.CenterDepth)
		case i == rows:
			line += fmt.Sprintf(" p = %.2f kPa", data.MaxPressure/1000)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString(fmt.Sprintf("  ════════┴ base, depth %.3f m\n", data.Depth))
	return sb.String()
}

// DrawBars draws a horizontal bar chart scaled to the largest value
func DrawBars(title, unit string, bars []Bar) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  " + strings.ToUpper(title) + "\n")
	sb.WriteString("  " + strings.Repeat("─", utf8.RuneCountInString(title)) + "\n")

	labelWidth := 0
	maxValue := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, utf8.RuneCountInString(b.Label))
		maxValue = math.Max(maxValue, math.Abs(b.Value))
	}

	widthChars := 36
	for _, b := range bars {
		n := 0
		if maxValue > 0 {
			n = int(math.Round(math.Abs(b.Value) / maxValue * float64(widthChars)))
		}
		sb.WriteString(fmt.Sprintf("  %-*s │%s %.3f %s\n", labelWidth, b.Label, strings.Repeat("█", n), b.Value, unit))
	}
	return sb.String()
}

// DrawBend sketches the bend and the direction of the support reaction
func DrawBend(data BendDiagramData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  PIPE BEND\n")
	sb.WriteString("  ─────────\n\n")
	sb.WriteString(fmt.Sprintf("                      ↗ U₂ = %.3f m/s, D₂ = %.3f m\n", data.OutletVelocity, data.OutletDiameter))
	sb.WriteString(fmt.Sprintf("                    ╱  θ = %.1f°\n", data.Angle))
	sb.WriteString("                  ╱\n")
	sb.WriteString(fmt.Sprintf("  ════════════════╯   U₁ = %.3f m/s, D₁ = %.3f m\n", data.InletVelocity, data.InletDiameter))
	sb.WriteString("  → x\n\n")
	sb.WriteString(fmt.Sprintf("  Reaction on pipe: %s  |R| = %.2f kN at φ = %.1f°\n", compass(data.Direction), data.Magnitude/1000, data.Direction))
	sb.WriteString(fmt.Sprintf("    Rx = %.2f kN\n", data.Rx/1000))
	sb.WriteString(fmt.Sprintf("    Ry = %.2f kN\n", data.Ry/1000))
	return sb.String()
}

// compass picks the arrow nearest to an angle in degrees measured from +x
func compass(deg float64) string {
	arrows := []string{"→", "↗", "↑", "↖", "←", "↙", "↓", "↘"}
	i := int(math.Round(deg/45)) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := utf8.RuneCountInString(title)
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
