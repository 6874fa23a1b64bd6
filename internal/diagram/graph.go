package diagram

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

const curveSamples = 60

// DrawFrictionCurve plots f against log10(Re) for the point's relative
// roughness, the console counterpart of the Moody chart export.
func DrawFrictionCurve(point MoodyPoint) string {
	lo, hi := 600.0, 1e8
	if point.Reynolds > 0 {
		lo = math.Min(lo, point.Reynolds/2)
		hi = math.Max(hi, point.Reynolds*2)
	}

	res := logspace(lo, hi, curveSamples)
	f := make([]float64, 0, len(res))
	for _, re := range res {
		v, err := pipeflow.FrictionFactor(re, point.RelativeRoughness)
		if err != nil {
			continue
		}
		f = append(f, v)
	}
	if len(f) == 0 {
		return ""
	}

	caption := fmt.Sprintf("f vs Re, ε/D = %.2e, Re %s to %s (log scale)",
		point.RelativeRoughness, sciNotation(lo), sciNotation(hi))
	graph := asciigraph.Plot(f,
		asciigraph.Height(12),
		asciigraph.Width(curveSamples),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	)
	if point.Reynolds <= 0 {
		return graph + "\n"
	}

	// column of the operating point along the log axis
	col := int(math.Round(float64(curveSamples-1) * math.Log10(point.Reynolds/lo) / math.Log10(hi/lo)))
	return fmt.Sprintf("%s\n  operating point: Re = %s, f = %.5f (column %d of %d)\n",
		graph, sciNotation(point.Reynolds), point.FrictionFactor, col+1, curveSamples)
}

func sciNotation(v float64) string {
	return fmt.Sprintf("%.1e", v)
}
