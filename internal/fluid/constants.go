package fluid

import "math"

// Physical constants shared by the calculators

const (
	// Standard gravitational acceleration used throughout (m/s²)
	Gravity = 9.81

	// Reference water properties at 20 °C
	WaterDensity         = 998.0    // kg/m³
	WaterViscosity       = 1.002e-3 // Pa·s
	WaterSurfaceTension  = 0.0728   // N/m
	StandardWaterDensity = 1000.0   // kg/m³, textbook round value
	MercuryDensity       = 13600.0  // kg/m³
	SeaLevelAirDensity   = 1.225    // kg/m³
)

// Radians converts an angle in degrees to radians.
// Dividing first keeps 90° mapped exactly onto π/2.
func Radians(deg float64) float64 {
	return deg / 180 * math.Pi
}

// Degrees converts an angle in radians to degrees
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// CircleArea returns the area of a circular section of diameter d
func CircleArea(d float64) float64 {
	return math.Pi * (d / 2) * (d / 2)
}
