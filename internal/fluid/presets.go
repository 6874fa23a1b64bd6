package fluid

import (
	"sort"
	"strings"
)

// Fluid holds the bulk properties a calculator needs for one working fluid
type Fluid struct {
	Key            string  `json:"key"`
	Name           string  `json:"name"`
	Density        float64 `json:"density"`                   // kg/m³
	Viscosity      float64 `json:"viscosity"`                 // Pa·s (dynamic)
	SurfaceTension float64 `json:"surface_tension,omitempty"` // N/m, 0 when not tabulated
}

// KinematicViscosity returns ν = μ/ρ (m²/s)
func (f Fluid) KinematicViscosity() float64 {
	return f.Viscosity / f.Density
}

// Fluids lists the working fluids offered as presets
var Fluids = []Fluid{
	{
		Key:            "water",
		Name:           "Water (20 °C)",
		Density:        WaterDensity,
		Viscosity:      WaterViscosity,
		SurfaceTension: WaterSurfaceTension,
	},
	{
		Key:       "seawater",
		Name:      "Sea water (20 °C)",
		Density:   1025,
		Viscosity: 1.08e-3,
	},
	{
		Key:            "mercury",
		Name:           "Mercury (20 °C)",
		Density:        MercuryDensity,
		Viscosity:      1.526e-3,
		SurfaceTension: 0.485,
	},
	{
		Key:       "air",
		Name:      "Air (sea level, 15 °C)",
		Density:   SeaLevelAirDensity,
		Viscosity: 1.789e-5,
	},
	{
		Key:       "air-10000ft",
		Name:      "Air (10,000 ft)",
		Density:   0.9046,
		Viscosity: 1.694e-5,
	},
	{
		Key:       "oil-sae30",
		Name:      "Oil SAE 30 (20 °C)",
		Density:   891,
		Viscosity: 0.29,
	},
	{
		Key:            "glycerin",
		Name:           "Glycerin (20 °C)",
		Density:        1260,
		Viscosity:      1.49,
		SurfaceTension: 0.0634,
	},
}

// LookupFluid finds a fluid preset by key, case-insensitively
func LookupFluid(key string) (Fluid, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, f := range Fluids {
		if f.Key == key {
			return f, true
		}
	}
	return Fluid{}, false
}

// FluidKeys returns the sorted preset keys, for help texts
func FluidKeys() []string {
	keys := make([]string, 0, len(Fluids))
	for _, f := range Fluids {
		keys = append(keys, f.Key)
	}
	sort.Strings(keys)
	return keys
}
