package worksheet

import (
	"github.com/alexiusacademia/gofluid/internal/bend"
	"github.com/alexiusacademia/gofluid/internal/capillary"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/hydrostatic"
	"github.com/alexiusacademia/gofluid/internal/manometer"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
	"github.com/alexiusacademia/gofluid/internal/pitot"
	"github.com/alexiusacademia/gofluid/internal/pump"
	"github.com/alexiusacademia/gofluid/internal/turbine"
)

func gravity(g float64) float64 {
	if g == 0 {
		return fluid.Gravity
	}
	return g
}

// VerticalWall builds the worked solution for a vertical wall
func VerticalWall(w hydrostatic.VerticalWall, r *hydrostatic.VerticalResult) *Sheet {
	g := gravity(w.Gravity)
	s := New("hydrostatic-vertical", "Hydrostatic Force on a Vertical Wall")
	s.In("depth", "Water depth", "D", w.Depth, "m").
		In("width", "Wall width", "w", w.Width, "m").
		In("density", "Fluid density", "ρ", w.Density, "kg/m³").
		In("gravity", "Gravity", "g", g, "m/s²")

	s.Step("Resultant force", "F = ½·ρ·g·w·D²", "½·%s·%s·%s·%s²", r.Force, "N", w.Density, g, w.Width, w.Depth).
		Step("Centre of pressure below the surface", "ȳ = (2/3)·D", "(2/3)·%s", r.CenterOfPressure, "m", w.Depth).
		Step("Overturning moment about the base", "M = F·(D − ȳ)", "%s·(%s − %s)", r.BaseMoment, "N·m", r.Force, w.Depth, r.CenterOfPressure).
		Step("Pressure at the base", "p = ρ·g·D", "%s·%s·%s", r.MaxPressure, "Pa", w.Density, g, w.Depth)

	s.Out("force", "Resultant force", "F", r.Force/1000, "kN").
		Out("center_of_pressure", "Centre of pressure", "ȳ", r.CenterOfPressure, "m").
		Out("base_moment", "Moment about base", "M", r.BaseMoment/1000, "kN·m").
		Out("max_pressure", "Base pressure", "p_max", r.MaxPressure/1000, "kPa").
		Out("mean_pressure", "Mean pressure", "p_avg", r.MeanPressure/1000, "kPa")
	return s
}

// InclinedWall builds the worked solution for an inclined wall
func InclinedWall(w hydrostatic.InclinedWall, r *hydrostatic.InclinedResult) *Sheet {
	g := gravity(w.Gravity)
	s := New("hydrostatic-inclined", "Hydrostatic Force on an Inclined Wall")
	s.In("length", "Wetted slant length", "L", w.Length, "m").
		In("angle", "Inclination from horizontal", "θ", w.Angle, "°").
		In("width", "Wall width", "w", w.Width, "m").
		In("density", "Fluid density", "ρ", w.Density, "kg/m³").
		In("gravity", "Gravity", "g", g, "m/s²")

	s.Step("Vertical depth of the toe", "h = L·sinθ", "%s·sin %s°", r.VerticalDepth, "m", w.Length, w.Angle).
		Step("Normal force", "Fₙ = ½·ρ·g·w·L²·sinθ", "½·%s·%s·%s·%s²·sin %s°", r.NormalForce, "N", w.Density, g, w.Width, w.Length, w.Angle).
		Step("Horizontal component", "Fₕ = Fₙ·sinθ", "%s·sin %s°", r.HorizontalForce, "N", r.NormalForce, w.Angle).
		Step("Vertical component", "F_v = Fₙ·cosθ", "%s·cos %s°", r.VerticalForce, "N", r.NormalForce, w.Angle).
		Step("Centre of pressure along the slope", "s_cp = (2/3)·L", "(2/3)·%s", r.CenterOfPressure, "m", w.Length)

	s.Out("normal_force", "Normal force", "Fₙ", r.NormalForce/1000, "kN").
		Out("horizontal_force", "Horizontal force", "Fₕ", r.HorizontalForce/1000, "kN").
		Out("vertical_force", "Vertical force", "F_v", r.VerticalForce/1000, "kN").
		Out("center_of_pressure", "Centre of pressure (slope)", "s_cp", r.CenterOfPressure, "m").
		Out("center_depth", "Centre of pressure depth", "h_cp", r.CenterDepth, "m").
		Out("max_pressure", "Toe pressure", "p_max", r.MaxPressure/1000, "kPa")
	if w.Angle == 0 {
		s.Note("A horizontal wall at the surface carries no hydrostatic load")
	}
	return s
}

// Capillary builds the worked solution for capillary rise
func Capillary(t capillary.Tube, r *capillary.Result) *Sheet {
	g := gravity(t.Gravity)
	s := New("capillary", "Capillary Rise")
	s.In("surface_tension", "Surface tension", "σ", t.SurfaceTension, "N/m").
		In("contact_angle", "Contact angle", "θ", t.ContactAngle, "°").
		In("density", "Liquid density", "ρ", t.Density, "kg/m³").
		In("diameter", "Tube diameter", "d", t.Diameter, "m").
		In("gravity", "Gravity", "g", g, "m/s²")

	s.Step("Meniscus height", "h = 4·σ·cosθ/(ρ·g·d)", "4·%s·cos %s°/(%s·%s·%s)", r.Rise, "m",
		t.SurfaceTension, t.ContactAngle, t.Density, g, t.Diameter)

	s.Out("rise", "Capillary rise", "h", r.Rise, "m").
		Out("rise_mm", "Capillary rise", "h", r.RiseMM, "mm")
	if r.Depression {
		s.Note("Negative height: the liquid is depressed below the free surface")
	}
	return s
}

// Manometer builds the worked solution for a U-tube reading
func Manometer(m manometer.Reading, r *manometer.Result) *Sheet {
	g := gravity(m.Gravity)
	s := New("manometer", "U-Tube Manometer")
	s.In("manometer_density", "Gauge liquid density", "ρₘ", m.ManometerDensity, "kg/m³").
		In("fluid_density", "Working fluid density", "ρ_f", m.FluidDensity, "kg/m³").
		In("height", "Deflection", "h", m.Height, "m").
		In("gravity", "Gravity", "g", g, "m/s²")

	s.Step("Pressure difference", "Δp = (ρₘ − ρ_f)·g·h", "(%s − %s)·%s·%s", r.PressureDifference, "Pa",
		m.ManometerDensity, m.FluidDensity, g, m.Height).
		Step("Equivalent head of working fluid", "h_f = Δp/(ρ_f·g)", "%s/(%s·%s)", r.FluidHead, "m",
			r.PressureDifference, m.FluidDensity, g)

	s.Out("pressure_difference", "Pressure difference", "Δp", r.PressureDifference/1000, "kPa").
		Out("fluid_head", "Working fluid head", "h_f", r.FluidHead, "m").
		Out("density_ratio", "Density ratio", "ρₘ/ρ_f", r.DensityRatio, "")
	return s
}

// Pitot builds the worked solution for a Pitot-static reading
func Pitot(p pitot.Reading, r *pitot.Result) *Sheet {
	g := gravity(p.Gravity)
	s := New("pitot", "Pitot-Static Tube")
	s.In("manometer_density", "Manometer liquid density", "ρₘ", p.ManometerDensity, "kg/m³").
		In("fluid_density", "Flowing fluid density", "ρ_f", p.FluidDensity, "kg/m³").
		In("height", "Manometer reading", "h", p.Height, "m").
		In("gravity", "Gravity", "g", g, "m/s²").
		In("calibration", "Calibration factor", "C", r.Calibration, "")

	s.Step("Theoretical velocity", "U = √(2·ρₘ·g·h/ρ_f)", "√(2·%s·%s·%s/%s)", r.Velocity, "m/s",
		p.ManometerDensity, g, p.Height, p.FluidDensity).
		Step("Dynamic pressure", "q = ½·ρ_f·U²", "½·%s·%s²", r.DynamicPressure, "Pa", p.FluidDensity, r.Velocity)
	if r.Calibration != 1 {
		s.Step("Calibrated velocity", "U_actual = C·U", "%s·%s", r.ActualVelocity, "m/s", r.Calibration, r.Velocity)
	}

	s.Out("velocity", "Velocity", "U", r.Velocity, "m/s").
		Out("actual_velocity", "Actual velocity", "C·U", r.ActualVelocity, "m/s").
		Out("velocity_kmh", "Actual velocity", "C·U", r.ActualVelocity*3.6, "km/h").
		Out("dynamic_pressure", "Dynamic pressure", "q", r.DynamicPressure, "Pa")
	return s
}

// Bend builds the worked solution for the momentum balance on a bend
func Bend(b bend.Geometry, r *bend.Result) *Sheet {
	s := New("bend", "Momentum Balance on a Reducing Bend")
	s.In("inlet_diameter", "Inlet diameter", "D₁", b.InletDiameter, "m").
		In("outlet_diameter", "Outlet diameter", "D₂", b.OutletDiameter, "m").
		In("angle", "Bend angle", "θ", b.Angle, "°").
		In("flow_rate", "Flow rate", "Q", b.FlowRate, "m³/s").
		In("inlet_pressure", "Inlet gauge pressure", "p₁", b.InletPressure, "Pa").
		In("density", "Density", "ρ", b.Density, "kg/m³")

	s.Step("Inlet area", "A₁ = π·D₁²/4", "π·%s²/4", r.InletArea, "m²", b.InletDiameter).
		Step("Outlet area", "A₂ = π·D₂²/4", "π·%s²/4", r.OutletArea, "m²", b.OutletDiameter).
		Step("Inlet velocity", "U₁ = Q/A₁", "%s/%s", r.InletVelocity, "m/s", b.FlowRate, r.InletArea).
		Step("Outlet velocity", "U₂ = Q/A₂", "%s/%s", r.OutletVelocity, "m/s", b.FlowRate, r.OutletArea).
		Step("Outlet pressure (Bernoulli)", "p₂ = p₁ + ½·ρ·(U₁² − U₂²)", "%s + ½·%s·(%s² − %s²)", r.OutletPressure, "Pa",
			b.InletPressure, b.Density, r.InletVelocity, r.OutletVelocity).
		Step("Mass flow", "ṁ = ρ·Q", "%s·%s", r.MassFlow, "kg/s", b.Density, b.FlowRate).
		Step("Force on fluid, x", "Fx = ṁ·(U₂·cosθ − U₁) + p₁·A₁ − p₂·A₂·cosθ",
			"%s·(%s·cos %s° − %s) + %s·%s − %s·%s·cos %s°", r.Fx, "N",
			r.MassFlow, r.OutletVelocity, b.Angle, r.InletVelocity, b.InletPressure, r.InletArea, r.OutletPressure, r.OutletArea, b.Angle).
		Step("Force on fluid, y", "Fy = ṁ·U₂·sinθ − p₂·A₂·sinθ", "%s·%s·sin %s° − %s·%s·sin %s°", r.Fy, "N",
			r.MassFlow, r.OutletVelocity, b.Angle, r.OutletPressure, r.OutletArea, b.Angle).
		Step("Resultant reaction", "|R| = √(Rx² + Ry²)", "√(%s² + %s²)", r.Magnitude, "N", r.Rx, r.Ry).
		Step("Direction of reaction", "φ = atan2(Ry, Rx)", "atan2(%s, %s)", r.Direction, "°", r.Ry, r.Rx)

	s.Out("outlet_pressure", "Outlet pressure", "p₂", r.OutletPressure/1000, "kPa").
		Out("rx", "Reaction, x", "Rx", r.Rx/1000, "kN").
		Out("ry", "Reaction, y", "Ry", r.Ry/1000, "kN").
		Out("magnitude", "Resultant reaction", "|R|", r.Magnitude/1000, "kN").
		Out("direction", "Direction", "φ", r.Direction, "°")
	return s
}

func flowSteps(s *Sheet, p pipeflow.FlowParameters, r *pipeflow.FlowResult) {
	s.Step("Flow area", "A = π·D²/4", "π·%s²/4", r.Area, "m²", p.Diameter)
	if p.Velocity == 0 {
		s.Step("Mean velocity", "V = Q/A", "%s/%s", r.Velocity, "m/s", p.FlowRate, r.Area)
	}
	if p.Viscosity == 0 && p.KinematicViscosity != 0 {
		s.Step("Reynolds number", "Re = V·D/ν", "%s·%s/%s", r.Reynolds, "", r.Velocity, p.Diameter, p.KinematicViscosity)
	} else {
		s.Step("Reynolds number", "Re = ρ·V·D/μ", "%s·%s·%s/%s", r.Reynolds, "", p.Density, r.Velocity, p.Diameter, p.Viscosity)
	}
	s.Note("Re = %s is %s (laminar below %s, turbulent above %s)", Num(r.Reynolds), r.Regime,
		Num(pipeflow.LaminarLimit), Num(pipeflow.TurbulentLimit))

	if r.Regime == pipeflow.Laminar {
		s.Step("Friction factor (laminar)", "f = 64/Re", "64/%s", r.FrictionFactor, "", r.Reynolds)
		return
	}
	a, b := pipeflow.ChurchillTerms(r.Reynolds, r.RelativeRoughness)
	s.Step("Relative roughness", "ε/D", "", r.RelativeRoughness, "").
		Step("Churchill term A", "A = [2.457·ln(1/((7/Re)^0.9 + 0.27·ε/D))]^16", "", a, "").
		Step("Churchill term B", "B = (37530/Re)^16", "(37530/%s)^16", b, "", r.Reynolds).
		Step("Friction factor (Churchill)", "f = 8·[(8/Re)^12 + 1/(A + B)^1.5]^(1/12)", "", r.FrictionFactor, "")
}

func flowInputs(s *Sheet, p pipeflow.FlowParameters) {
	if p.Density != 0 {
		s.In("density", "Density", "ρ", p.Density, "kg/m³")
	}
	if p.Viscosity == 0 && p.KinematicViscosity != 0 {
		s.In("kinematic_viscosity", "Kinematic viscosity", "ν", p.KinematicViscosity, "m²/s")
	} else {
		s.In("viscosity", "Dynamic viscosity", "μ", p.Viscosity, "Pa·s")
	}
	if p.Velocity != 0 {
		s.In("velocity", "Mean velocity", "V", p.Velocity, "m/s")
	} else {
		s.In("flow_rate", "Flow rate", "Q", p.FlowRate, "m³/s")
	}
}

func flowOutputs(s *Sheet, r *pipeflow.FlowResult) {
	s.Out("velocity", "Mean velocity", "V", r.Velocity, "m/s").
		Out("flow_rate", "Flow rate", "Q", r.FlowRate, "m³/s").
		Out("reynolds", "Reynolds number", "Re", r.Reynolds, "").
		Out("friction_factor", "Friction factor", "f", r.FrictionFactor, "")
}

// PipeFlow builds the worked solution for flow classification in a pipe of
// absolute roughness eps.
func PipeFlow(p pipeflow.FlowParameters, eps float64, r *pipeflow.FlowResult) *Sheet {
	s := New("pipe-flow", "Pipe Flow Regime and Friction Factor")
	s.In("diameter", "Pipe diameter", "D", p.Diameter, "m").
		In("roughness", "Absolute roughness", "ε", eps, "m")
	flowInputs(s, p)
	flowSteps(s, p, r)
	flowOutputs(s, r)
	return s
}

func lossSteps(s *Sheet, run pipeflow.PipeRun, r *pipeflow.SystemResult) {
	var sum float64
	for _, f := range run.Fittings {
		sum += f.Contribution()
	}
	s.Step("Equivalent length", "Lₑ = L + D·Σ(n·q)", "%s + %s·%s", r.Loss.EquivalentLength, "m", run.Length, run.Diameter, sum).
		Step("Head loss", "h = f·(4·Lₑ/D)·V²/(2g)", "%s·(4·%s/%s)·%s²/(2·%s)", r.Loss.TotalLoss, "m",
			r.Flow.FrictionFactor, r.Loss.EquivalentLength, run.Diameter, r.Flow.Velocity, fluid.Gravity)
}

func runInputs(s *Sheet, run pipeflow.PipeRun) {
	s.In("length", "Pipe length", "L", run.Length, "m").
		In("diameter", "Pipe diameter", "D", run.Diameter, "m").
		In("roughness", "Absolute roughness", "ε", run.Roughness, "m")
	for _, f := range run.Fittings {
		if f.Quantity == 0 {
			continue
		}
		s.Note("%d × %s (Lₑ/D = %s)", f.Quantity, f.Name, Num(f.Ratio))
	}
}

// PipeSystem builds the worked solution for head loss through a pipe run
func PipeSystem(run pipeflow.PipeRun, p pipeflow.FlowParameters, r *pipeflow.SystemResult) *Sheet {
	s := New("pipe-headloss", "Pipe Head Loss with Fittings")
	runInputs(s, run)
	flowInputs(s, p)
	p.Diameter = run.Diameter
	flowSteps(s, p, &r.Flow)
	lossSteps(s, run, r)
	s.Step("Pressure drop", "Δp = ρ·g·h", "%s·%s·%s", r.PressureDrop, "Pa", p.Density, fluid.Gravity, r.Loss.TotalLoss)

	flowOutputs(s, &r.Flow)
	s.Out("equivalent_length", "Equivalent length", "Lₑ", r.Loss.EquivalentLength, "m").
		Out("pipe_loss", "Pipe-only loss", "h_pipe", r.Loss.PipeLoss, "m").
		Out("fittings_loss", "Fittings loss", "h_fit", r.Loss.FittingsLoss, "m").
		Out("total_loss", "Total head loss", "h", r.Loss.TotalLoss, "m").
		Out("pressure_drop", "Pressure drop", "Δp", r.PressureDrop/1000, "kPa")
	return s
}

// Pump builds the worked solution for pump sizing
func Pump(sys pump.System, r *pump.Result) *Sheet {
	s := New("pump", "Pump Head and Power")
	p := pipeflow.FlowParameters{Density: sys.Density, Viscosity: sys.Viscosity, FlowRate: sys.FlowRate, Diameter: sys.Run.Diameter}
	runInputs(s, sys.Run)
	flowInputs(s, p)
	s.In("static_lift", "Static lift", "Δz", sys.StaticLift, "m").
		In("pressure_difference", "Pressure difference", "Δp", sys.PressureDifference, "Pa").
		In("efficiency", "Pump efficiency", "η", sys.Efficiency, "")

	flowSteps(s, p, &r.Pipe.Flow)
	lossSteps(s, sys.Run, &r.Pipe)
	s.Step("Pressure head", "Δp/(ρ·g)", "%s/(%s·%s)", r.PressureHead, "m", sys.PressureDifference, sys.Density, fluid.Gravity).
		Step("Total dynamic head", "H = Δz + Δp/(ρg) + h_loss", "%s + %s + %s", r.TotalHead, "m", r.StaticHead, r.PressureHead, r.FrictionHead).
		Step("Hydraulic power", "P_h = ρ·g·Q·H", "%s·%s·%s·%s", r.HydraulicPower, "W", sys.Density, fluid.Gravity, sys.FlowRate, r.TotalHead).
		Step("Shaft power", "P_s = P_h/η", "%s/%s", r.ShaftPower, "W", r.HydraulicPower, sys.Efficiency)

	flowOutputs(s, &r.Pipe.Flow)
	s.Out("friction_head", "Friction head", "h_loss", r.FrictionHead, "m").
		Out("total_head", "Total dynamic head", "H", r.TotalHead, "m").
		Out("hydraulic_power", "Hydraulic power", "P_h", r.HydraulicPower/1000, "kW").
		Out("shaft_power", "Shaft power", "P_s", r.ShaftPower/1000, "kW")
	return s
}

// Turbine builds the worked solution for a hydro turbine
func Turbine(sys turbine.System, r *turbine.Result) *Sheet {
	s := New("turbine", "Hydro Turbine Power")
	p := pipeflow.FlowParameters{Density: sys.Density, Viscosity: sys.Viscosity, FlowRate: sys.FlowRate, Diameter: sys.Penstock.Diameter}
	runInputs(s, sys.Penstock)
	flowInputs(s, p)
	s.In("gross_head", "Gross head", "H_g", sys.GrossHead, "m").
		In("efficiency", "Turbine efficiency", "η", sys.Efficiency, "").
		In("hours", "Operating hours", "t", r.Hours, "h")

	flowSteps(s, p, &r.Pipe.Flow)
	lossSteps(s, sys.Penstock, &r.Pipe)
	s.Step("Net head", "H_n = H_g − h_loss", "%s − %s", r.NetHead, "m", sys.GrossHead, r.HeadLoss).
		Step("Power output", "P = η·ρ·g·Q·H_n", "%s·%s·%s·%s·%s", r.Power, "W", sys.Efficiency, sys.Density, fluid.Gravity, sys.FlowRate, r.NetHead).
		Step("Energy", "E = P·t", "%s MW·%s h", r.Energy, "MWh", r.Power/1e6, r.Hours)

	flowOutputs(s, &r.Pipe.Flow)
	s.Out("head_loss", "Penstock loss", "h_loss", r.HeadLoss, "m").
		Out("net_head", "Net head", "H_n", r.NetHead, "m").
		Out("head_efficiency", "Head efficiency", "H_n/H_g", r.HeadEfficiency, "").
		Out("power", "Power output", "P", r.Power/1000, "kW").
		Out("power_mw", "Power output", "P", r.Power/1e6, "MW").
		Out("energy", "Energy", "E", r.Energy, "MWh")
	return s
}
