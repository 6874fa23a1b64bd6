package fluid

import (
	"errors"
	"math"
	"testing"
)

func TestRadiansRightAngle(t *testing.T) {
	if got := Radians(90); got != math.Pi/2 {
		t.Fatalf("Radians(90) = %v, want π/2", got)
	}
	if got := math.Sin(Radians(90)); got != 1 {
		t.Fatalf("sin(90°) = %v, want exactly 1", got)
	}
	if got := Degrees(math.Pi); math.Abs(got-180) > 1e-12 {
		t.Fatalf("Degrees(π) = %v", got)
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"positive ok", Positive("rho", 1000), false},
		{"positive zero", Positive("rho", 0), true},
		{"positive nan", Positive("rho", math.NaN()), true},
		{"nonnegative zero", NonNegative("roughness", 0), false},
		{"nonnegative negative", NonNegative("roughness", -1e-6), true},
		{"range low edge", InRange("theta", 0, 0, 90), false},
		{"range high edge", InRange("theta", 90, 0, 90), false},
		{"range outside", InRange("theta", 90.5, 0, 90), true},
		{"efficiency one", Efficiency("eta", 1), false},
		{"efficiency zero", Efficiency("eta", 0), true},
		{"finite inf", Finite("p1", math.Inf(1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if (tt.err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", tt.err, tt.wantErr)
			}
			if tt.err == nil {
				return
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("error %v does not wrap ErrInvalidInput", tt.err)
			}
			var ie *InputError
			if !errors.As(tt.err, &ie) {
				t.Errorf("error %v is not an *InputError", tt.err)
			}
		})
	}
}

func TestFirstError(t *testing.T) {
	if err := FirstError(nil, nil); err != nil {
		t.Fatalf("FirstError(nil, nil) = %v", err)
	}
	want := Positive("d", 0)
	if err := FirstError(nil, want, Positive("rho", -1)); err != want {
		t.Fatalf("FirstError returned %v, want %v", err, want)
	}
}

func TestLookupFluid(t *testing.T) {
	f, ok := LookupFluid(" Water ")
	if !ok {
		t.Fatal("water preset not found")
	}
	if f.Density != WaterDensity {
		t.Errorf("water density = %v", f.Density)
	}
	if nu := f.KinematicViscosity(); math.Abs(nu-1.004e-6) > 1e-8 {
		t.Errorf("water ν = %v", nu)
	}
	if _, ok := LookupFluid("lava"); ok {
		t.Error("unexpected preset for lava")
	}
	if keys := FluidKeys(); len(keys) != len(Fluids) {
		t.Errorf("FluidKeys len = %d, want %d", len(keys), len(Fluids))
	}
}
