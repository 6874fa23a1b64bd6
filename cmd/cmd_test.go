package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gofluid/internal/config"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

func TestBuildRunFromFlags(t *testing.T) {
	runFile, runLength, runDiameter, runRoughness = "", 200, 0.15, 4.5e-5
	runFittings = []string{"elbow-90:4", "gate-valve:2", "check-valve"}
	t.Cleanup(func() { runFittings = nil })

	run, err := buildRun("main")
	if err != nil {
		t.Fatal(err)
	}
	if len(run.Fittings) != 3 {
		t.Fatalf("%d fittings", len(run.Fittings))
	}
	if le := run.EquivalentLength(); le < 235.39 || le > 235.41 {
		t.Errorf("Le = %v, want 235.4", le)
	}

	runFittings = []string{"weir:1"}
	if _, err := buildRun("bad"); err == nil {
		t.Error("unknown fitting accepted")
	}
}

func TestBuildRunFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	doc := `{"length": 100, "diameter": 0.1, "fittings": [{"name": "Strainer", "ratio": 75, "quantity": 1}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	runFile = path
	t.Cleanup(func() { runFile = "" })

	run, err := buildRun("")
	if err != nil {
		t.Fatal(err)
	}
	if fl := run.FittingsLength(); fl < 7.4999 || fl > 7.5001 {
		t.Errorf("fittings length = %v, want 7.5", fl)
	}
}

func TestFillFluid(t *testing.T) {
	cfg = config.Default()
	fluidFlag = ""

	var rho, mu float64
	if err := fillFluid(&rho, &mu); err != nil {
		t.Fatal(err)
	}
	if rho != 998 || mu != 1.002e-3 {
		t.Errorf("default fluid gave ρ=%v μ=%v", rho, mu)
	}

	fluidFlag = "mercury"
	t.Cleanup(func() { fluidFlag = "" })
	rho, mu = 0, 2e-3
	if err := fillFluid(&rho, &mu); err != nil {
		t.Fatal(err)
	}
	if rho != 13600 || mu != 2e-3 {
		t.Errorf("explicit viscosity overwritten: ρ=%v μ=%v", rho, mu)
	}

	fluidFlag = "lava"
	rho = 0
	if err := fillFluid(&rho, &mu); err == nil {
		t.Error("unknown fluid accepted")
	}
}

func TestCommandErrorsReachExecute(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		wallDepth, wallWidth = 0, 0
		manoPreset = ""
	})

	rootCmd.SetArgs([]string{"hydrostatic", "vertical", "--depth=-5", "--width=3"})
	err := rootCmd.Execute()
	if !errors.Is(err, fluid.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if !strings.Contains(err.Error(), "depth") {
		t.Errorf("error %q does not name the field", err)
	}

	rootCmd.SetArgs([]string{"hydrostatic", "vertical", "--depth=5", "--width=3"})
	if err := rootCmd.Execute(); err != nil {
		t.Errorf("valid wall failed: %v", err)
	}

	rootCmd.SetArgs([]string{"manometer", "--preset", "glycerine-air"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestPipeHelpMatchesRegimeLimit(t *testing.T) {
	want := fmt.Sprintf("64/Re below Re = %g", pipeflow.LaminarLimit)
	if !strings.Contains(pipeCmd.Long, want) {
		t.Errorf("pipe help does not state %q", want)
	}
}
