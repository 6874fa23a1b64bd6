package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/history"
	"github.com/alexiusacademia/gofluid/internal/report"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

// Output flags shared by every calculator command
var (
	outJSON    bool
	outPDF     string
	outRecord  bool
	outImage   string
	outDiagram bool
)

func addOutputFlags(c *cobra.Command, diagrams bool) {
	c.Flags().BoolVar(&outJSON, "json", false, "Print input, result and worked solution as JSON")
	c.Flags().StringVar(&outPDF, "pdf", "", "Write the worked solution to a PDF report")
	c.Flags().BoolVar(&outRecord, "record", false, "Save the calculation to the history database")
	if diagrams {
		c.Flags().BoolVarP(&outDiagram, "diagram", "d", false, "Show ASCII diagram")
		c.Flags().StringVarP(&outImage, "output", "o", "", "Export diagram to image file (PNG, SVG, PDF)")
	}
}

// finish prints the worked solution and handles the shared output flags
func finish(sheet *worksheet.Sheet, input, result any) error {
	if outJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"input": input, "result": result, "sheet": sheet}); err != nil {
			return err
		}
	} else if err := sheet.WriteText(os.Stdout); err != nil {
		return err
	}

	if outPDF != "" {
		opt := report.Options{Project: cfg.Report.Project, Author: cfg.Report.Author, Date: time.Now()}
		if err := report.WriteFile(outPDF, sheet, opt); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to: %s\n", outPDF)
	}

	if outRecord {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		rec, err := store.Save(context.Background(), sheet, input)
		if err != nil {
			return fmt.Errorf("record calculation: %w", err)
		}
		fmt.Printf("Recorded as: %s\n", rec.ID)
	}
	return nil
}

// exported reports the outcome of an image export
func exported(err error) error {
	if err != nil {
		return fmt.Errorf("export diagram: %w", err)
	}
	fmt.Printf("Diagram exported to: %s\n", outImage)
	return nil
}

func openHistory() (*history.Store, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled in the configuration")
	}
	log.WithField("driver", cfg.History.Driver).Debug("opening history")
	return history.Open(cfg.History.Driver, cfg.History.DSN)
}

// fluidFlag is the --fluid preset shared by the pipe and machine commands
var fluidFlag string

func addFluidFlag(c *cobra.Command) {
	c.Flags().StringVar(&fluidFlag, "fluid", "", "Fluid preset for unset density/viscosity (default from config)")
}

// fillFluid fills unset density and viscosity from --fluid or the configured default
func fillFluid(density, viscosity *float64) error {
	if *density != 0 && *viscosity != 0 {
		return nil
	}
	key := fluidFlag
	if key == "" {
		key = cfg.Physics.DefaultFluid
	}
	f, ok := fluid.LookupFluid(key)
	if !ok {
		return fmt.Errorf("unknown fluid %q (available: %v)", key, fluid.FluidKeys())
	}
	if *density == 0 {
		*density = f.Density
	}
	if *viscosity == 0 {
		*viscosity = f.Viscosity
	}
	return nil
}

// gravityOr returns the configured gravity when g is unset
func gravityOr(g float64) float64 {
	if g == 0 {
		return cfg.Physics.Gravity
	}
	return g
}
