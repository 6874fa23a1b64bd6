package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/alexiusacademia/gofluid/internal/batch"
	"github.com/spf13/cobra"
)

var (
	batchInput    string
	batchOutput   string
	batchTemplate string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate many pipe runs from an Excel workbook",
	Long: `Read pipe runs from the first sheet of an .xlsx workbook, evaluate
the head loss of each, and write the results to a new workbook.

Columns (header row, any order, case-insensitive):
  name, diameter, length, roughness, flow_rate, velocity,
  density, viscosity, fittings

Fittings are written as "elbow-90:4; gate-valve:2". Blank density and
viscosity default to water. Rows that fail are kept in the output with
their error in the status column.

Examples:
  # Start from an empty template
  gofluid batch --template runs.xlsx

  gofluid batch --input runs.xlsx --output results.xlsx`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Workbook of pipe runs")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "results.xlsx", "Workbook to write the results to")
	batchCmd.Flags().StringVar(&batchTemplate, "template", "", "Write an empty input template and exit")
	batchCmd.MarkFlagsOneRequired("input", "template")
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchTemplate != "" {
		if err := writeFile(batchTemplate, batch.Template); err != nil {
			return err
		}
		fmt.Printf("Template written to: %s\n", batchTemplate)
		return nil
	}

	in, err := os.Open(batchInput)
	if err != nil {
		return err
	}
	defer in.Close()

	rows, err := batch.Read(in)
	if err != nil {
		return err
	}
	outcomes := batch.Evaluate(rows)
	if err := writeFile(batchOutput, func(w io.Writer) error { return batch.Write(w, outcomes) }); err != nil {
		return err
	}

	fmt.Println()
	w := newTable()
	fmt.Fprintf(w, "  Line\tRun\tRe\th (m)\tStatus\n")
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(w, "  %d\t%s\t-\t-\t%v\n", o.Row.Line, o.Row.Run.Name, o.Err)
			continue
		}
		fmt.Fprintf(w, "  %d\t%s\t%.0f\t%.4f\tok\n", o.Row.Line, o.Row.Run.Name, o.Result.Flow.Reynolds, o.Result.Loss.TotalLoss)
	}
	w.Flush()
	fmt.Println()
	fmt.Printf("  %d runs evaluated, %d failed\n", len(outcomes), batch.Failed(outcomes))
	fmt.Printf("  Results written to: %s\n", batchOutput)
	fmt.Println()
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
