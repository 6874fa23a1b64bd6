// Package batch evaluates many pipe runs from a spreadsheet and writes the
// results back as a workbook.
package batch

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

// Input columns, matched case-insensitively against the header row
const (
	ColName      = "name"
	ColDiameter  = "diameter"
	ColLength    = "length"
	ColRoughness = "roughness"
	ColFlowRate  = "flow_rate"
	ColVelocity  = "velocity"
	ColDensity   = "density"
	ColViscosity = "viscosity"
	ColFittings  = "fittings"
)

// InputColumns is the header of a batch template
var InputColumns = []string{ColName, ColDiameter, ColLength, ColRoughness, ColFlowRate, ColVelocity, ColDensity, ColViscosity, ColFittings}

var resultColumns = []string{"velocity_ms", "reynolds", "regime", "friction_factor", "equivalent_length_m", "head_loss_m", "pressure_drop_kpa", "status"}

// Row is one pipe run read from a sheet. Err is set when the row could not be
// parsed; such rows are reported, not evaluated.
type Row struct {
	Line int
	Run  pipeflow.PipeRun
	Flow pipeflow.FlowParameters
	Err  error
}

// Outcome is the evaluation of a row
type Outcome struct {
	Row    Row
	Result *pipeflow.SystemResult
	Err    error
}

// Read parses the first sheet of a workbook. Blank density and viscosity
// default to water at 20 °C.
func Read(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{ColDiameter, ColLength} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var out []Row
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := parseRow(rows[i], index)
		row.Line = i + 1
		out = append(out, row)
	}
	return out, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseRow(cells []string, index map[string]int) Row {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}
	num := func(col string, def float64) (float64, error) {
		s := get(col)
		if s == "" {
			return def, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("column %s: %w", col, err)
		}
		return v, nil
	}

	var row Row
	row.Run.Name = get(ColName)

	var err error
	fields := []struct {
		col string
		def float64
		dst *float64
	}{
		{ColDiameter, 0, &row.Run.Diameter},
		{ColLength, 0, &row.Run.Length},
		{ColRoughness, 0, &row.Run.Roughness},
		{ColFlowRate, 0, &row.Flow.FlowRate},
		{ColVelocity, 0, &row.Flow.Velocity},
		{ColDensity, fluid.WaterDensity, &row.Flow.Density},
		{ColViscosity, fluid.WaterViscosity, &row.Flow.Viscosity},
	}
	for _, fd := range fields {
		if *fd.dst, err = num(fd.col, fd.def); err != nil {
			row.Err = err
			return row
		}
	}
	row.Flow.Diameter = row.Run.Diameter

	row.Run.Fittings, row.Err = ParseFittings(get(ColFittings))
	return row
}

// ParseFittings reads a fitting list such as "elbow-90:4; gate-valve:2".
// A key without a count means one fitting.
func ParseFittings(s string) ([]pipeflow.FittingCount, error) {
	var out []pipeflow.FittingCount
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' }) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, qty := part, 1
		if k, q, ok := strings.Cut(part, ":"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(q))
			if err != nil {
				return nil, fmt.Errorf("fitting %q: bad quantity", part)
			}
			key, qty = strings.TrimSpace(k), n
		}
		fc, err := pipeflow.NewFittingCount(key, qty)
		if err != nil {
			return nil, err
		}
		out = append(out, fc)
	}
	return out, nil
}

// Evaluate runs every parsed row through pipeflow.Evaluate
func Evaluate(rows []Row) []Outcome {
	out := make([]Outcome, len(rows))
	for i, row := range rows {
		out[i].Row = row
		if row.Err != nil {
			out[i].Err = row.Err
			continue
		}
		out[i].Result, out[i].Err = pipeflow.Evaluate(row.Run, row.Flow)
		if out[i].Err != nil {
			log.WithFields(log.Fields{"line": row.Line, "name": row.Run.Name}).WithError(out[i].Err).Debug("batch row rejected")
		}
	}
	return out
}

// Failed counts the outcomes that carry an error
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Write stores the outcomes as a workbook: the input columns followed by the
// computed ones and a status column.
func Write(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, len(InputColumns)+len(resultColumns))
	for _, c := range InputColumns {
		header = append(header, c)
	}
	for _, c := range resultColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, len(header)); err != nil {
		return err
	}

	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			o.Row.Run.Name, o.Row.Run.Diameter, o.Row.Run.Length, o.Row.Run.Roughness,
			o.Row.Flow.FlowRate, o.Row.Flow.Velocity, o.Row.Flow.Density, o.Row.Flow.Viscosity,
			FormatFittings(o.Row.Run.Fittings),
		}
		if o.Err != nil {
			values = append(values, "", "", "", "", "", "", "", o.Err.Error())
		} else {
			r := o.Result
			values = append(values,
				r.Flow.Velocity, r.Flow.Reynolds, string(r.Flow.Regime), r.Flow.FrictionFactor,
				r.Loss.EquivalentLength, r.Loss.TotalLoss, r.PressureDrop/1000, "ok")
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// Template writes an empty batch workbook with one example row
func Template(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(InputColumns))
	for i, c := range InputColumns {
		header[i] = c
	}
	example := []interface{}{"main line", 0.15, 200, 4.5e-5, 0.02, "", fluid.WaterDensity, fluid.WaterViscosity, "elbow-90:4; gate-valve:2"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A2", &example); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, len(header)); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

// FormatFittings is the inverse of ParseFittings
func FormatFittings(fs []pipeflow.FittingCount) string {
	parts := make([]string, 0, len(fs))
	for _, fc := range fs {
		parts = append(parts, fmt.Sprintf("%s:%d", fc.Key, fc.Quantity))
	}
	return strings.Join(parts, "; ")
}

func styleHeader(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", lastCol, 16)
}
