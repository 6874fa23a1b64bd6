// Package worksheet turns calculator results into worked solutions: the inputs,
// the results and each formula with its numbers substituted. A Sheet is the
// single source rendered as console text, JSON and PDF.
package worksheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Quantity is a labelled value with its unit
type Quantity struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Symbol string  `json:"symbol,omitempty"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
}

// Text returns the value and unit formatted for display
func (q Quantity) Text() string {
	if q.Unit == "" {
		return Num(q.Value)
	}
	return Num(q.Value) + " " + q.Unit
}

// Step is one line of a worked solution
type Step struct {
	Title        string  `json:"title"`
	Formula      string  `json:"formula"`
	Substitution string  `json:"substitution,omitempty"`
	Value        float64 `json:"value"`
	Unit         string  `json:"unit,omitempty"`
}

func (s Step) String() string {
	var b strings.Builder
	b.WriteString(s.Formula)
	if s.Substitution != "" {
		b.WriteString(" = ")
		b.WriteString(s.Substitution)
	}
	b.WriteString(" = ")
	b.WriteString(Num(s.Value))
	if s.Unit != "" {
		b.WriteString(" ")
		b.WriteString(s.Unit)
	}
	return b.String()
}

// Sheet is a worked solution for one calculation
type Sheet struct {
	Calculator string     `json:"calculator"`
	Title      string     `json:"title"`
	Inputs     []Quantity `json:"inputs"`
	Results    []Quantity `json:"results"`
	Steps      []Step     `json:"steps"`
	Notes      []string   `json:"notes,omitempty"`
}

// New starts an empty sheet
func New(calculator, title string) *Sheet {
	return &Sheet{Calculator: calculator, Title: title}
}

// In appends an input quantity
func (s *Sheet) In(key, label, symbol string, v float64, unit string) *Sheet {
	s.Inputs = append(s.Inputs, Quantity{Key: key, Label: label, Symbol: symbol, Value: v, Unit: unit})
	return s
}

// Out appends a result quantity
func (s *Sheet) Out(key, label, symbol string, v float64, unit string) *Sheet {
	s.Results = append(s.Results, Quantity{Key: key, Label: label, Symbol: symbol, Value: v, Unit: unit})
	return s
}

// Step appends a worked step. args are substituted into the numeric form with
// %s verbs, each formatted by Num.
func (s *Sheet) Step(title, formula, substitution string, v float64, unit string, args ...float64) *Sheet {
	if len(args) > 0 {
		parts := make([]any, len(args))
		for i, a := range args {
			parts[i] = Num(a)
		}
		substitution = fmt.Sprintf(substitution, parts...)
	}
	s.Steps = append(s.Steps, Step{Title: title, Formula: formula, Substitution: substitution, Value: v, Unit: unit})
	return s
}

// Note appends a free-text remark
func (s *Sheet) Note(format string, args ...any) *Sheet {
	s.Notes = append(s.Notes, fmt.Sprintf(format, args...))
	return s
}

// Result looks up a result by key
func (s *Sheet) Result(key string) (Quantity, bool) {
	for _, q := range s.Results {
		if q.Key == key {
			return q, true
		}
	}
	return Quantity{}, false
}

// Values returns the results keyed by Key, the shape streamed to live clients
func (s *Sheet) Values() map[string]float64 {
	out := make(map[string]float64, len(s.Results))
	for _, q := range s.Results {
		out[q.Key] = q.Value
	}
	return out
}

// Num formats a number for a worksheet: thousands separators, a precision that
// follows the magnitude, and exponent form for very small values.
func Num(v float64) string {
	a := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case math.IsNaN(v) || math.IsInf(v, 0):
		return strconv.FormatFloat(v, 'g', -1, 64)
	case a >= 1e4:
		return roundComma(v, 1)
	case a >= 1:
		return roundComma(v, 4)
	case a >= 1e-3:
		return roundComma(v, 6)
	default:
		return strconv.FormatFloat(v, 'e', 3, 64)
	}
}

func roundComma(v float64, digits int) string {
	scale := math.Pow(10, float64(digits))
	return humanize.CommafWithDigits(math.Round(v*scale)/scale, digits)
}
