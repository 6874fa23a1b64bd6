package worksheet

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
)

// WriteText renders the sheet as a console report
func (s *Sheet) WriteText(out io.Writer) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(heavyRule + "\n")
	fmt.Fprintf(&b, "     %s\n", strings.ToUpper(s.Title))
	b.WriteString(heavyRule + "\n\n")

	section := func(title string, qs []Quantity) {
		if len(qs) == 0 {
			return
		}
		b.WriteString(title + ":\n")
		b.WriteString(lightRule + "\n")
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, q := range qs {
			label := q.Label
			if q.Symbol != "" {
				label = fmt.Sprintf("%s (%s)", q.Label, q.Symbol)
			}
			fmt.Fprintf(w, "  %s:\t%s\n", label, q.Text())
		}
		w.Flush()
		b.WriteString("\n")
	}

	section("INPUT DATA", s.Inputs)

	if len(s.Steps) > 0 {
		b.WriteString("SOLUTION:\n")
		b.WriteString(lightRule + "\n")
		for i, st := range s.Steps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, st.Title)
			fmt.Fprintf(&b, "     %s\n", st.String())
		}
		b.WriteString("\n")
	}

	section("RESULTS", s.Results)

	if len(s.Notes) > 0 {
		b.WriteString("NOTES:\n")
		b.WriteString(lightRule + "\n")
		for _, n := range s.Notes {
			fmt.Fprintf(&b, "  • %s\n", n)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}
