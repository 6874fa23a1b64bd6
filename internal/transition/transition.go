// Package transition interpolates a displayed value from its previous state to
// a newly computed target over a fixed number of frames.
package transition

import "fmt"

// DefaultSteps is used when a transition is created without a frame count
const DefaultSteps = 20

// Transition is a linear ramp from From to To. Step 0 shows From and step
// Steps shows To; it holds no state beyond its fields.
type Transition struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Steps int     `json:"steps"`
}

// New builds a transition. steps == 0 selects DefaultSteps.
func New(from, to float64, steps int) (Transition, error) {
	if steps < 0 {
		return Transition{}, fmt.Errorf("invalid steps: %d (must be >= 0)", steps)
	}
	if steps == 0 {
		steps = DefaultSteps
	}
	return Transition{From: from, To: to, Steps: steps}, nil
}

// Progress is the fraction of the ramp completed at step, clamped to [0, 1]
func (t Transition) Progress(step int) float64 {
	if t.Steps <= 0 || step >= t.Steps {
		return 1
	}
	if step <= 0 {
		return 0
	}
	return float64(step) / float64(t.Steps)
}

// Value returns the displayed value at step
func (t Transition) Value(step int) float64 {
	p := t.Progress(step)
	if p == 1 {
		return t.To
	}
	return t.From + (t.To-t.From)*p
}

// Done reports whether step has reached the target
func (t Transition) Done(step int) bool {
	return t.Progress(step) == 1
}

// Frames returns every displayed value from step 0 through Steps inclusive
func (t Transition) Frames() []float64 {
	n := t.Steps
	if n <= 0 {
		return []float64{t.To}
	}
	frames := make([]float64, n+1)
	for i := range frames {
		frames[i] = t.Value(i)
	}
	return frames
}

// Set groups named transitions that advance together, one per displayed
// quantity of a result.
type Set map[string]Transition

// NewSet pairs previous and next values by name. Names missing from prev start
// at their target.
func NewSet(prev, next map[string]float64, steps int) (Set, error) {
	s := make(Set, len(next))
	for name, to := range next {
		from, ok := prev[name]
		if !ok {
			from = to
		}
		tr, err := New(from, to, steps)
		if err != nil {
			return nil, err
		}
		s[name] = tr
	}
	return s, nil
}

// Frame returns the values of every member at step
func (s Set) Frame(step int) map[string]float64 {
	out := make(map[string]float64, len(s))
	for name, tr := range s {
		out[name] = tr.Value(step)
	}
	return out
}

// Len is the number of steps of the longest member
func (s Set) Len() int {
	n := 0
	for _, tr := range s {
		if tr.Steps > n {
			n = tr.Steps
		}
	}
	return n
}
