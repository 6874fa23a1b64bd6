package transition

import (
	"math"
	"testing"
)

func TestEndpoints(t *testing.T) {
	tr, err := New(10, 20, 4)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Value(0) != 10 {
		t.Errorf("Value(0) = %v", tr.Value(0))
	}
	if tr.Value(4) != 20 || tr.Value(9) != 20 {
		t.Errorf("end value = %v / %v", tr.Value(4), tr.Value(9))
	}
	if tr.Value(-3) != 10 {
		t.Errorf("negative step = %v", tr.Value(-3))
	}
	if tr.Done(3) || !tr.Done(4) {
		t.Error("Done boundary wrong")
	}
	if got := tr.Value(2); math.Abs(got-15) > 1e-12 {
		t.Errorf("midpoint = %v", got)
	}
}

func TestFrames(t *testing.T) {
	tr, _ := New(0, 1, 5)
	f := tr.Frames()
	if len(f) != 6 {
		t.Fatalf("len = %d", len(f))
	}
	for i := 1; i < len(f); i++ {
		if f[i] < f[i-1] {
			t.Errorf("frames not monotone at %d: %v", i, f)
		}
	}
	if f[len(f)-1] != 1 {
		t.Errorf("last frame = %v", f[len(f)-1])
	}
}

func TestDefaultsAndRejects(t *testing.T) {
	tr, err := New(1, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Steps != DefaultSteps {
		t.Errorf("steps = %d", tr.Steps)
	}
	if _, err := New(1, 2, -1); err == nil {
		t.Error("negative steps accepted")
	}
	if got := (Transition{From: 1, To: 2}).Frames(); len(got) != 1 || got[0] != 2 {
		t.Errorf("zero-step frames = %v", got)
	}
}

func TestSet(t *testing.T) {
	s, err := NewSet(map[string]float64{"force": 100}, map[string]float64{"force": 200, "moment": 30}, 2)
	if err != nil {
		t.Fatal(err)
	}
	f := s.Frame(1)
	if f["force"] != 150 {
		t.Errorf("force = %v", f["force"])
	}
	if f["moment"] != 30 {
		t.Errorf("new member should start at target, got %v", f["moment"])
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
}
