package history

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return s
}

func sheet(calc string, force float64) *worksheet.Sheet {
	return worksheet.New(calc, "Test "+calc).In("depth", "Depth", "D", 5, "m").Out("force", "Force", "F", force, "kN")
}

func TestSaveGet(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec, err := s.Save(ctx, sheet("hydrostatic-vertical", 367.875), map[string]float64{"depth": 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.ID) != 36 {
		t.Errorf("id %q is not a uuid", rec.ID)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Calculator != "hydrostatic-vertical" || !got.Created.Equal(rec.Created) {
		t.Errorf("got %+v", got)
	}
	ws, err := got.Worksheet()
	if err != nil {
		t.Fatal(err)
	}
	if ws.Values()["force"] != 367.875 {
		t.Errorf("sheet values %v", ws.Values())
	}
	if !strings.Contains(got.Input, `"depth":5`) {
		t.Errorf("input %s", got.Input)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: %v", err)
	}
}

func TestSaveHonoursContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Save(ctx, sheet("pitot", 4.4), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled save: %v", err)
	}
	recs, err := s.List(context.Background(), "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Errorf("%d records stored by a cancelled save", len(recs))
	}
}

func TestListOrderAndFilter(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i, calc := range []string{"pitot", "bend", "pitot"} {
		if _, err := s.Save(ctx, sheet(calc, float64(i)), nil); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Created.After(all[i-1].Created) {
			t.Error("records not newest first")
		}
	}

	pitots, err := s.List(ctx, "pitot", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pitots) != 2 {
		t.Errorf("pitot records = %d", len(pitots))
	}

	one, err := s.List(ctx, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 || one[0].ID != all[0].ID {
		t.Errorf("limit 1 = %+v", one)
	}
}

func TestDeletePrune(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	var ids []string
	for i := 0; i < 4; i++ {
		rec, err := s.Save(ctx, sheet("manometer", float64(i)), nil)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, rec.ID)
	}

	if err := s.Delete(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, ids[0]); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}

	n, err := s.Prune(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("pruned %d, want 2", n)
	}
	left, _ := s.List(ctx, "", 0)
	if len(left) != 1 || left[0].ID != ids[3] {
		t.Errorf("kept %+v, want newest", left)
	}
}

func TestRecordJSONAndAge(t *testing.T) {
	r := Record{
		ID:         "x",
		Calculator: "pitot",
		Input:      `{"height":0.1}`,
		Sheet:      `{"calculator":"pitot"}`,
		Created:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"input":{"height":0.1}`) {
		t.Errorf("json %s", b)
	}
	if age := r.Age(r.Created.Add(3 * time.Hour)); age != "3 hours ago" {
		t.Errorf("age = %q", age)
	}
}

func TestOpenRejectsDriver(t *testing.T) {
	if _, err := Open("mysql", "x"); err == nil {
		t.Error("unsupported driver accepted")
	}
}
