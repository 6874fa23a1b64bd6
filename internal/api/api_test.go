package api

import (
	"bytes"
	"encoding/json"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gofluid/internal/config"
	"github.com/alexiusacademia/gofluid/internal/history"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Server.RateLimit = 0
	cfg.Server.StreamSteps = 4
	cfg.Server.StreamInterval = time.Millisecond
	return cfg
}

func do(t *testing.T, h http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCalcVerticalWall(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	rec := do(t, h, http.MethodPost, "/api/v1/calc/hydrostatic-vertical", `{"depth": 5, "width": 3, "density": 1000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Calculator string `json:"calculator"`
		Result     struct {
			Force            float64 `json:"force"`
			CenterOfPressure float64 `json:"center_of_pressure"`
		} `json:"result"`
		Sheet struct {
			Steps []json.RawMessage `json:"steps"`
		} `json:"sheet"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if math.Abs(resp.Result.Force-367875) > 1e-6 {
		t.Errorf("F = %v, want 367875", resp.Result.Force)
	}
	if math.Abs(resp.Result.CenterOfPressure-10.0/3) > 1e-9 {
		t.Errorf("ȳ = %v", resp.Result.CenterOfPressure)
	}
	if resp.Calculator != "hydrostatic-vertical" || len(resp.Sheet.Steps) == 0 {
		t.Errorf("unexpected response %s", rec.Body)
	}
}

func TestPipeFlowKinematicOnly(t *testing.T) {
	calc, ok := Lookup("pipe-flow")
	if !ok {
		t.Fatal("pipe-flow not registered")
	}
	out, err := calc.Run([]byte(`{"flow": {"kinematic_viscosity": 1e-6, "diameter": 0.1, "velocity": 1}}`), testConfig().Physics)
	if err != nil {
		t.Fatal(err)
	}
	r := out.Result.(*pipeflow.FlowResult)
	if math.Abs(r.Reynolds-1e5) > 1e-6 {
		t.Errorf("Re = %v, want 1e5", r.Reynolds)
	}
}

func TestCalcErrors(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	cases := []struct {
		name, path, body string
		want             int
	}{
		{"unknown calculator", "/api/v1/calc/weir", `{}`, http.StatusNotFound},
		{"negative depth", "/api/v1/calc/hydrostatic-vertical", `{"depth": -1, "width": 3, "density": 1000}`, http.StatusBadRequest},
		{"malformed", "/api/v1/calc/pitot", `{"height":`, http.StatusBadRequest},
		{"unknown field", "/api/v1/calc/pitot", `{"heigth": 0.1}`, http.StatusBadRequest},
		{"empty body", "/api/v1/calc/bend", ``, http.StatusBadRequest},
		{"unknown fitting", "/api/v1/calc/pipe-headloss",
			`{"run": {"length": 10, "diameter": 0.1, "fittings": [{"key": "weir", "quantity": 1}]}, "flow": {"flow_rate": 0.01}}`,
			http.StatusBadRequest},
		{"unknown fluid", "/api/v1/calc/pipe-flow", `{"fluid": "lava", "flow": {"diameter": 0.1, "velocity": 1}}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, c.path, c.body)
			if rec.Code != c.want {
				t.Fatalf("status %d, want %d: %s", rec.Code, c.want, rec.Body)
			}
			if !strings.Contains(rec.Body.String(), `"error"`) {
				t.Errorf("no error message in %s", rec.Body)
			}
		})
	}
}

func TestCalcFormats(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	body := `{"manometer_density": 1000, "fluid_density": 1.225, "height": 0.05}`

	rec := do(t, h, http.MethodPost, "/api/v1/calc/pitot?format=text", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("text status %d", rec.Code)
	}
	for _, want := range []string{"PITOT-STATIC TUBE", "INPUT DATA", "SOLUTION"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("text worksheet missing %q", want)
		}
	}

	rec = do(t, h, http.MethodPost, "/api/v1/calc/pitot?format=pdf", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("pdf status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestPumpWithFluidPreset(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	body := `{
		"fluid": "water",
		"flow_rate": 0.02,
		"run": {"length": 200, "diameter": 0.15, "roughness": 4.5e-5,
			"fittings": [{"key": "elbow-90", "quantity": 4}, {"name": "Strainer", "ratio": 75, "quantity": 1}]},
		"static_lift": 25,
		"efficiency": 0.75
	}`
	rec := do(t, h, http.MethodPost, "/api/v1/calc/pump", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Input struct {
			Density float64 `json:"density"`
		} `json:"input"`
		Result struct {
			TotalHead  float64 `json:"total_head"`
			ShaftPower float64 `json:"shaft_power"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Input.Density != 998 {
		t.Errorf("ρ = %v, want the water preset", resp.Input.Density)
	}
	if resp.Result.TotalHead <= 25 || resp.Result.ShaftPower <= 0 {
		t.Errorf("H = %v, P = %v", resp.Result.TotalHead, resp.Result.ShaftPower)
	}
}

func TestPresetsAndCalculators(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	rec := do(t, h, http.MethodGet, "/api/v1/presets", "")
	var presets map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &presets); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"fluids", "fittings", "capillary", "manometer", "pitot"} {
		if _, ok := presets[k]; !ok {
			t.Errorf("presets missing %s", k)
		}
	}

	rec = do(t, h, http.MethodGet, "/api/v1/calculators", "")
	var list []Calculator
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 10 {
		t.Errorf("%d calculators listed, want 10", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("calculators not sorted: %s before %s", list[i-1].Name, list[i].Name)
		}
	}
}

func openStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(history.DriverSQLite, filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndHistory(t *testing.T) {
	h := New(testConfig(), openStore(t)).Handler()

	rec := do(t, h, http.MethodPost, "/api/v1/calc/capillary?record=true",
		`{"surface_tension": 0.0728, "contact_angle": 0, "density": 998, "diameter": 0.001}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	id := rec.Header().Get("X-Record-Id")
	if id == "" {
		t.Fatal("no record id")
	}

	rec = do(t, h, http.MethodGet, "/api/v1/history", "")
	var list []historyEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Calculator != "capillary" {
		t.Fatalf("history = %+v", list)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/history/"+id+"?format=text", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "CAPILLARY") {
		t.Errorf("history text %d: %s", rec.Code, rec.Body)
	}

	if rec = do(t, h, http.MethodDelete, "/api/v1/history/"+id, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", rec.Code)
	}
	if rec = do(t, h, http.MethodGet, "/api/v1/history/"+id, ""); rec.Code != http.StatusNotFound {
		t.Errorf("deleted record status %d", rec.Code)
	}
}

func TestHistoryDisabled(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	if rec := do(t, h, http.MethodGet, "/api/v1/history", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status %d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/api/v1/calc/pitot?record=true", `{"manometer_density": 1000, "fluid_density": 1.2, "height": 0.05}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("record without store: status %d", rec.Code)
	}
}

func TestHistoryToken(t *testing.T) {
	cfg := testConfig()
	cfg.Server.TokenKey = "s3cret"
	h := New(cfg, openStore(t)).Handler()

	if rec := do(t, h, http.MethodGet, "/api/v1/history", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/history", "", "Authorization", "Bearer nonsense"); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status %d", rec.Code)
	}

	tok, err := IssueToken([]byte(cfg.Server.TokenKey), "tester", time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/history", "", "Authorization", "Bearer "+tok); rec.Code != http.StatusOK {
		t.Errorf("valid token: status %d: %s", rec.Code, rec.Body)
	}
	// calculators stay open
	if rec := do(t, h, http.MethodGet, "/api/v1/calculators", ""); rec.Code != http.StatusOK {
		t.Errorf("calculators behind token: status %d", rec.Code)
	}
}

func TestTokens(t *testing.T) {
	key := []byte("k1")
	now := time.Now()
	tok, err := IssueToken(key, "alice", time.Hour, now)
	if err != nil {
		t.Fatal(err)
	}
	sub, err := ParseToken(key, tok)
	if err != nil || sub != "alice" {
		t.Fatalf("ParseToken = %q, %v", sub, err)
	}
	if _, err := ParseToken([]byte("k2"), tok); err == nil {
		t.Error("token accepted with the wrong key")
	}
	expired, err := IssueToken(key, "alice", time.Minute, now.Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseToken(key, expired); err == nil {
		t.Error("expired token accepted")
	}
	if _, err := IssueToken(nil, "alice", time.Hour, now); err == nil {
		t.Error("empty key accepted")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 2
	h := New(cfg, nil).Handler()

	for i := 0; i < 2; i++ {
		if rec := do(t, h, http.MethodGet, "/api/v1/calculators", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/calculators", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("third request: status %d", rec.Code)
	}
	// health checks are not limited
	if rec := do(t, h, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("healthz: status %d", rec.Code)
	}
}

func upload(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "diameter", "length", "roughness", "flow_rate", "velocity", "density", "viscosity", "fittings"},
		{"main", 0.15, 200, 4.5e-5, 0.02, "", 1000, 1e-3, "elbow-90:4; gate-valve:2; check-valve"},
		{"closed", 0, 10, 0, 0.01, "", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			t.Fatal(err)
		}
	}
	book, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "runs.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(book.Bytes()); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBatchUpload(t *testing.T) {
	h := New(testConfig(), nil).Handler()

	rec := upload(t, h, "/api/v1/batch/pipe?format=json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var rows []struct {
		Name   string `json:"name"`
		Result *struct {
			Loss struct {
				TotalLoss float64 `json:"total_loss"`
			} `json:"loss"`
		} `json:"result"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("%d rows", len(rows))
	}
	if rows[0].Result == nil || math.Abs(rows[0].Result.Loss.TotalLoss-7.434733382) > 1e-6 {
		t.Errorf("main row = %+v", rows[0])
	}
	if rows[1].Error == "" {
		t.Error("zero diameter row evaluated")
	}

	rec = upload(t, h, "/api/v1/batch/pipe")
	if rec.Code != http.StatusOK {
		t.Fatalf("xlsx status %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != xlsxMIME || rec.Header().Get("X-Batch-Failed") != "1" {
		t.Errorf("headers %v", rec.Header())
	}
	out, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	got, err := out.GetRows(out.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("result sheet has %d rows", len(got))
	}
}

func TestBatchWithoutFile(t *testing.T) {
	h := New(testConfig(), nil).Handler()
	rec := do(t, h, http.MethodPost, "/api/v1/batch/pipe", "", "Content-Type", "text/plain")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/api/v1/batch/pipe/template", ""); rec.Code != http.StatusOK {
		t.Errorf("template status %d", rec.Code)
	}
}

func dial(t *testing.T, srv *httptest.Server, calc string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + calc
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// readUntilResult collects frames up to and including the result message
func readUntilResult(t *testing.T, conn *websocket.Conn) ([]StreamMessage, StreamMessage) {
	t.Helper()
	var frames []StreamMessage
	for {
		var msg StreamMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}
		switch msg.Type {
		case MessageFrame:
			frames = append(frames, msg)
		case MessageResult:
			return frames, msg
		default:
			t.Fatalf("unexpected message %+v", msg)
		}
	}
}

func TestStream(t *testing.T) {
	cfg := testConfig()
	srv := httptest.NewServer(New(cfg, nil).Handler())
	defer srv.Close()
	conn := dial(t, srv, "pitot")
	defer conn.Close()

	if err := conn.WriteJSON(map[string]float64{"manometer_density": 1000, "fluid_density": 1.225, "height": 0.05}); err != nil {
		t.Fatal(err)
	}
	frames, result := readUntilResult(t, conn)
	if len(frames) != cfg.Server.StreamSteps {
		t.Fatalf("%d frames, want %d", len(frames), cfg.Server.StreamSteps)
	}
	last := frames[len(frames)-1].Values["velocity"]
	if want, _ := result.Sheet.Result("velocity"); last != want.Value {
		t.Errorf("last frame U = %v, result U = %v", last, want.Value)
	}

	// a taller column eases the velocity upward frame by frame
	if err := conn.WriteJSON(map[string]float64{"manometer_density": 1000, "fluid_density": 1.225, "height": 0.2}); err != nil {
		t.Fatal(err)
	}
	frames, result = readUntilResult(t, conn)
	prev := last
	for _, f := range frames {
		u := f.Values["velocity"]
		if u < prev {
			t.Errorf("frame %d: U fell from %v to %v", f.Step, prev, u)
		}
		prev = u
	}
	if frames[0].Values["velocity"] <= last {
		t.Error("first frame did not move toward the new target")
	}
	if want, _ := result.Sheet.Result("velocity"); prev != want.Value {
		t.Errorf("stream ended at %v, want %v", prev, want.Value)
	}
}

func TestStreamErrors(t *testing.T) {
	srv := httptest.NewServer(New(testConfig(), nil).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/weir"
	if _, resp, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Fatal("dialed an unknown calculator")
	} else if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown calculator: %v", err)
	}

	conn := dial(t, srv, "pitot")
	defer conn.Close()
	if err := conn.WriteJSON(map[string]float64{"manometer_density": 1000, "fluid_density": 0, "height": 0.05}); err != nil {
		t.Fatal(err)
	}
	var msg StreamMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != MessageError || msg.Error == "" {
		t.Errorf("got %+v, want an error message", msg)
	}
}

func TestCheckOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AllowedOrigins = []string{"https://calc.example.com"}
	s := New(cfg, nil)
	req := httptest.NewRequest(http.MethodGet, "/ws/pitot", nil)
	req.Header.Set("Origin", "https://calc.example.com")
	if !s.checkOrigin(req) {
		t.Error("allowed origin rejected")
	}
	req.Header.Set("Origin", "https://evil.example.net")
	if s.checkOrigin(req) {
		t.Error("foreign origin accepted")
	}
}
