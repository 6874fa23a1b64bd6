// Package api exposes the calculators over HTTP and streams result transitions
// over a websocket.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/alexiusacademia/gofluid/internal/batch"
	"github.com/alexiusacademia/gofluid/internal/capillary"
	"github.com/alexiusacademia/gofluid/internal/config"
	"github.com/alexiusacademia/gofluid/internal/fluid"
	"github.com/alexiusacademia/gofluid/internal/history"
	"github.com/alexiusacademia/gofluid/internal/manometer"
	"github.com/alexiusacademia/gofluid/internal/pipeflow"
	"github.com/alexiusacademia/gofluid/internal/pitot"
	"github.com/alexiusacademia/gofluid/internal/report"
	"github.com/alexiusacademia/gofluid/internal/version"
)

const (
	maxBody      = 1 << 20
	maxWorkbook  = 16 << 20
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	historyLimit = 50
)

// errHistoryDisabled is returned by the history routes when no store is open
var errHistoryDisabled = errors.New("history is disabled")

// Server wires the calculators, the history store and the stream endpoint
type Server struct {
	cfg      config.Config
	store    *history.Store
	tokenKey []byte
	limiter  *IPRateLimiter
	upgrader websocket.Upgrader
	now      func() time.Time

	closeOnce sync.Once
	closing   chan struct{}
}

// New builds a server. store may be nil, which disables the history routes.
func New(cfg config.Config, store *history.Store) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		tokenKey: []byte(cfg.Server.TokenKey),
		now:      time.Now,
		closing:  make(chan struct{}),
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.cfg.Server.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range s.cfg.Server.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/ws/{calculator}", s.handleStream)

	api := r.PathPrefix("/api/v1").Subrouter()
	if s.limiter != nil {
		api.Use(s.limiter.LimitMiddleware)
	}
	api.HandleFunc("/presets", s.handlePresets).Methods(http.MethodGet)
	api.HandleFunc("/calculators", s.handleCalculators).Methods(http.MethodGet)
	api.HandleFunc("/calc/{calculator}", s.handleCalc).Methods(http.MethodPost)
	api.HandleFunc("/batch/pipe", s.handleBatch).Methods(http.MethodPost)
	api.HandleFunc("/batch/pipe/template", s.handleTemplate).Methods(http.MethodGet)

	hist := api.PathPrefix("/history").Subrouter()
	hist.Use(s.requireToken)
	hist.HandleFunc("", s.handleHistoryList).Methods(http.MethodGet)
	hist.HandleFunc("/{id}", s.handleHistoryGet).Methods(http.MethodGet)
	hist.HandleFunc("/{id}", s.handleHistoryDelete).Methods(http.MethodDelete)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv.RegisterOnShutdown(s.Close)

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	sctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close ends open streams. Safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, fluid.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errHistoryDisabled):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}
	writeError(w, status, err)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Version,
		"history": s.store != nil,
	})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"fluids":    fluid.Fluids,
		"fittings":  pipeflow.Fittings,
		"capillary": capillary.Presets,
		"manometer": manometer.Presets,
		"pitot":     pitot.Presets,
	})
}

func (s *Server) handleCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Calculators())
}

type calcResponse struct {
	Calculator string `json:"calculator"`
	Input      any    `json:"input"`
	Result     any    `json:"result"`
	Sheet      any    `json:"sheet"`
	RecordID   string `json:"record_id,omitempty"`
}

func (s *Server) reportOptions() report.Options {
	return report.Options{Project: s.cfg.Report.Project, Author: s.cfg.Report.Author, Date: s.now()}
}

func (s *Server) handleCalc(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["calculator"]
	calc, ok := Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown calculator %q", name))
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	out, err := calc.Run(body, s.cfg.Physics)
	if err != nil {
		fail(w, r, err)
		return
	}

	resp := calcResponse{Calculator: name, Input: out.Input, Result: out.Result, Sheet: out.Sheet}
	if r.URL.Query().Get("record") == "true" {
		if s.store == nil {
			fail(w, r, errHistoryDisabled)
			return
		}
		rec, err := s.store.Save(r.Context(), out.Sheet, out.Input)
		if err != nil {
			fail(w, r, err)
			return
		}
		resp.RecordID = rec.ID
		w.Header().Set("X-Record-Id", rec.ID)
	}

	switch r.URL.Query().Get("format") {
	case "pdf":
		var buf bytes.Buffer
		if err := report.Write(&buf, out.Sheet, s.reportOptions()); err != nil {
			fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".pdf"))
		_, _ = w.Write(buf.Bytes())
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := out.Sheet.WriteText(w); err != nil {
			log.WithError(err).Warn("write worksheet")
		}
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

type batchRow struct {
	Line   int                    `json:"line"`
	Name   string                 `json:"name,omitempty"`
	Result *pipeflow.SystemResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxWorkbook); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file field: %w", err))
		return
	}
	defer file.Close()

	rows, err := batch.Read(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	outcomes := batch.Evaluate(rows)
	failed := batch.Failed(outcomes)
	log.WithFields(log.Fields{"rows": len(outcomes), "failed": failed}).Info("batch evaluated")

	if r.URL.Query().Get("format") == "json" {
		list := make([]batchRow, 0, len(outcomes))
		for _, o := range outcomes {
			row := batchRow{Line: o.Row.Line, Name: o.Row.Run.Name, Result: o.Result}
			if o.Err != nil {
				row.Error = o.Err.Error()
			}
			list = append(list, row)
		}
		writeJSON(w, http.StatusOK, list)
		return
	}

	var buf bytes.Buffer
	if err := batch.Write(&buf, outcomes); err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="pipe-results.xlsx"`)
	w.Header().Set("X-Batch-Failed", strconv.Itoa(failed))
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleTemplate(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := batch.Template(&buf); err != nil {
		fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxMIME)
	w.Header().Set("Content-Disposition", `attachment; filename="pipe-template.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

type historyEntry struct {
	ID         string    `json:"id"`
	Calculator string    `json:"calculator"`
	Title      string    `json:"title"`
	Created    time.Time `json:"created"`
	Age        string    `json:"age"`
}

func (s *Server) handleHistoryList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, r, errHistoryDisabled)
		return
	}
	limit := historyLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.store.List(r.Context(), r.URL.Query().Get("calculator"), limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	now := s.now()
	list := make([]historyEntry, 0, len(recs))
	for _, rec := range recs {
		list = append(list, historyEntry{
			ID:         rec.ID,
			Calculator: rec.Calculator,
			Title:      rec.Title,
			Created:    rec.Created,
			Age:        rec.Age(now),
		})
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, r, errHistoryDisabled)
		return
	}
	rec, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		writeJSON(w, http.StatusOK, rec)
		return
	}
	sheet, err := rec.Worksheet()
	if err != nil {
		fail(w, r, err)
		return
	}
	switch format {
	case "pdf":
		var buf bytes.Buffer
		opt := s.reportOptions()
		opt.Date = rec.Created
		if err := report.Write(&buf, sheet, opt); err != nil {
			fail(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(buf.Bytes())
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := sheet.WriteText(w); err != nil {
			log.WithError(err).Warn("write worksheet")
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", format))
	}
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		fail(w, r, errHistoryDisabled)
		return
	}
	if err := s.store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
