// Package history persists worked calculations so they can be listed and
// reopened later. SQLite is the default backend; PostgreSQL is supported for
// shared deployments.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("history record not found")

// Record is one stored calculation. Input and Sheet hold JSON documents.
type Record struct {
	ID           string    `db:"id"`
	Calculator   string    `db:"calculator"`
	Title        string    `db:"title"`
	Input        string    `db:"input"`
	Sheet        string    `db:"sheet"`
	CreatedNanos int64     `db:"created_at"`
	Created      time.Time `db:"-"`
}

// MarshalJSON embeds the stored documents as JSON rather than strings
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         string          `json:"id"`
		Calculator string          `json:"calculator"`
		Title      string          `json:"title"`
		Created    time.Time       `json:"created_at"`
		Input      json.RawMessage `json:"input"`
		Sheet      json.RawMessage `json:"sheet"`
	}{r.ID, r.Calculator, r.Title, r.Created, json.RawMessage(r.Input), json.RawMessage(r.Sheet)})
}

// Worksheet decodes the stored worked solution
func (r Record) Worksheet() (*worksheet.Sheet, error) {
	var s worksheet.Sheet
	if err := json.Unmarshal([]byte(r.Sheet), &s); err != nil {
		return nil, fmt.Errorf("decode sheet %s: %w", r.ID, err)
	}
	return &s, nil
}

// Age describes how long ago the record was stored, relative to now
func (r Record) Age(now time.Time) string {
	return humanize.RelTime(r.Created, now, "ago", "from now")
}

// Store wraps the history database
type Store struct {
	db     *sqlx.DB
	driver string
	now    func() time.Time
}

// Open connects to the history database and creates the schema when missing.
// For SQLite dsn is a file path.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if driver == DriverSQLite {
		// one writer at a time
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	s := &Store{db: db, driver: driver, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.WithFields(log.Fields{"driver": driver}).Debug("history store ready")
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		calculator TEXT NOT NULL,
		title TEXT NOT NULL,
		input TEXT NOT NULL,
		sheet TEXT NOT NULL,
		created_at BIGINT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_created ON calculations(created_at);
	CREATE INDEX IF NOT EXISTS idx_calculations_calculator ON calculations(calculator);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores a worked solution along with the input that produced it
func (s *Store) Save(ctx context.Context, sheet *worksheet.Sheet, input any) (*Record, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	sh, err := json.Marshal(sheet)
	if err != nil {
		return nil, fmt.Errorf("encode sheet: %w", err)
	}

	created := s.now().UTC()
	rec := &Record{
		ID:           uuid.NewString(),
		Calculator:   sheet.Calculator,
		Title:        sheet.Title,
		Input:        string(in),
		Sheet:        string(sh),
		CreatedNanos: created.UnixNano(),
		Created:      created,
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q := s.db.Rebind(`INSERT INTO calculations (id, calculator, title, input, sheet, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, q, rec.ID, rec.Calculator, rec.Title, rec.Input, rec.Sheet, rec.CreatedNanos); err != nil {
		return nil, fmt.Errorf("insert calculation: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"id": rec.ID, "calculator": rec.Calculator}).Info("calculation recorded")
	return rec, nil
}

// Get loads one record by id
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	q := s.db.Rebind(`SELECT id, calculator, title, input, sheet, created_at FROM calculations WHERE id = ?`)
	if err := s.db.GetContext(ctx, &rec, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	rec.Created = time.Unix(0, rec.CreatedNanos).UTC()
	return &rec, nil
}

// List returns the newest records first. An empty calculator lists all of them;
// limit <= 0 means 50.
func (s *Store) List(ctx context.Context, calculator string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	var (
		recs []Record
		err  error
	)
	if calculator == "" {
		q := s.db.Rebind(`SELECT id, calculator, title, input, sheet, created_at FROM calculations ORDER BY created_at DESC LIMIT ?`)
		err = s.db.SelectContext(ctx, &recs, q, limit)
	} else {
		q := s.db.Rebind(`SELECT id, calculator, title, input, sheet, created_at FROM calculations WHERE calculator = ? ORDER BY created_at DESC LIMIT ?`)
		err = s.db.SelectContext(ctx, &recs, q, calculator, limit)
	}
	if err != nil {
		return nil, err
	}
	for i := range recs {
		recs[i].Created = time.Unix(0, recs[i].CreatedNanos).UTC()
	}
	return recs, nil
}

// Delete removes a record
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM calculations WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Prune keeps the newest keep records and deletes the rest
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("invalid keep: %d", keep)
	}
	q := s.db.Rebind(`DELETE FROM calculations WHERE id NOT IN (
		SELECT id FROM calculations ORDER BY created_at DESC LIMIT ?)`)
	res, err := s.db.ExecContext(ctx, q, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
