// Package store provides SQL-backed storage for symptom checks with
// per-patient alert cooldown. SQLite is the default backend; PostgreSQL is
// used for shared clinic deployments.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/bisheshoggo/symtriage/internal/check"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

// ErrNotFound is returned by Get when no check has the given ID.
var ErrNotFound = errors.New("check not found")

// Timestamps are stored as fixed-width UTC text so that string comparison
// matches chronological order on both backends.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

// Meta keys.
const (
	MetaLastSync = "last_sync_time"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// DB wraps a database connection for check storage.
type DB struct {
	db      *sql.DB
	dialect dialect
}

// Open opens or creates an SQLite database at the given path.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer connection to avoid SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return initDB(db, dialectSQLite)
}

// OpenPostgres connects to a PostgreSQL database using a lib/pq DSN.
func OpenPostgres(dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return initDB(db, dialectPostgres)
}

func initDB(db *sql.DB, d dialect) (*DB, error) {
	s := &DB{db: db, dialect: d}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// rebind rewrites ? placeholders to $N for PostgreSQL.
func (d *DB) rebind(query string) string {
	if d.dialect != dialectPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d *DB) exec(query string, args ...any) (sql.Result, error) {
	return d.db.Exec(d.rebind(query), args...)
}

func (d *DB) query(query string, args ...any) (*sql.Rows, error) {
	return d.db.Query(d.rebind(query), args...)
}

func (d *DB) queryRow(query string, args ...any) *sql.Row {
	return d.db.QueryRow(d.rebind(query), args...)
}

func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// Insert stores a new check in the database.
func (d *DB) Insert(c *check.Check) error {
	reportJSON, err := json.Marshal(c.Report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	resultJSON, err := json.Marshal(c.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = d.exec(`
		INSERT INTO checks (id, patient_id, instance_id, timestamp, risk_level, severity, symptoms, report_json, result_json, synced, notified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.PatientID,
		c.InstanceID,
		formatTS(c.Timestamp),
		string(c.Result.RiskLevel),
		c.Report.Severity,
		strings.Join(c.Report.Symptoms, ", "),
		string(reportJSON),
		string(resultJSON),
		c.Synced,
		c.Notified,
	)
	if err != nil {
		return fmt.Errorf("inserting check: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, patient_id, instance_id, timestamp, report_json, result_json, synced, notified FROM checks`

// Get returns the check with the given ID, or ErrNotFound.
func (d *DB) Get(id string) (*check.Check, error) {
	rows, err := d.query(selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("querying check: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	return scanCheck(rows)
}

// MarkNotified marks a check as having been sent to ntfy.
func (d *DB) MarkNotified(id string) error {
	_, err := d.exec(`UPDATE checks SET notified = TRUE WHERE id = ?`, id)
	return err
}

// MarkSynced marks a check as uploaded to the API backend.
func (d *DB) MarkSynced(id string) error {
	_, err := d.exec(`UPDATE checks SET synced = TRUE WHERE id = ?`, id)
	return err
}

// QueryFilter controls which checks are returned by Query.
type QueryFilter struct {
	Since      time.Time
	Until      time.Time
	Level      triage.RiskLevel
	PatientID  string
	InstanceID string
	Unsynced   bool
	Limit      int
}

// Query returns checks matching the filter, ordered by timestamp descending.
func (d *DB) Query(f QueryFilter) ([]*check.Check, error) {
	query := selectColumns + ` WHERE 1=1`
	var args []any

	if !f.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, formatTS(f.Since))
	}
	if !f.Until.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, formatTS(f.Until))
	}
	if f.Level != "" {
		query += " AND risk_level = ?"
		args = append(args, string(f.Level))
	}
	if f.PatientID != "" {
		query += " AND patient_id = ?"
		args = append(args, f.PatientID)
	}
	if f.InstanceID != "" {
		query += " AND instance_id = ?"
		args = append(args, f.InstanceID)
	}
	if f.Unsynced {
		query += " AND synced = FALSE"
	}

	query += " ORDER BY timestamp DESC"

	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	return d.collect(query, args...)
}

// Pending returns up to limit unsynced checks, oldest first.
func (d *DB) Pending(limit int) ([]*check.Check, error) {
	query := selectColumns + ` WHERE synced = FALSE ORDER BY timestamp ASC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return d.collect(query, args...)
}

func (d *DB) collect(query string, args ...any) ([]*check.Check, error) {
	rows, err := d.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying checks: %w", err)
	}
	defer rows.Close()

	var checks []*check.Check
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// Count returns the total number of stored checks.
func (d *DB) Count() (int, error) {
	var n int
	err := d.queryRow(`SELECT COUNT(*) FROM checks`).Scan(&n)
	return n, err
}

// CountPending returns the number of checks not yet synced.
func (d *DB) CountPending() (int, error) {
	var n int
	err := d.queryRow(`SELECT COUNT(*) FROM checks WHERE synced = FALSE`).Scan(&n)
	return n, err
}

// Purge deletes checks older than the given retention duration.
func (d *DB) Purge(retention time.Duration) (int64, error) {
	cutoff := formatTS(time.Now().Add(-retention))
	result, err := d.exec(`DELETE FROM checks WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging old checks: %w", err)
	}
	return result.RowsAffected()
}

// SetMeta stores a key/value pair, replacing any previous value.
func (d *DB) SetMeta(key, value string) error {
	_, err := d.exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting meta %s: %w", key, err)
	}
	return nil
}

// GetMeta returns the value for key and whether it was set.
func (d *DB) GetMeta(key string) (string, bool, error) {
	var value string
	err := d.queryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return value, true, nil
}

// LastSync returns the time of the last completed sync, or the zero time.
func (d *DB) LastSync() (time.Time, error) {
	v, ok, err := d.GetMeta(MetaLastSync)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", MetaLastSync, err)
	}
	return t, nil
}

// SetLastSync records the time of a completed sync.
func (d *DB) SetLastSync(t time.Time) error {
	return d.SetMeta(MetaLastSync, t.UTC().Format(time.RFC3339Nano))
}

func scanCheck(rows *sql.Rows) (*check.Check, error) {
	var c check.Check
	var tsStr, reportJSON, resultJSON string
	var patientID sql.NullString

	err := rows.Scan(
		&c.ID,
		&patientID,
		&c.InstanceID,
		&tsStr,
		&reportJSON,
		&resultJSON,
		&c.Synced,
		&c.Notified,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning check row: %w", err)
	}

	c.PatientID = patientID.String
	if c.Timestamp, err = time.Parse(tsLayout, tsStr); err != nil {
		return nil, fmt.Errorf("parsing timestamp of %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &c.Report); err != nil {
		return nil, fmt.Errorf("decoding report of %s: %w", c.ID, err)
	}
	if err := json.Unmarshal([]byte(resultJSON), &c.Result); err != nil {
		return nil, fmt.Errorf("decoding result of %s: %w", c.ID, err)
	}

	return &c, nil
}

func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS checks (
			id          TEXT PRIMARY KEY,
			patient_id  TEXT,
			instance_id TEXT NOT NULL,
			timestamp   TEXT NOT NULL,
			risk_level  TEXT NOT NULL,
			severity    INTEGER NOT NULL,
			symptoms    TEXT,
			report_json TEXT NOT NULL,
			result_json TEXT NOT NULL,
			synced      BOOLEAN DEFAULT FALSE,
			notified    BOOLEAN DEFAULT FALSE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_ts ON checks(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_patient ON checks(patient_id, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_level ON checks(risk_level, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_synced ON checks(synced, timestamp)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	slog.Debug("database schema up to date")
	return nil
}
