// Package archive persists a rolling history of daemon status snapshots in
// SQLite so operators can inspect how the camera behaved while nobody was
// watching. The live telemetry core stays stateless; only oakmond writes
// here, one row per status poll.
package archive

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/large-farva/oakmon/internal/daemon"
)

// Row is one archived status observation. Absent observations (the status
// file was missing at poll time) are stored too, with Present=false, so
// gaps in daemon availability are visible in the history.
type Row struct {
	ID           int64    `json:"id"`
	ObservedAt   string   `json:"observed_at"`
	Present      bool     `json:"present"`
	State        string   `json:"state"`
	Healthy      bool     `json:"healthy"`
	CurrentFPS   float64  `json:"current_fps"`
	AverageFPS   float64  `json:"average_fps"`
	TotalFrames  int64    `json:"total_frames"`
	ErrorCount   int64    `json:"error_count"`
	IMUCount     int64    `json:"imu_count"`
	TemperatureC *float64 `json:"temperature_c"`
	Issues       []string `json:"issues"`
}

// DB wraps the SQLite history database.
type DB struct {
	conn    *sql.DB
	maxRows int
}

// Open creates or opens the history database at path. maxRows caps the
// retained history; 0 means unbounded.
func Open(path string, maxRows int) (*DB, error) {
	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	db := &DB{conn: conn, maxRows: maxRows}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS status_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		observed_at TEXT NOT NULL,
		present INTEGER NOT NULL,
		state TEXT NOT NULL DEFAULT '',
		healthy INTEGER NOT NULL DEFAULT 0,
		current_fps REAL NOT NULL DEFAULT 0,
		average_fps REAL NOT NULL DEFAULT 0,
		total_frames INTEGER NOT NULL DEFAULT 0,
		error_count INTEGER NOT NULL DEFAULT 0,
		imu_count INTEGER NOT NULL DEFAULT 0,
		temperature_c REAL,
		issues TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_status_history_observed_at ON status_history(observed_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Record appends one observation. status may be nil for an absent
// document. Old rows beyond the configured cap are pruned in the same
// call.
func (db *DB) Record(observedAt string, status *daemon.Status) error {
	var (
		present  = status != nil
		state    string
		healthy  bool
		st       daemon.Stats
		tempC    *float64
		issueStr string
	)
	if present {
		state = status.State
		healthy = status.Healthy()
		st = status.Stats
		tempC = st.CurrentTemperatureC
		issueStr = strings.Join(status.Health.Issues, "\n")
	}

	_, err := db.conn.Exec(`
		INSERT INTO status_history
			(observed_at, present, state, healthy, current_fps, average_fps,
			 total_frames, error_count, imu_count, temperature_c, issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		observedAt, present, state, healthy, st.CurrentFPS, st.AverageFPS,
		st.TotalFrames, st.ErrorCount, st.IMUDataCount, tempC, issueStr,
	)
	if err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}

	if db.maxRows > 0 {
		_, err = db.conn.Exec(`
			DELETE FROM status_history
			WHERE id NOT IN (
				SELECT id FROM status_history ORDER BY id DESC LIMIT ?
			)`, db.maxRows)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit observations, newest first.
func (db *DB) Recent(limit int) ([]Row, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := db.conn.Query(`
		SELECT id, observed_at, present, state, healthy, current_fps,
		       average_fps, total_frames, error_count, imu_count,
		       temperature_c, issues
		FROM status_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var (
			r        Row
			tempC    sql.NullFloat64
			issueStr string
		)
		err := rows.Scan(&r.ID, &r.ObservedAt, &r.Present, &r.State,
			&r.Healthy, &r.CurrentFPS, &r.AverageFPS, &r.TotalFrames,
			&r.ErrorCount, &r.IMUCount, &tempC, &issueStr)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if tempC.Valid {
			v := tempC.Float64
			r.TemperatureC = &v
		}
		if issueStr != "" {
			r.Issues = strings.Split(issueStr, "\n")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
