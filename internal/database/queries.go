package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pingclock/internal/models"
)

// SaveSession records the start of a sampler session
func (db *DB) SaveSession(s models.Session) error {
	query := `
        INSERT INTO sessions (id, host, interval_ms, started_at)
        VALUES (?, ?, ?, ?)
    `
	_, err := db.Exec(query, s.ID, s.Host, s.IntervalMs(), s.StartedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save session %s: %w", s.ID, err)
	}
	return nil
}

// EndSession stamps the stop time of a session
func (db *DB) EndSession(id string, at time.Time) error {
	res, err := db.Exec(`UPDATE sessions SET stopped_at = ? WHERE id = ?`, at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("end session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("end session %s: %w", id, ErrNotFound)
	}
	return nil
}

// SaveSample saves one sample of a session
func (db *DB) SaveSample(sessionID string, sample models.Sample) error {
	query := `
        INSERT INTO samples (session_id, captured_at, success, latency_ms, failure, error_message)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	var latency sql.NullFloat64
	if ms, ok := sample.LatencyMs(); ok {
		latency = sql.NullFloat64{Float64: ms, Valid: true}
	}
	var errMsg sql.NullString
	if sample.Error != "" {
		errMsg = sql.NullString{String: sample.Error, Valid: true}
	}

	_, err := db.Exec(query,
		sessionID,
		sample.CapturedAt.UnixMilli(),
		sample.OK,
		latency,
		sample.Failure.String(),
		errMsg,
	)
	if err != nil {
		return fmt.Errorf("save sample: %w", err)
	}
	return nil
}

const sessionColumns = `id, host, interval_ms, started_at, stopped_at`

// LatestSession returns the most recently started session
func (db *DB) LatestSession() (models.Session, error) {
	row := db.QueryRow(`SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC LIMIT 1`)
	return scanSession(row)
}

// GetSession returns the session with the given id
func (db *DB) GetSession(id string) (models.Session, error) {
	row := db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

func scanSession(row *sql.Row) (models.Session, error) {
	var (
		s          models.Session
		intervalMs int64
		startedAt  int64
		stoppedAt  sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.Host, &intervalMs, &startedAt, &stoppedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, ErrNotFound
		}
		return s, fmt.Errorf("scan session: %w", err)
	}
	s.Interval = time.Duration(intervalMs) * time.Millisecond
	s.StartedAt = time.UnixMilli(startedAt)
	if stoppedAt.Valid {
		s.StoppedAt = time.UnixMilli(stoppedAt.Int64)
	}
	return s, nil
}

// SessionSamples returns the newest limit samples of a session, oldest
// first. A non-positive limit returns every sample.
func (db *DB) SessionSamples(id string, limit int) ([]models.Sample, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `
        SELECT captured_at, success, latency_ms, failure, error_message FROM (
            SELECT id, captured_at, success, latency_ms, failure, error_message
            FROM samples
            WHERE session_id = ?
            ORDER BY captured_at DESC, id DESC
            LIMIT ?
        ) ORDER BY captured_at, id
    `

	rows, err := db.Query(query, id, limit)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var (
			capturedAt int64
			s          models.Sample
			latency    sql.NullFloat64
			failure    string
			errMsg     sql.NullString
		)
		if err := rows.Scan(&capturedAt, &s.OK, &latency, &failure, &errMsg); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.CapturedAt = time.UnixMilli(capturedAt)
		if s.OK && latency.Valid {
			s.Latency = time.Duration(latency.Float64 * float64(time.Millisecond))
		}
		s.Failure = models.ParseFailure(failure)
		if errMsg.Valid {
			s.Error = errMsg.String
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
