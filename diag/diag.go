// Package diag is the operator-facing diagnostic channel: a SQLite-backed
// journal of failed trigger invocations. Recording never blocks or fails the
// caller; a broken journal degrades to slog only.
package diag

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/kkhys/lgtmd/internal/idgen"
)

const schema = `
CREATE TABLE IF NOT EXISTS trigger_failures (
	event_id      TEXT PRIMARY KEY,
	invocation_id TEXT NOT NULL,
	stage         TEXT NOT NULL,
	error         TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trigger_failures_created
	ON trigger_failures(created_at);
`

// Failure is one recorded invocation failure.
type Failure struct {
	EventID      string `json:"event_id"`
	InvocationID string `json:"invocation_id"`
	Stage        string `json:"stage"`
	Error        string `json:"error"`
	CreatedAt    int64  `json:"created_at"`
}

// Recorder writes failure records and manages retention cleanup.
type Recorder struct {
	db    *sql.DB
	newID idgen.Generator
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithIDGenerator sets a custom generator for event IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(r *Recorder) { r.newID = gen }
}

// NewRecorder creates a Recorder on db and applies the schema.
func NewRecorder(db *sql.DB, opts ...Option) (*Recorder, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("diag: migrate: %w", err)
	}
	r := &Recorder{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// RecordFailure journals one failed invocation. Errors are logged via slog
// but do not propagate, so a failing journal never blocks the trigger path.
func (r *Recorder) RecordFailure(ctx context.Context, invocationID, stage string, cause error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trigger_failures (
			event_id, invocation_id, stage, error, created_at
		) VALUES (?,?,?,?,?)`,
		r.newID(), invocationID, stage, cause.Error(), time.Now().Unix())
	if err != nil {
		slog.Error("diag: record failed", "error", err, "invocation_id", invocationID)
	}
}

// Failures returns the most recent failure records, newest first.
func (r *Recorder) Failures(ctx context.Context, limit int) ([]Failure, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, invocation_id, stage, error, created_at
		FROM trigger_failures ORDER BY created_at DESC, event_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("diag: query: %w", err)
	}
	defer rows.Close()

	var out []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.EventID, &f.InvocationID, &f.Stage, &f.Error, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("diag: scan: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Cleanup deletes records older than the retention threshold. Zero days
// means no cleanup.
func (r *Recorder) Cleanup(ctx context.Context, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}
	cutoff := time.Now().Unix() - int64(retentionDays*86400)
	if _, err := r.db.ExecContext(ctx,
		"DELETE FROM trigger_failures WHERE created_at < ?", cutoff); err != nil {
		return fmt.Errorf("diag: cleanup: %w", err)
	}
	return nil
}
