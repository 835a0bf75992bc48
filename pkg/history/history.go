// Package history records install runs in the install_events table.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/joeblew999/plat-webfonts/pkg/font"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// timestampLayout sorts lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Event is one stored install event.
type Event struct {
	ID        string `db:"id" json:"id"`
	RunID     string `db:"run_id" json:"runId"`
	FontID    string `db:"font_id" json:"fontId"`
	Type      string `db:"event_type" json:"type"`
	Details   string `db:"details" json:"details"`
	Timestamp string `db:"timestamp" json:"timestamp"`
}

// Fields decodes Details.
func (e Event) Fields() url.Values {
	fields, _ := url.ParseQuery(e.Details)
	return fields
}

// Recorder batches install event writes using go-zero's BulkInserter.
type Recorder struct {
	conn     sqlx.SqlConn
	inserter *sqlx.BulkInserter
}

var _ font.EventRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder on a connection whose schema was migrated by db.Open.
func NewRecorder(conn sqlx.SqlConn) (*Recorder, error) {
	inserter, err := sqlx.NewBulkInserter(conn,
		"insert into `install_events` (`id`, `run_id`, `font_id`, `event_type`, `details`, `timestamp`) values (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}

	inserter.SetResultHandler(func(_ sql.Result, err error) {
		if err != nil {
			logx.Errorf("BulkInserter install_events error: %v", err)
		}
	})

	return &Recorder{conn: conn, inserter: inserter}, nil
}

// Record batches an event insert.
func (r *Recorder) Record(ctx context.Context, event font.InstallEvent) {
	// form encoding keeps quotes and backslashes out of the batched statement text
	fields := url.Values{}
	for k, v := range event.Details {
		fields.Set(k, fmt.Sprint(v))
	}

	if err := r.inserter.Insert(
		uuid.New().String(),
		event.RunID,
		event.FontID,
		event.Type,
		fields.Encode(),
		time.Now().UTC().Format(timestampLayout),
	); err != nil {
		logx.WithContext(ctx).Errorf("Failed to record event: %v", err)
	}
}

// Flush forces all pending events to be written.
func (r *Recorder) Flush() {
	r.inserter.Flush()
}

// List returns the most recent events, newest first.
func (r *Recorder) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	var events []Event
	err := r.conn.QueryRowsCtx(ctx, &events,
		"SELECT id, run_id, font_id, event_type, COALESCE(details, '') AS details, timestamp FROM install_events ORDER BY timestamp DESC, rowid DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Run returns the events of one run in the order they happened.
func (r *Recorder) Run(ctx context.Context, runID string) ([]Event, error) {
	var events []Event
	err := r.conn.QueryRowsCtx(ctx, &events,
		"SELECT id, run_id, font_id, event_type, COALESCE(details, '') AS details, timestamp FROM install_events WHERE run_id = ? ORDER BY timestamp, rowid",
		runID)
	if err != nil {
		return nil, err
	}
	return events, nil
}
