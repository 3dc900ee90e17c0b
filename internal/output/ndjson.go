// Package output renders snapshots for terminals and machine consumers.
package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/samber/lo"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
)

// schemaVersion is bumped when the NDJSON event shapes change.
const schemaVersion = 1

// NDJSONWriter emits newline-delimited JSON events for scripting and
// agent consumption.
type NDJSONWriter struct {
	enc *json.Encoder
}

// NewNDJSONWriter creates a writer emitting to w.
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	return &NDJSONWriter{enc: json.NewEncoder(w)}
}

type snapshotEvent struct {
	Type             string                   `json:"type"`
	SchemaVersion    int                      `json:"schemaVersion"`
	Instance         string                   `json:"instance"`
	TakenAt          string                   `json:"taken_at"`
	SessionCount     int                      `json:"session_count"`
	OpenTransactions int                      `json:"open_transactions"`
	Sessions         []domain.EnrichedSession `json:"sessions"`
}

// WriteSnapshot emits one ranked snapshot as a single event.
func (w *NDJSONWriter) WriteSnapshot(instance string, takenAt time.Time, sessions []domain.EnrichedSession) error {
	return w.enc.Encode(snapshotEvent{
		Type:             "snapshot",
		SchemaVersion:    schemaVersion,
		Instance:         instance,
		TakenAt:          takenAt.UTC().Format(time.RFC3339),
		SessionCount:     len(sessions),
		OpenTransactions: lo.CountBy(sessions, domain.EnrichedSession.HasTransaction),
		Sessions:         sessions,
	})
}

type resultEvent struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Action        string `json:"action"`
	Instance      string `json:"instance"`
	SessionID     int64  `json:"session_id"`
	OK            bool   `json:"ok"`
}

// WriteResult emits the outcome of a mutating action such as kill.
func (w *NDJSONWriter) WriteResult(action, instance string, sessionID int64, ok bool) error {
	return w.enc.Encode(resultEvent{
		Type:          "result",
		SchemaVersion: schemaVersion,
		Action:        action,
		Instance:      instance,
		SessionID:     sessionID,
		OK:            ok,
	})
}

type errorEvent struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Code          string `json:"code"`
	Message       string `json:"message"`
	Hint          string `json:"hint,omitempty"`
}

// WriteError emits a machine-readable failure.
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	ev := errorEvent{
		Type:          "error",
		SchemaVersion: schemaVersion,
		Code:          code,
		Message:       message,
	}
	if len(hint) > 0 {
		ev.Hint = hint[0]
	}
	return w.enc.Encode(ev)
}
