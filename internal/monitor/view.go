// Package monitor joins the server's process list with transaction
// details mined from the engine status report and orders the result for
// display. One call processes one snapshot; nothing is retained between
// calls.
package monitor

import (
	"context"
	"fmt"

	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
	"github.com/LauJosefsen/mysql-admin-web/internal/report"
)

// Source supplies the two raw inputs of a snapshot. db.Client implements
// it against a live server; tests use fakes.
type Source interface {
	Sessions(ctx context.Context) ([]domain.Session, error)
	EngineStatus(ctx context.Context) (string, error)
}

// BuildView parses the status report, correlates it with the session
// list and ranks the result. Pure: same inputs, same output, no errors.
func BuildView(sessions []domain.Session, reportText string) []domain.EnrichedSession {
	enriched := Correlate(sessions, report.ParseTransactions(reportText))
	Rank(enriched)
	return enriched
}

// SnapshotView fetches both inputs from src and builds the ranked view.
// Acquisition failures belong to the source; the transformation itself
// cannot fail.
func SnapshotView(ctx context.Context, src Source) ([]domain.EnrichedSession, error) {
	sessions, err := src.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch process list: %w", err)
	}
	status, err := src.EngineStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch engine status: %w", err)
	}
	return BuildView(sessions, status), nil
}
