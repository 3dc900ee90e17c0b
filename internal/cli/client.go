package cli

import (
	"context"

	"github.com/LauJosefsen/mysql-admin-web/internal/config"
	"github.com/LauJosefsen/mysql-admin-web/internal/db"
	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
	"github.com/LauJosefsen/mysql-admin-web/internal/monitor"
)

// instanceClient is what commands need from a connected instance.
// db.Client satisfies it; tests substitute fakes via openClient.
type instanceClient interface {
	monitor.Source
	Snapshot(ctx context.Context) ([]domain.EnrichedSession, error)
	Kill(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}

// openClient is swapped out in tests.
var openClient = func(inst config.Instance) (instanceClient, error) {
	return db.Open(inst)
}
