// Package db provides connectivity to a monitored MariaDB/MySQL server:
// fetching the process list, fetching the InnoDB status report and
// terminating connections. It owns every failure mode of data
// acquisition; the monitor core never sees an error.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/LauJosefsen/mysql-admin-web/internal/config"
	"github.com/LauJosefsen/mysql-admin-web/internal/domain"
	"github.com/LauJosefsen/mysql-admin-web/internal/monitor"
)

// Client wraps a connection pool for one configured instance.
type Client struct {
	db *sql.DB
}

// DSN builds the driver connection string for an instance.
func DSN(inst config.Instance) string {
	cfg := mysql.NewConfig()
	cfg.User = inst.User
	cfg.Passwd = inst.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", inst.Host, inst.Port)
	cfg.DBName = inst.Database
	if d, err := time.ParseDuration(inst.Timeout); err == nil && d > 0 {
		cfg.Timeout = d
		cfg.ReadTimeout = d
		cfg.WriteTimeout = d
	}
	return cfg.FormatDSN()
}

// Open creates a client for the instance. The server is not contacted
// until the first query; use Ping to verify connectivity early.
func Open(inst config.Instance) (*Client, error) {
	pool, err := sql.Open("mysql", DSN(inst))
	if err != nil {
		return nil, fmt.Errorf("open %s:%d: %w", inst.Host, inst.Port, err)
	}
	if inst.MaxOpenConns > 0 {
		pool.SetMaxOpenConns(inst.MaxOpenConns)
	}
	pool.SetConnMaxIdleTime(time.Minute)
	return &Client{db: pool}, nil
}

// Ping verifies the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.db.Close()
}

// Sessions returns the active connections via SHOW FULL PROCESSLIST.
// MariaDB reports a ninth Progress column that MySQL lacks; extra
// columns from future versions are ignored.
func (c *Client) Sessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := c.db.QueryContext(ctx, "SHOW FULL PROCESSLIST")
	if err != nil {
		return nil, fmt.Errorf("show processlist: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("show processlist: %w", err)
	}

	var sessions []domain.Session
	for rows.Next() {
		var (
			id                           int64
			user, host                   string
			dbName, command, state, info sql.NullString
			timeSec                      sql.NullInt64
			progress                     sql.NullFloat64
		)
		dest := []any{&id, &user, &host, &dbName, &command, &timeSec, &state, &info}
		if len(cols) > 8 {
			dest = append(dest, &progress)
		}
		for len(dest) < len(cols) {
			var ignore sql.RawBytes
			dest = append(dest, &ignore)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan processlist row: %w", err)
		}
		sessions = append(sessions, domain.Session{
			ID:          id,
			User:        user,
			Host:        host,
			DB:          dbName.String,
			Command:     command.String,
			TimeSeconds: timeSec.Int64,
			State:       state.String,
			Info:        info.String,
			Progress:    progress.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read processlist: %w", err)
	}
	return sessions, nil
}

// EngineStatus returns the raw text of SHOW ENGINE INNODB STATUS.
func (c *Client) EngineStatus(ctx context.Context) (string, error) {
	var typ, name, status string
	row := c.db.QueryRowContext(ctx, "SHOW ENGINE INNODB STATUS")
	if err := row.Scan(&typ, &name, &status); err != nil {
		return "", fmt.Errorf("show engine innodb status: %w", err)
	}
	return status, nil
}

// Kill terminates the connection with the given id. KILL does not accept
// placeholders, so the statement is formatted from the integer directly.
func (c *Client) Kill(ctx context.Context, id int64) error {
	if _, err := c.db.ExecContext(ctx, killStatement(id)); err != nil {
		return fmt.Errorf("kill %d: %w", id, err)
	}
	return nil
}

func killStatement(id int64) string {
	return fmt.Sprintf("KILL CONNECTION %d", id)
}

// Snapshot fetches both inputs and returns the ranked view.
func (c *Client) Snapshot(ctx context.Context) ([]domain.EnrichedSession, error) {
	return monitor.SnapshotView(ctx, c)
}
