package cli

import (
	"context"
	"time"

	"github.com/LauJosefsen/mysql-admin-web/internal/filter"
	"github.com/LauJosefsen/mysql-admin-web/internal/output"
)

// SessionsCmd prints one ranked snapshot of sessions and transactions.
type SessionsCmd struct {
	Instance string   `short:"i" help:"Instance name" default:"${config_instance}"`
	Where    []string `short:"w" help:"Filter condition like 'user=app' or 'trx_active>=10' (can be repeated, AND logic)"`
}

// Run executes the sessions command
func (c *SessionsCmd) Run(globals *Globals) error {
	name, inst, err := resolveInstance(globals, c.Instance)
	if err != nil {
		return err
	}

	where, err := filter.NewWhereFilter(c.Where)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_WHERE", err.Error())
	}

	globals.Debug("connecting to instance %s (%s:%d)", name, inst.Host, inst.Port)
	client, err := openClient(inst)
	if err != nil {
		return outputErrorCommon(globals, "CONNECT_FAILED", err.Error())
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := client.Snapshot(ctx)
	if err != nil {
		return outputErrorCommon(globals, "SNAPSHOT_FAILED", err.Error(),
			"check connectivity and the monitor account's PROCESS privilege")
	}
	view = where.Apply(view)

	switch globals.ResolvedFormat() {
	case output.FormatTable:
		return output.RenderTable(globals.Stdout, view, globals.Config.Defaults.InfoWidth)
	default:
		return output.NewNDJSONWriter(globals.Stdout).WriteSnapshot(name, time.Now(), view)
	}
}
