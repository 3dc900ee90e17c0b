package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LauJosefsen/mysql-admin-web/internal/monitor"
	"github.com/LauJosefsen/mysql-admin-web/internal/tui"
)

// WatchCmd shows a live, auto-refreshing view of one instance.
type WatchCmd struct {
	Instance string        `short:"i" help:"Instance name" default:"${config_instance}"`
	Interval time.Duration `help:"Refresh interval" default:"${config_interval}"`
}

// Run executes the watch command
func (c *WatchCmd) Run(globals *Globals) error {
	name, inst, err := resolveInstance(globals, c.Instance)
	if err != nil {
		return err
	}

	client, err := openClient(inst)
	if err != nil {
		return outputErrorCommon(globals, "CONNECT_FAILED", err.Error())
	}
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := monitor.NewPoller(client, c.Interval, nil)
	go poller.Run(ctx)

	model := tui.NewModel(name, poller.Snapshots(), client)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
