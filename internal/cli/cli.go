// Package cli wires the madw commands: serve, sessions, kill, watch,
// instances and config.
package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/LauJosefsen/mysql-admin-web/internal/config"
	"github.com/LauJosefsen/mysql-admin-web/internal/output"
)

// CLI is the top-level kong command tree.
type CLI struct {
	Format  string `help:"Output format: auto, table or ndjson" enum:"auto,table,ndjson" default:"${config_format}"`
	Quiet   bool   `help:"Suppress non-essential output"`
	Verbose bool   `help:"Enable verbose debug logging"`

	Serve     ServeCmd     `cmd:"" help:"Run the web UI and JSON API"`
	Sessions  SessionsCmd  `cmd:"" help:"Print one snapshot of sessions and open transactions"`
	Kill      KillCmd      `cmd:"" help:"Terminate a session by id"`
	Watch     WatchCmd     `cmd:"" help:"Live terminal view of an instance"`
	Instances InstancesCmd `cmd:"" help:"List configured instances"`
	Config    ConfigCmd    `cmd:"" help:"Configuration helpers"`
}

// Globals carries shared state into command Run methods.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	debug *zap.SugaredLogger
}

// NewGlobalsWithConfig builds Globals from parsed flags with config
// fallbacks applied.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	verbose := c.Verbose || cfg.Verbose
	return &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		debug:   newDebugLogger(verbose),
	}
}

// ResolvedFormat maps the auto format to a concrete one based on
// whether stdout is a terminal.
func (g *Globals) ResolvedFormat() string {
	if f, ok := g.Stdout.(*os.File); ok {
		return output.ResolveFormat(g.Format, f.Fd())
	}
	if g.Format == "" || g.Format == output.FormatAuto {
		return output.FormatNDJSON
	}
	return g.Format
}

// resolveInstance picks the instance for a command: the -i flag, the
// configured default, or the sole configured instance.
func resolveInstance(globals *Globals, name string) (string, config.Instance, error) {
	if name == "" {
		name = globals.Config.Defaults.Instance
	}
	if name == "" && len(globals.Config.Instances) == 1 {
		name = globals.Config.InstanceNames()[0]
	}
	if name == "" {
		return "", config.Instance{}, outputErrorCommon(globals, "NO_INSTANCE",
			"no instance selected", "pass -i or set defaults.instance in madw.yaml")
	}
	inst, ok := globals.Config.Lookup(name)
	if !ok {
		return "", config.Instance{}, outputErrorCommon(globals, "INSTANCE_NOT_FOUND",
			fmt.Sprintf("no such instance: %s", name), "run 'madw instances' to list configured instances")
	}
	return name, inst, nil
}
