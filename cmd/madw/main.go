package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/LauJosefsen/mysql-admin-web/internal/cli"
	"github.com/LauJosefsen/mysql-admin-web/internal/config"
)

const quickStart = `madw - MariaDB process list and transaction monitor

Quick start:
  madw instances                        List configured instances
  madw sessions -i prod                 One snapshot, ranked by open transactions
  madw watch -i prod                    Live terminal view
  madw serve                            Web UI and JSON API for all instances

For help:
  madw --help                           All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format":   cfg.Format,
		"config_instance": cfg.Defaults.Instance,
		"config_interval": cfg.Defaults.Interval,
		"config_listen":   cfg.Server.Listen,
	}

	ctx := kong.Parse(&c,
		kong.Name("madw"),
		kong.Description("mysql-admin-web: monitor MariaDB sessions and their open InnoDB transactions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	if err := ctx.Run(globals); err != nil {
		os.Exit(1)
	}
}
