package cli

import (
	"encoding/json"
	"fmt"

	"github.com/LauJosefsen/mysql-admin-web/internal/output"
)

// ConfigCmd groups configuration helpers.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration"`
}

// ConfigShowCmd prints the effective configuration with secrets redacted.
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config

	if globals.ResolvedFormat() == output.FormatNDJSON {
		type redactedInstance struct {
			Host     string `json:"host"`
			Port     int    `json:"port"`
			User     string `json:"user"`
			Database string `json:"database,omitempty"`
			Timeout  string `json:"timeout,omitempty"`
		}
		instances := make(map[string]redactedInstance, len(cfg.Instances))
		for _, name := range cfg.InstanceNames() {
			inst, _ := cfg.Lookup(name)
			instances[name] = redactedInstance{
				Host:     inst.Host,
				Port:     inst.Port,
				User:     inst.User,
				Database: inst.Database,
				Timeout:  inst.Timeout,
			}
		}
		return writeNDJSON(globals, map[string]any{
			"type":          "config",
			"schemaVersion": 1,
			"format":        cfg.Format,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"defaults":      cfg.Defaults,
			"server":        cfg.Server,
			"instances":     instances,
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "Defaults:")
	fmt.Fprintf(globals.Stdout, "  instance: %s\n", cfg.Defaults.Instance)
	fmt.Fprintf(globals.Stdout, "  interval: %s\n", cfg.Defaults.Interval)
	fmt.Fprintf(globals.Stdout, "  info_width: %d\n", cfg.Defaults.InfoWidth)
	fmt.Fprintln(globals.Stdout, "Server:")
	fmt.Fprintf(globals.Stdout, "  listen: %s\n", cfg.Server.Listen)
	fmt.Fprintf(globals.Stdout, "  shutdown_timeout: %s\n", cfg.Server.ShutdownTimeout)
	fmt.Fprintln(globals.Stdout, "Instances:")
	for _, name := range cfg.InstanceNames() {
		inst, _ := cfg.Lookup(name)
		fmt.Fprintf(globals.Stdout, "  %s: %s@%s:%d/%s\n", name, inst.User, inst.Host, inst.Port, inst.Database)
	}
	return nil
}

func writeNDJSON(globals *Globals, v any) error {
	return json.NewEncoder(globals.Stdout).Encode(v)
}
