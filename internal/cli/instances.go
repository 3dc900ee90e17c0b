package cli

import (
	"fmt"
	"sort"

	"github.com/LauJosefsen/mysql-admin-web/internal/output"
)

// InstancesCmd lists configured instances.
type InstancesCmd struct{}

// Run executes the instances command
func (c *InstancesCmd) Run(globals *Globals) error {
	names := globals.Config.InstanceNames()
	sort.Strings(names)

	if globals.ResolvedFormat() == output.FormatNDJSON {
		type instanceInfo struct {
			Name     string `json:"name"`
			Host     string `json:"host"`
			Port     int    `json:"port"`
			Database string `json:"database,omitempty"`
			Default  bool   `json:"default,omitempty"`
		}
		infos := make([]instanceInfo, 0, len(names))
		for _, name := range names {
			inst, _ := globals.Config.Lookup(name)
			infos = append(infos, instanceInfo{
				Name:     name,
				Host:     inst.Host,
				Port:     inst.Port,
				Database: inst.Database,
				Default:  name == globals.Config.Defaults.Instance,
			})
		}
		return writeNDJSON(globals, map[string]any{
			"type":          "instances",
			"schemaVersion": 1,
			"instances":     infos,
		})
	}

	if len(names) == 0 {
		fmt.Fprintln(globals.Stdout, "No instances configured.")
		return nil
	}
	for _, name := range names {
		inst, _ := globals.Config.Lookup(name)
		marker := " "
		if name == globals.Config.Defaults.Instance {
			marker = "*"
		}
		fmt.Fprintf(globals.Stdout, "%s %s\t%s:%d\n", marker, name, inst.Host, inst.Port)
	}
	return nil
}
