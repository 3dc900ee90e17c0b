package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/LauJosefsen/mysql-admin-web/internal/output"
)

// KillCmd terminates one session by id.
type KillCmd struct {
	ID       int64  `arg:"" help:"Session id to terminate"`
	Instance string `short:"i" help:"Instance name" default:"${config_instance}"`
}

// Run executes the kill command
func (c *KillCmd) Run(globals *Globals) error {
	name, inst, err := resolveInstance(globals, c.Instance)
	if err != nil {
		return err
	}

	client, err := openClient(inst)
	if err != nil {
		return outputErrorCommon(globals, "CONNECT_FAILED", err.Error())
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Kill(ctx, c.ID); err != nil {
		return outputErrorCommon(globals, "KILL_FAILED", err.Error(),
			"the session may have already finished")
	}

	if globals.ResolvedFormat() == output.FormatNDJSON {
		return output.NewNDJSONWriter(globals.Stdout).WriteResult("kill", name, c.ID, true)
	}
	_, err = fmt.Fprintf(globals.Stdout, "Killed session %d on %s\n", c.ID, name)
	return err
}
