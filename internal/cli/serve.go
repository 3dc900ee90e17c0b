package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/LauJosefsen/mysql-admin-web/internal/server"
)

// ServeCmd runs the web UI and JSON API for all configured instances.
type ServeCmd struct {
	Listen string `help:"Listen address" default:"${config_listen}"`
}

// Run executes the serve command
func (c *ServeCmd) Run(globals *Globals) error {
	if len(globals.Config.Instances) == 0 {
		return outputErrorCommon(globals, "NO_INSTANCES",
			"no instances configured", "add instances to madw.yaml")
	}

	logger := newLogger(globals)
	defer logger.Sync()

	backends := make(map[string]server.Backend, len(globals.Config.Instances))
	for _, name := range globals.Config.InstanceNames() {
		inst, _ := globals.Config.Lookup(name)
		client, err := openClient(inst)
		if err != nil {
			return outputErrorCommon(globals, "CONNECT_FAILED",
				fmt.Sprintf("instance %s: %v", name, err))
		}
		defer client.Close()
		backends[name] = client
		logger.Info("instance registered",
			zap.String("name", name),
			zap.String("addr", fmt.Sprintf("%s:%d", inst.Host, inst.Port)))
	}

	srv, err := server.New(backends, logger)
	if err != nil {
		return err
	}

	shutdownTimeout, err := time.ParseDuration(globals.Config.Server.ShutdownTimeout)
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, c.Listen, shutdownTimeout)
}
