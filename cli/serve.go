// ABOUTME: Serve subcommand
// ABOUTME: Runs the REST API over the configured database until interrupted
package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/rolodex/web"
)

func (a *app) newServeCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the contacts REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if listen == "" {
				listen = a.cfg.Server.Listen
			}
			a.logger.Info("serving contacts api",
				zap.String("listen", listen),
				zap.String("dialect", store.Dialect()),
			)

			srv := web.NewServer(store,
				web.WithLogger(a.logger.Named("http")),
				web.WithAuthToken(a.cfg.Server.Token),
			)
			return srv.Run(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (default from config, :3001)")
	return cmd
}
