package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/doeshing/raqm/internal/app"
	"github.com/doeshing/raqm/internal/domain"
)

// NewServeCommand creates the serve command.
func NewServeCommand(container *app.Container) *cobra.Command {
	var (
		addr string
		mode string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assistant endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := container.Config.Server
			if addr != "" {
				settings.Addr = addr
			}
			assistantMode := container.Config.Assistant.Mode
			if mode != "" {
				assistantMode = domain.AssistantMode(mode)
			}

			srv, err := container.NewServer(settings, assistantMode)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				container.Logger.Info("shutting down", map[string]interface{}{"cause": context.Cause(gctx).Error()})
				return nil
			})

			fmt.Fprintf(cmd.OutOrStdout(), "raqm serving %s mode on %s\n", assistantMode, settings.Addr)
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&mode, "mode", "", "Assistant mode: numeric|content (default from config)")
	return cmd
}
