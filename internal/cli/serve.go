package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/workdesk/internal/auth"
	"github.com/nhle/workdesk/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var (
		addr   string
		noAuth bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and live view stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			log := a.logger(cmd.ErrOrStderr()).With("component", "serve")
			rt, err := openRuntime(a, log)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := rt.session.Start(ctx); err != nil {
				return err
			}

			deps := httpapi.Deps{
				Items:     rt.items,
				Reminders: rt.reminders,
				State:     rt.state,
				Log:       log,
				PageSize:  a.cfg.Display.PageSize,
			}
			if !noAuth {
				deps.Auth = auth.New(a.cfg.Auth.Username, a.secrets())
			}
			srv := httpapi.NewServer(addr, httpapi.NewRouter(deps))
			return serve(ctx, srv, rt)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "disable Basic authentication")
	return cmd
}

// serve runs srv until ctx is done or the listener fails.
func serve(ctx context.Context, srv *http.Server, rt *runtime) error {
	rt.log.Info("http: listening", "addr", srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		rt.log.Info("http: shutdown signal received")
	case err := <-errCh:
		if err != nil {
			runErr = fmt.Errorf("serving %s: %w", srv.Addr, err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		rt.log.InternalError("http: graceful shutdown failed", err)
		if runErr == nil {
			runErr = err
		}
	}
	return runErr
}
