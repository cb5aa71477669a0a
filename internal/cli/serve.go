package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/internal/server"
)

// shutdownTimeout bounds how long in-flight requests may run after an
// interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command exposing the views over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the category views over HTTP",
		Long: `Serve the table, filter and tree views as a JSON/SVG HTTP API.

Mutations are forwarded to the backend and invalidate the shared cache, so
several instances pointed at the same Redis cache stay consistent.

Routes:
  GET    /health
  GET    /api/categories/table?page&limit&q&type&createdBy
  GET    /api/categories/filters?page&limit
  GET    /api/categories/graph?direction&all&format=json|dot|svg
  POST   /api/categories
  PUT    /api/categories/{id}
  DELETE /api/categories/{id}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, addr string) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if addr == "" {
		addr = s.cfg.Server.Addr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           server.New(s.runner, c.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	printInfo(w, "Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printKeyValue(w, "Backend", s.cfg.BaseURL)
	printKeyValue(w, "Cache", s.cfg.Cache.Backend)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
