package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/zip-fa/reimagined-octo-fiesta/internal/adapter"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/catalog"
	"github.com/zip-fa/reimagined-octo-fiesta/internal/server"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var sf settingsFlags
	sf.register(fs)
	addr := fs.String("addr", "", "listen address (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := sf.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		s.Server.Addr = *addr
	}
	catalogs, err := catalog.NewRegistry()
	if err != nil {
		return err
	}
	srv := server.New(s, adapter.Default(), catalogs)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
