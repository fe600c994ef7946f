// routes_serve.go - Server-Start und Lifecycle-Management
// Enthaelt: Serve() - Hauptfunktion zum Starten des HTTP-Servers

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grolp/grolp/config"
	"github.com/grolp/grolp/envconfig"
	"github.com/grolp/grolp/logutil"
	"github.com/grolp/grolp/version"
)

// Serve startet den HTTP-Server und blockiert bis SIGINT/SIGTERM
func Serve(ln net.Listener) error {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	slog.Info("server config", "env", envconfig.Values())

	s := &Server{addr: ln.Addr(), layout: config.DefaultVisualLayout()}

	h, err := s.GenerateRoutes()
	if err != nil {
		return err
	}

	srvr := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version), "kinds", config.Kinds())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srvr.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srvr.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
