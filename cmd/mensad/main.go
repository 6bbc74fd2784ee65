package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/mensa/gin"
	"github.com/fwojciec/mensa/goquery"
	mensahttp "github.com/fwojciec/mensa/http"
	mensaslog "github.com/fwojciec/mensa/slog"
	"github.com/fwojciec/mensa/stw"
	gingonic "github.com/gin-gonic/gin"
)

// shutdownTimeout bounds how long in-flight requests may take after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Getenv, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the server program.
type Main struct {
	// EnvFile is loaded into the environment before reading the
	// configuration. A missing file is ignored.
	EnvFile string

	Server *http.Server
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{EnvFile: ".env"}
}

// Run loads the configuration, serves the API until ctx is done and then
// shuts the server down.
func (m *Main) Run(ctx context.Context, getenv func(string) string, stderr io.Writer) error {
	if err := LoadEnvFile(m.EnvFile); err != nil {
		return err
	}
	config, err := LoadConfig(getenv)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	gingonic.SetMode(gingonic.ReleaseMode)

	fetcher := mensahttp.NewRetryFetcher(mensahttp.NewFetcher(mensahttp.WithTimeout(config.Timeout)), logger)
	client := stw.NewClient(mensaslog.NewLoggingFetcher(fetcher, logger), goquery.NewParser())
	client.BaseURL = config.BaseURL

	srv := gin.NewServer(
		mensaslog.NewLoggingMenuService(client, logger),
		mensaslog.NewLoggingFacilityService(client, logger),
		mensaslog.NewLoggingAllergenService(client, logger),
		logger,
	)

	m.Server = &http.Server{
		Addr:              config.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", config.Addr, "base_url", config.BaseURL)
		errc <- m.Server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := m.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
