package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GustavoCaso/carfinder/internal/cli"
	"github.com/GustavoCaso/carfinder/internal/config"
	"github.com/GustavoCaso/carfinder/internal/logger"
	"github.com/GustavoCaso/carfinder/internal/router"
)

type webCommand struct {
	port    string
	timeout int
}

func NewCommand() cli.Command {
	return &webCommand{}
}

func (c *webCommand) Description() string {
	return "Browse the catalog in a web interface"
}

const (
	defaultTimeout  = 3
	shutdownTimeout = 5 * time.Second
)

func (c *webCommand) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.port, "p", "", "port (defaults to CARFINDER_PORT or 8080)")
	fs.IntVar(&c.timeout, "t", defaultTimeout, "read header timeout in seconds")
}

func (c *webCommand) server(conf *config.Config, handler http.Handler) *http.Server {
	port := c.port
	if port == "" {
		port = conf.Port
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		ReadHeaderTimeout: time.Duration(c.timeout) * time.Second,
		Handler:           handler,
	}
}

func (c *webCommand) Run(conf *config.Config, logger *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, cache, err := cli.NewSession(ctx, conf, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	handler, _ := router.New(s, router.Options{Currency: conf.Currency, Budget: conf.Budget}, logger)
	server := c.server(conf, handler)

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Open catalog on http://localhost%s", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
