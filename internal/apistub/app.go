// Package apistub runs an in-memory stand-in for the consultation REST API
// so the client can be exercised without the production backend.
package apistub

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/gynecare/internal/apistub/config"
	"github.com/dmitrijs2005/gynecare/internal/apistub/httpapi"
	"github.com/dmitrijs2005/gynecare/internal/apistub/store"
	"github.com/dmitrijs2005/gynecare/internal/logging"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config, logger logging.Logger) *App {
	var opts []httpapi.Option
	if c.ClientID != "" {
		opts = append(opts, httpapi.WithClient(c.ClientID, c.ClientSecret))
	}

	s := httpapi.NewServer(c.ListenAddr, logger, store.New(), c.SecretKey, c.AccessTokenValidityDuration, opts...)

	return &App{config: c, logger: logger, server: s}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is canceled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return runErr
}
