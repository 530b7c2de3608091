// Package server initializes and runs the application server.
// It opens the configured database backend, bootstraps the schema,
// wires the record services and starts the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/facevault/internal/logging"
	"github.com/dmitrijs2005/facevault/internal/server/config"
	"github.com/dmitrijs2005/facevault/internal/server/httpapi"
	"github.com/dmitrijs2005/facevault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/facevault/internal/server/services"
)

type App struct {
	config           *config.Config
	logger           logging.Logger
	db               *sql.DB
	userService      *services.UserService
	embeddingService *services.EmbeddingService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	db, err := rm.Open(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := rm.Bootstrap(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db bootstrap error: %w", err)
	}

	us := services.NewUserService(db, rm)
	es := services.NewEmbeddingService(db, rm)

	return &App{config: c, logger: logger, db: db, userService: us, embeddingService: es}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.embeddingService)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
