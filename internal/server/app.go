// Package server wires configuration, storage, services and transports into
// a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
	"github.com/dmitrijs2005/userkeeper/internal/server/config"
	gs "github.com/dmitrijs2005/userkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/userkeeper/internal/server/httpserver"
	"github.com/dmitrijs2005/userkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// newRepositoryManager is a seam for testing store selection.
var newRepositoryManager = repomanager.New

type App struct {
	config        *config.Config
	logger        logging.Logger
	repomanager   repomanager.RepositoryManager
	userService   *services.UserService
	exportService *services.ExportService
}

// NewApp opens the configured store and builds the services. Store bootstrap
// (migrations or indexes) failures are logged and startup continues; the
// affected requests fail until the store becomes available.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT secret is not configured, falling back to the built-in default; set JWT_SECRET")
	}

	m, err := newRepositoryManager(ctx, c.DatabaseDSN, c.DatabaseName)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		logger.Error(ctx, "store bootstrap failed, continuing", "error", err)
	} else {
		logger.Info(ctx, "store ready")
	}

	repo := m.Users()

	return &App{
		config:        c,
		logger:        logger,
		repomanager:   m,
		userService:   services.NewUserService(repo, c, logger),
		exportService: services.NewExportService(repo, c, logger),
	}, nil
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

// Run serves HTTP and, when configured, the gRPC health endpoint until ctx is
// cancelled, a termination signal arrives or either server fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if app.config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s := httpserver.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.exportService)
		return s.Run(gctx)
	})

	if app.config.EndpointAddrGRPC != "" {
		g.Go(func() error {
			s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService)
			return s.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server error", "error", err)
	}

	if cerr := app.repomanager.Close(context.Background()); cerr != nil {
		app.logger.Error(ctx, "store close error", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
