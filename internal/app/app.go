package app

import (
	"context"
	"net/http"

	"github.com/kardianos/service"
	"go.uber.org/zap"

	"github.com/behummble/link-alive/internal/checker"
	"github.com/behummble/link-alive/internal/config"
	linkshttp "github.com/behummble/link-alive/internal/handlers/http"
	"github.com/behummble/link-alive/internal/report"
	linkservice "github.com/behummble/link-alive/internal/service"
)

// App wires the link checker behind the HTTP server and satisfies
// service.Interface so it can run under the OS service manager.
type App struct {
	cfg        *config.Config
	log        *zap.Logger
	server     *linkshttp.Server
	transports *checker.Transports
	done       chan error
}

func NewApp(cfg *config.Config, log *zap.Logger) (*App, error) {
	transports, err := checker.NewTransports()
	if err != nil {
		return nil, err
	}

	linkChecker := checker.NewChecker(transports, cfg.Checker.Timeout, log)
	svc := linkservice.NewService(linkChecker, report.NewPDFReport(), log)
	server := linkshttp.NewServer(log, cfg.Server, svc)

	return &App{
		cfg:        cfg,
		log:        log,
		server:     server,
		transports: transports,
		done:       make(chan error, 1),
	}, nil
}

func (app *App) Handler() http.Handler {
	return app.server.GetHandler()
}

// Start must not block.
func (app *App) Start(service.Service) error {
	go func() {
		app.done <- app.server.Start()
	}()
	app.log.Info(
		"Server is Up",
		zap.String("host", app.cfg.Server.Host),
		zap.Int("port", app.cfg.Server.Port),
	)
	return nil
}

func (app *App) Stop(service.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownTimeout)
	defer cancel()
	return app.Shutdown(ctx)
}

func (app *App) Shutdown(ctx context.Context) error {
	err := app.server.Shutdown(ctx)
	app.transports.CloseIdleConnections()
	app.log.Info("Server is Down")
	return err
}

// Done reports the error the listener stopped with, nil after a clean
// shutdown.
func (app *App) Done() <-chan error {
	return app.done
}
