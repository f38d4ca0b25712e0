package main

import (
	"flag"
	"fmt"
	"os"

	svc "github.com/kardianos/service"
	"go.uber.org/zap"

	"github.com/behummble/link-alive/internal/app"
	"github.com/behummble/link-alive/internal/config"
	"github.com/behummble/link-alive/internal/logger"
)

var control = flag.String("service", "", fmt.Sprintf("service control action, one of %q", svc.ControlAction))

func main() {
	cfg := config.MustLoad()

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Fatal("Cannot init app", zap.Error(err))
	}

	s, err := registerService(application, cfg.Service)
	if err != nil {
		log.Fatal("Cannot register service", zap.Error(err))
	}

	if *control != "" {
		if err := svc.Control(s, *control); err != nil {
			log.Fatal("Service control failed", zap.String("action", *control), zap.Error(err))
		}
		return
	}

	go func() {
		if err := <-application.Done(); err != nil {
			log.Fatal("Server stopped", zap.Error(err))
		}
	}()

	if err := s.Run(); err != nil {
		log.Error("Service stopped with error", zap.Error(err))
	}
}

func registerService(application *app.App, cfg config.ServiceConfig) (svc.Service, error) {
	svcConfig := &svc.Config{
		Name:        cfg.Name,
		DisplayName: cfg.DisplayName,
		Description: cfg.Description,
	}

	return svc.New(application, svcConfig)
}
