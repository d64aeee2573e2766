package main

import (
	"context"
	"log"
	"os"

	"github.com/example/tasklist/config"
	domain "github.com/example/tasklist/domain/task"
	"github.com/example/tasklist/modules/activity"
	"github.com/example/tasklist/modules/api"
	"github.com/example/tasklist/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task List ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Order: event consumers and the core module first, then the API that
	// depends on the task module.
	app.Register(activity.NewModule(logger))
	app.Register(task.NewModule(logger, domain.WithDefaultFilter(cfg.DefaultFilter)))
	app.Register(api.NewModule(logger, cfg.HTTPAddr))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	logger.Info("Task list started",
		"addr", cfg.HTTPAddr,
		"default_filter", cfg.DefaultFilter.String())
	logger.Info("REST API endpoints",
		"routes", []string{
			"POST /api/v1/tasks",
			"GET  /api/v1/tasks?filter=active|complete|all",
			"GET  /api/v1/tasks/:id",
			"POST /api/v1/tasks/:id/complete",
			"POST /api/v1/tasks/:id/reopen",
			"PUT  /api/v1/tasks/filter",
			"GET  /health",
		})
	logger.Info("Press Ctrl+C to shutdown gracefully")

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				logger.Info("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
