// Package main implements taskctl, a command-line client for the task store.
// It talks to the store directly through the task use case, without the API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ai-task-manager/config"
	"ai-task-manager/internal/app"
	"ai-task-manager/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(openApp)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// openApp loads config.yaml the same way the API server does.
func openApp(ctx context.Context, verbose bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := log.NewNop()
	if verbose {
		logger = log.Init(log.ZapConfig{
			Level:    "debug",
			Mode:     "debug",
			Encoding: "console",
		})
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{uc: a.TaskUseCase, dates: a.DateMath, close: a.Close}, nil
}
