package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/meganziesemer/taskapp-final/internal/config"
	"github.com/meganziesemer/taskapp-final/internal/domain/habit"
	"github.com/meganziesemer/taskapp-final/internal/domain/project"
	"github.com/meganziesemer/taskapp-final/internal/store"
	"github.com/meganziesemer/taskapp-final/internal/sync"
)

// app holds the wired client: one store client shared by the repositories,
// the controller owning the snapshot, and the mutator services.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	client     *store.Client
	controller *sync.Controller
	projects   *project.Service
	habits     *habit.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	client := store.New(cfg.Store.URL, cfg.Store.Key, logger)
	projectRepo := store.NewProjectRepository(client)
	habitRepo := store.NewHabitRepository(client)

	controller := sync.NewController(projectRepo, habitRepo, client, logger)

	return &app{
		cfg:        cfg,
		logger:     logger,
		client:     client,
		controller: controller,
		projects:   project.NewService(projectRepo, controller, logger),
		habits:     habit.NewService(habitRepo, controller, logger),
	}, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// confirm prompts on stdin unless the caller already passed --yes.
func confirm(assumeYes bool, format string, args ...any) bool {
	if assumeYes {
		return true
	}
	fmt.Printf(format+" [y/N]: ", args...)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
