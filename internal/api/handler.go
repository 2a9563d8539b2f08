package api

import (
	"log/slog"

	"github.com/shaiso/Mealflow/internal/jobs"
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	runner jobs.Runner
	queue  *jobs.Queue
	logger *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	// Runner выполняет flow синхронно (flow.Orchestrator).
	Runner jobs.Runner

	// Queue выполняет flow в фоне.
	Queue *jobs.Queue

	// Logger
	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		runner: cfg.Runner,
		queue:  cfg.Queue,
		logger: logger,
	}
}
