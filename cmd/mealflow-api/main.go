package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shaiso/Mealflow/internal/api"
	"github.com/shaiso/Mealflow/internal/flow"
	"github.com/shaiso/Mealflow/internal/jobs"
	"github.com/shaiso/Mealflow/internal/mq"
	"github.com/shaiso/Mealflow/internal/services"
	"github.com/shaiso/Mealflow/internal/telemetry"
)

var (
	startTime = time.Now()
	reqTotal  = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealflow_api_http_requests_total",
		Help: "Total HTTP requests handled by mealflow_api",
	})
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting mealflow-api")

	// Адреса внешних сервисов
	visionURL := envOr("VISION_URL", "http://localhost:8081")
	recipeURL := envOr("RECIPE_URL", "http://localhost:8082")
	dietURL := envOr("DIET_URL", "http://localhost:8083")

	// Подключаемся к RabbitMQ для rewards-уведомлений.
	// Без брокера сервис работает, просто без уведомлений.
	var rewards flow.RewardsService
	conn, err := mq.NewConnection(mq.DefaultURL(), logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, rewards notifications disabled", "error", err)
	} else {
		defer conn.Close()

		setupCtx, setupCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := mq.SetupTopology(setupCtx, conn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			setupCancel()
			os.Exit(1)
		}
		setupCancel()

		rewards = services.NewAMQPRewards(mq.NewPublisher(conn, logger))
		logger.Info("connected to rabbitmq")
	}

	// Создаём orchestrator с HTTP-клиентами внешних сервисов
	orchestrator := flow.New(flow.Config{
		Vision:  services.NewVisionClient(visionURL, 0),
		Recipes: services.NewRecipeClient(recipeURL, 0),
		Diet:    services.NewDietClient(dietURL, 0),
		Rewards: rewards,
		Logger:  logger,
	})

	// Создаём очередь фоновых jobs
	queue := jobs.NewQueue(jobs.Config{
		Store:  jobs.NewStore(),
		Runner: orchestrator,
		Logger: logger,
	})

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		Runner: orchestrator,
		Queue:  queue,
		Logger: logger,
	})

	mux := http.NewServeMux()

	// Health и metrics
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		reqTotal.Inc()
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "ok %s", time.Since(startTime))
	})
	mux.Handle("/metrics", promhttp.Handler())

	// Регистрируем API маршруты
	handler.RegisterRoutes(mux)

	addr := ":8080"
	if v := os.Getenv("API_PORT"); v != "" {
		addr = ":" + v
	}

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Запускаем сервер в горутине
	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Ожидаем сигнал завершения
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Дожидаемся завершения фоновых jobs
	queue.Wait()
	logger.Info("stopped")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
