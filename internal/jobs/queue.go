package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/telemetry"
)

// Runner выполняет analysis flow. Реализуется flow.Orchestrator;
// в тестах подменяется фейком.
type Runner interface {
	Run(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error)
}

// Queue принимает запросы на фоновое выполнение analysis flow.
//
// Enqueue возвращает handle сразу, не дожидаясь начала выполнения.
// Каждая фоновая горутина отслеживается через WaitGroup — Wait
// используется для graceful shutdown. Очередь не ограничивает
// количество одновременных jobs.
type Queue struct {
	store  *Store
	runner Runner
	logger *slog.Logger
	wg     sync.WaitGroup
}

// Config — конфигурация Queue.
type Config struct {
	Store  *Store
	Runner Runner
	Logger *slog.Logger
}

// NewQueue создаёт Queue.
func NewQueue(cfg Config) *Queue {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Queue{
		store:  cfg.Store,
		runner: cfg.Runner,
		logger: logger,
	}
}

// Enqueue валидирует запрос, создаёт job в статусе QUEUED и запускает
// фоновое выполнение. Возвращает снапшот job до того, как фоновая
// работа успела начаться.
//
// Валидация синхронная: если payload не декодируется, Enqueue
// возвращает domain.ErrInvalidImage и job не создаётся вовсе.
func (q *Queue) Enqueue(ctx context.Context, req domain.AnalysisRequest) (*domain.Job, error) {
	if _, err := req.DecodeImage(); err != nil {
		return nil, err
	}

	job := domain.NewJob(req.UserID)
	if err := q.store.Create(job); err != nil {
		return nil, err
	}
	snapshot := *job

	q.logger.Info("job enqueued",
		"job_id", job.ID,
		"user_id", req.UserID,
		"meal_type", req.MealType,
	)
	telemetry.JobStarted()

	// Фоновая горутина держит только ID: после завершения у неё
	// не остаётся ссылки на запись, мутации идут через Store.
	q.wg.Add(1)
	go q.runJob(job.ID, req)

	return &snapshot, nil
}

// Get возвращает снапшот job по ID.
func (q *Queue) Get(id uuid.UUID) (*domain.Job, error) {
	return q.store.Get(id)
}

// Wait блокирует до завершения всех фоновых jobs.
// Используется при shutdown и в тестах.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// runJob — фоновый unit of work: QUEUED→RUNNING→COMPLETED/FAILED.
//
// Паника внутри перехватывается и переводит job в FAILED —
// необработанная ошибка оставила бы job навсегда в RUNNING,
// из этого состояния выхода нет.
func (q *Queue) runJob(id uuid.UUID, req domain.AnalysisRequest) {
	defer q.wg.Done()

	logger := telemetry.WithUserID(telemetry.WithJobID(q.logger, id.String()), req.UserID)

	// Парный к JobStarted декремент: ровно один на job, каким бы
	// путём горутина ни завершилась. Статус читается из Store после
	// терминальной мутации; если записи нет, считаем job упавшим.
	defer func() {
		status := domain.JobStatusFailed
		if job, err := q.store.Get(id); err == nil {
			status = job.Status
		}
		telemetry.JobFinished(string(status))
	}()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "panic", r)
			q.finish(id, logger, func(j *domain.Job) {
				j.MarkFailed(fmt.Sprintf("panic: %v", r))
			})
		}
	}()

	if err := q.store.Update(id, func(j *domain.Job) { j.MarkRunning() }); err != nil {
		logger.Error("failed to mark job running", "error", err)
		return
	}
	logger.Info("job started")

	// Выполнение не привязано к контексту Enqueue: вызывающая сторона
	// уже получила handle. Таймауты отдельных шагов ограничивает
	// оркестратор.
	result, err := q.runner.Run(context.Background(), req)
	if err != nil {
		q.finish(id, logger, func(j *domain.Job) { j.MarkFailed(err.Error()) })
		logger.Warn("job failed", "error", err)
		return
	}

	q.finish(id, logger, func(j *domain.Job) { j.MarkCompleted(result) })
	logger.Info("job completed", "flow_status", result.Status)
}

// finish применяет терминальный переход. Метрики фиксирует
// отложенный декремент в runJob, поэтому ошибка здесь только
// логируется — горутина в любом случае завершается.
func (q *Queue) finish(id uuid.UUID, logger *slog.Logger, mutate func(*domain.Job)) {
	if err := q.store.Update(id, mutate); err != nil {
		logger.Error("failed to finalize job", "error", err)
	}
}
