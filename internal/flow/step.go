package flow

import (
	"context"
	"sync"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/telemetry"
)

// stepTracker собирает StepRecord'ы выполняющегося flow.
//
// Опциональные шаги финализируются из параллельных горутин,
// поэтому доступ к records сериализован мьютексом. Записи
// добавляются по мере завершения шагов.
type stepTracker struct {
	mu      sync.Mutex
	records map[string]domain.StepRecord
}

func newStepTracker() *stepTracker {
	return &stepTracker{records: make(map[string]domain.StepRecord)}
}

// add фиксирует запись шага. Вызывается ровно один раз на шаг.
func (t *stepTracker) add(rec domain.StepRecord) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[rec.Name] = rec
}

// record возвращает запись шага по имени.
func (t *stepTracker) record(name string) (domain.StepRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[name]
	return rec, ok
}

// snapshot возвращает копию всех записей.
func (t *stepTracker) snapshot() map[string]domain.StepRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]domain.StepRecord, len(t.records))
	for name, rec := range t.records {
		out[name] = rec
	}
	return out
}

// runStep выполняет один именованный unit of work с замером времени.
//
// Время и исход фиксируются в tracker независимо от результата.
// Поведение при ошибке определяется continueOnError:
//   - true  — записывается FAILED, вызывающему возвращается sentinel
//     (zero value) без ошибки; flow продолжается.
//   - false — записывается FAILED, ошибка возвращается вызывающему
//     и должна считаться фатальной для всей операции.
//
// Этим флагом обязательный шаг отличается от опциональных:
// исполнитель один и тот же, policy разная.
//
// timeout ограничивает продолжительность вызова коллаборатора —
// медленный сервис не может подвесить flow навсегда.
func runStep[T any](ctx context.Context, tr *stepTracker, name string, timeout time.Duration, continueOnError bool, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := fn(stepCtx)
	elapsed := time.Since(start)

	if err != nil {
		tr.add(domain.StepRecord{
			Name:      name,
			StartedAt: start,
			Duration:  elapsed,
			Status:    domain.StepStatusFailed,
			Error:     err.Error(),
		})
		telemetry.ObserveStep(name, string(domain.StepStatusFailed), elapsed)

		var zero T
		if continueOnError {
			return zero, nil
		}
		return zero, err
	}

	tr.add(domain.StepRecord{
		Name:      name,
		StartedAt: start,
		Duration:  elapsed,
		Status:    domain.StepStatusSucceeded,
	})
	telemetry.ObserveStep(name, string(domain.StepStatusSucceeded), elapsed)

	return result, nil
}
