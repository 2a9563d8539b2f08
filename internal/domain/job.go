package domain

import (
	"time"

	"github.com/google/uuid"
)

// Job — фоновое выполнение analysis flow.
//
// Job создаётся очередью при Enqueue и принадлежит исключительно
// Store. Фоновая горутина мутирует запись ровно три раза за жизнь:
// QUEUED→RUNNING, затем RUNNING→COMPLETED или RUNNING→FAILED.
// Записи не удаляются — cleanup вне рамок дизайна.
type Job struct {
	// ID — уникальный идентификатор job.
	ID uuid.UUID `json:"id"`

	// UserID — владелец запроса.
	UserID string `json:"user_id"`

	// Status — текущий статус жизненного цикла.
	Status JobStatus `json:"status"`

	// CreatedAt — время создания (Enqueue).
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего перехода статуса.
	UpdatedAt time.Time `json:"updated_at"`

	// Result — результат flow. Заполняется только при COMPLETED.
	Result *AnalysisResult `json:"result,omitempty"`

	// Error — сообщение об ошибке. Заполняется только при FAILED.
	Error string `json:"error,omitempty"`
}

// NewJob создаёт job в статусе QUEUED.
func NewJob(userID string) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsFinished возвращает true, если job завершён.
func (j *Job) IsFinished() bool {
	return j.Status.IsTerminal()
}

// MarkRunning переводит job в статус RUNNING.
func (j *Job) MarkRunning() {
	j.Status = JobStatusRunning
	j.UpdatedAt = time.Now()
}

// MarkCompleted переводит job в статус COMPLETED с результатом.
func (j *Job) MarkCompleted(result *AnalysisResult) {
	j.Status = JobStatusCompleted
	j.Result = result
	j.UpdatedAt = time.Now()
}

// MarkFailed переводит job в статус FAILED с ошибкой.
func (j *Job) MarkFailed(err string) {
	j.Status = JobStatusFailed
	j.Error = err
	j.UpdatedAt = time.Now()
}
