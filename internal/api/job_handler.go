package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/jobs"
)

// CreateJob ставит анализ в фоновую очередь.
// POST /api/v1/jobs
//
// 202 — job создан, handle в теле ответа (статус QUEUED).
// 400 — payload не декодируется; job не создаётся (валидация
// выполняется синхронно, до постановки в очередь).
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.UserID == "" {
		BadRequest(w, "user_id is required")
		return
	}

	job, err := h.queue.Enqueue(r.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidImage) {
			ValidationError(w, err.Error())
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	Accepted(w, JobFromDomain(job))
}

// GetJob возвращает текущий снапшот job.
// GET /api/v1/jobs/{id}
//
// Чистый polling: никаких ожиданий, снапшот может быть ещё
// QUEUED или RUNNING.
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid job id")
		return
	}

	job, err := h.queue.Get(id)
	if err != nil {
		if errors.Is(err, jobs.ErrJobNotFound) {
			NotFound(w, "job not found")
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	Success(w, JobFromDomain(job))
}
