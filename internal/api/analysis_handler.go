package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/flow"
)

// CreateAnalysis выполняет анализ синхронно.
// POST /api/v1/analyses
//
// 200 — результат (COMPLETE или PARTIAL, с warnings).
// 400 — payload не декодируется (ошибка валидации).
// 502 — обязательный шаг распознавания упал.
func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if req.UserID == "" {
		BadRequest(w, "user_id is required")
		return
	}

	result, err := h.runner.Run(r.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidImage):
			ValidationError(w, err.Error())
		case errors.Is(err, flow.ErrVisionStep):
			UpstreamError(w, err.Error())
		default:
			InternalError(w, h.logger, err)
		}
		return
	}

	Success(w, AnalysisFromDomain(result))
}
