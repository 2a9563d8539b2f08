package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mealflow/internal/domain"
)

// Analysis DTOs

// AnalyzeRequest — запрос на анализ (синхронный или фоновый).
type AnalyzeRequest struct {
	UserID      string                    `json:"user_id"`
	ImageData   string                    `json:"image_data"`
	MealType    string                    `json:"meal_type"`
	Context     string                    `json:"context,omitempty"`
	RecipePrefs *domain.RecipePreferences `json:"recipe_prefs,omitempty"`
	DietPrefs   *domain.DietPreferences   `json:"diet_prefs,omitempty"`
}

// ToDomain конвертирует AnalyzeRequest в domain.AnalysisRequest.
func (r AnalyzeRequest) ToDomain() domain.AnalysisRequest {
	return domain.AnalysisRequest{
		UserID:      r.UserID,
		ImageData:   r.ImageData,
		MealType:    r.MealType,
		Context:     r.Context,
		RecipePrefs: r.RecipePrefs,
		DietPrefs:   r.DietPrefs,
	}
}

// StepResponse — запись о шаге в ответе API.
type StepResponse struct {
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

// AnalysisResponse — результат анализа в ответе API.
type AnalysisResponse struct {
	Status     string                  `json:"status"`
	Vision     *domain.VisionResult    `json:"vision,omitempty"`
	Recipe     *domain.RecipeResult    `json:"recipe,omitempty"`
	Diet       *domain.DietResult      `json:"diet,omitempty"`
	Steps      map[string]StepResponse `json:"steps"`
	UserID     string                  `json:"user_id"`
	MealType   string                  `json:"meal_type"`
	DurationMS int64                   `json:"duration_ms"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// AnalysisFromDomain конвертирует domain.AnalysisResult в AnalysisResponse.
func AnalysisFromDomain(r *domain.AnalysisResult) *AnalysisResponse {
	if r == nil {
		return nil
	}

	steps := make(map[string]StepResponse, len(r.Steps))
	for name, rec := range r.Steps {
		steps[name] = StepResponse{
			StartedAt:  rec.StartedAt,
			DurationMS: rec.Duration.Milliseconds(),
			Status:     string(rec.Status),
			Error:      rec.Error,
		}
	}

	return &AnalysisResponse{
		Status:     string(r.Status),
		Vision:     r.Vision,
		Recipe:     r.Recipe,
		Diet:       r.Diet,
		Steps:      steps,
		UserID:     r.UserID,
		MealType:   r.MealType,
		DurationMS: r.Duration.Milliseconds(),
		Warnings:   r.Warnings,
	}
}

// Job DTOs

// JobResponse — job в ответе API.
type JobResponse struct {
	ID        uuid.UUID         `json:"id"`
	UserID    string            `json:"user_id"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Result    *AnalysisResponse `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// JobFromDomain конвертирует domain.Job в JobResponse.
func JobFromDomain(j *domain.Job) JobResponse {
	return JobResponse{
		ID:        j.ID,
		UserID:    j.UserID,
		Status:    string(j.Status),
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
		Result:    AnalysisFromDomain(j.Result),
		Error:     j.Error,
	}
}
