package services

import (
	"context"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
)

// DietClient — HTTP-клиент сервиса диетических рекомендаций
// ("Smart Diet"). Реализует flow.DietService.
type DietClient struct {
	httpClient
}

// NewDietClient создаёт клиент. timeout <= 0 — значение по умолчанию.
func NewDietClient(baseURL string, timeout time.Duration) *DietClient {
	return &DietClient{httpClient: newHTTPClient(baseURL, timeout)}
}

type dietRequest struct {
	UserID       string   `json:"user_id"`
	MealType     string   `json:"meal_type"`
	Goal         string   `json:"goal,omitempty"`
	Restrictions []string `json:"restrictions,omitempty"`
}

// Suggest возвращает диетические рекомендации для пользователя.
func (c *DietClient) Suggest(ctx context.Context, userID string, req domain.DietRequest) (*domain.DietResult, error) {
	payload := dietRequest{
		UserID:       userID,
		MealType:     req.MealType,
		Goal:         req.Goal,
		Restrictions: req.Restrictions,
	}

	var result domain.DietResult
	if err := c.postJSON(ctx, "/v1/suggestions", payload, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
