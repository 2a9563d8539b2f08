package services

import (
	"context"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
)

// RecipeClient — HTTP-клиент сервиса генерации рецептов.
// Реализует flow.RecipeService.
type RecipeClient struct {
	httpClient
}

// NewRecipeClient создаёт клиент. timeout <= 0 — значение по умолчанию.
func NewRecipeClient(baseURL string, timeout time.Duration) *RecipeClient {
	return &RecipeClient{httpClient: newHTTPClient(baseURL, timeout)}
}

// Generate генерирует рецепт из списка ингредиентов.
// Пустой список ингредиентов — валидный запрос: сервис возвращает
// тривиальный рецепт.
func (c *RecipeClient) Generate(ctx context.Context, req domain.RecipeRequest) (*domain.RecipeResult, error) {
	var result domain.RecipeResult
	if err := c.postJSON(ctx, "/v1/recipes", req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
