package flow

import (
	"context"

	"github.com/shaiso/Mealflow/internal/domain"
)

// Интерфейсы внешних сервисов-коллабораторов.
//
// Оркестратор получает их через Config (dependency injection),
// что позволяет подменять реализации в тестах без глобального
// состояния. Реализации — в пакете services.

// VisionService — сервис распознавания изображений (обязательный шаг).
type VisionService interface {
	Analyze(ctx context.Context, userID string, image []byte, mealType, userContext string) (*domain.VisionResult, error)
}

// RecipeService — сервис генерации рецептов (опциональный шаг).
type RecipeService interface {
	Generate(ctx context.Context, req domain.RecipeRequest) (*domain.RecipeResult, error)
}

// DietService — сервис диетических рекомендаций (опциональный шаг).
type DietService interface {
	Suggest(ctx context.Context, userID string, req domain.DietRequest) (*domain.DietResult, error)
}

// RewardsService — начисление баллов за активность.
// Вызывается fire-and-forget: ошибка попадает в warnings результата
// и никогда не меняет уже вычисленный статус flow.
type RewardsService interface {
	Award(ctx context.Context, userID, event string, metadata map[string]any) error
}
