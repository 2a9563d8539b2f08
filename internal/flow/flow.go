package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shaiso/Mealflow/internal/domain"
	"github.com/shaiso/Mealflow/internal/telemetry"
)

// Default configuration values.
const defaultStepTimeout = 30 * time.Second

// RewardEventMealAnalyzed — событие rewards при полном успехе flow.
const RewardEventMealAnalyzed = "meal_analyzed"

// Orchestrator выполняет analysis flow.
//
// Форма pipeline фиксирована:
//
//	декодирование payload → vision_analysis →
//	    (recipe_generation ∥ diet_suggestions) → агрегация
//
// vision_analysis — обязательный шаг: его ошибка прерывает flow
// (статус FAILED, опциональные шаги не запускаются). Опциональные
// шаги запускаются параллельно; порядок между ними не определён,
// ошибка одного не прерывает другой.
type Orchestrator struct {
	vision  VisionService
	recipes RecipeService
	diet    DietService
	rewards RewardsService

	stepTimeout time.Duration
	logger      *slog.Logger
}

// Config — конфигурация Orchestrator.
type Config struct {
	// Внешние сервисы. Vision, Recipes и Diet обязательны.
	Vision  VisionService
	Recipes RecipeService
	Diet    DietService

	// Rewards может быть nil — уведомления отключены.
	Rewards RewardsService

	// StepTimeout — таймаут одного вызова коллаборатора (default: 30s).
	StepTimeout time.Duration

	// Logger
	Logger *slog.Logger
}

// New создаёт новый Orchestrator.
func New(cfg Config) *Orchestrator {
	stepTimeout := cfg.StepTimeout
	if stepTimeout <= 0 {
		stepTimeout = defaultStepTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		vision:      cfg.Vision,
		recipes:     cfg.Recipes,
		diet:        cfg.Diet,
		rewards:     cfg.Rewards,
		stepTimeout: stepTimeout,
		logger:      logger,
	}
}

// Run выполняет analysis flow синхронно.
//
// Границу Run пересекают только две ошибки:
//   - domain.ErrInvalidImage — payload не декодируется; возникает
//     до запуска шагов, StepRecord не создаётся, коллабораторы
//     не вызываются.
//   - ErrVisionStep — обязательный шаг упал; результат со статусом
//     FAILED и записью о шаге возвращается вместе с ошибкой.
//
// Во всех остальных случаях возвращается результат со статусом
// COMPLETE или PARTIAL; деградации перечислены в Warnings.
func (o *Orchestrator) Run(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	start := time.Now()

	// Валидация строго до запуска шагов.
	image, err := req.DecodeImage()
	if err != nil {
		return nil, err
	}

	o.logger.Info("flow started",
		"user_id", req.UserID,
		"meal_type", req.MealType,
		"image_bytes", len(image),
	)

	tracker := newStepTracker()

	// Обязательный шаг: распознавание изображения.
	vision, err := runStep(ctx, tracker, domain.StepVision, o.stepTimeout, false, func(ctx context.Context) (*domain.VisionResult, error) {
		return o.vision.Analyze(ctx, req.UserID, image, req.MealType, req.Context)
	})
	if err != nil {
		result := &domain.AnalysisResult{
			Status:   domain.FlowStatusFailed,
			Steps:    tracker.snapshot(),
			UserID:   req.UserID,
			MealType: req.MealType,
			Duration: time.Since(start),
		}

		o.logger.Warn("flow failed",
			"user_id", req.UserID,
			"step", domain.StepVision,
			"error", err,
		)
		telemetry.ObserveFlow(string(domain.FlowStatusFailed), result.Duration)

		return result, fmt.Errorf("%w: %v", ErrVisionStep, err)
	}

	// Fan-out: оба опциональных шага стартуют до ожидания любого
	// из них. Каждый выполняется с continueOnError=true — ошибка
	// фиксируется, но не прерывает flow.
	var (
		wg     sync.WaitGroup
		recipe *domain.RecipeResult
		diet   *domain.DietResult
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		recipe, _ = runStep(ctx, tracker, domain.StepRecipe, o.stepTimeout, true, func(ctx context.Context) (*domain.RecipeResult, error) {
			if req.RecipePrefs != nil && req.RecipePrefs.Disabled {
				return nil, nil
			}
			return o.recipes.Generate(ctx, buildRecipeRequest(req.RecipePrefs, vision))
		})
	}()

	go func() {
		defer wg.Done()
		diet, _ = runStep(ctx, tracker, domain.StepDiet, o.stepTimeout, true, func(ctx context.Context) (*domain.DietResult, error) {
			if req.DietPrefs != nil && req.DietPrefs.Disabled {
				return nil, nil
			}
			return o.diet.Suggest(ctx, req.UserID, buildDietRequest(req.DietPrefs, req.MealType))
		})
	}()

	wg.Wait()

	result := &domain.AnalysisResult{
		Vision:   vision,
		Recipe:   recipe,
		Diet:     diet,
		Steps:    tracker.snapshot(),
		UserID:   req.UserID,
		MealType: req.MealType,
	}

	// Warnings в фиксированном порядке, независимо от того,
	// какой шаг завершился раньше.
	if rec, ok := tracker.record(domain.StepRecipe); ok && rec.Status == domain.StepStatusFailed {
		result.Warnings = append(result.Warnings, "Recipe generation failed: "+rec.Error)
	}
	if rec, ok := tracker.record(domain.StepDiet); ok && rec.Status == domain.StepStatusFailed {
		result.Warnings = append(result.Warnings, "Smart Diet suggestions failed: "+rec.Error)
	}

	switch {
	case len(result.Warnings) > 0:
		result.Status = domain.FlowStatusPartial
	case recipe != nil || diet != nil:
		result.Status = domain.FlowStatusComplete
	default:
		// Оба опциональных шага отработали без ошибок, но результата
		// нет (например, отключены настройками пользователя).
		result.Status = domain.FlowStatusPartial
	}

	result.Duration = time.Since(start)

	// Уведомление rewards строго после вычисления статуса:
	// его ошибка попадает в warnings и статус уже не меняет.
	if result.Status == domain.FlowStatusComplete && o.rewards != nil {
		meta := map[string]any{"meal_type": req.MealType}
		if err := o.rewards.Award(ctx, req.UserID, RewardEventMealAnalyzed, meta); err != nil {
			o.logger.Warn("rewards notification failed",
				"user_id", req.UserID,
				"error", err,
			)
			result.Warnings = append(result.Warnings, "Rewards notification failed: "+err.Error())
		}
	}

	o.logger.Info("flow finished",
		"user_id", req.UserID,
		"status", result.Status,
		"duration", result.Duration,
		"warnings", len(result.Warnings),
	)
	telemetry.ObserveFlow(string(result.Status), result.Duration)

	return result, nil
}

// buildRecipeRequest собирает запрос к recipe-сервису из предпочтений
// пользователя и распознанных продуктов.
func buildRecipeRequest(prefs *domain.RecipePreferences, vision *domain.VisionResult) domain.RecipeRequest {
	ingredients := make([]string, 0, len(vision.Items))
	for _, item := range vision.Items {
		ingredients = append(ingredients, item.Name)
	}

	req := domain.RecipeRequest{Ingredients: ingredients}
	if prefs != nil {
		req.Cuisine = prefs.Cuisine
		req.Servings = prefs.Servings
		req.ExcludeIngredients = prefs.ExcludeIngredients
	}
	return req
}

// buildDietRequest собирает запрос к diet-сервису. MealType по
// умолчанию берётся из категории flow, если пользователь не задал свой.
func buildDietRequest(prefs *domain.DietPreferences, mealType string) domain.DietRequest {
	req := domain.DietRequest{MealType: mealType}
	if prefs != nil {
		req.Goal = prefs.Goal
		req.Restrictions = prefs.Restrictions
		if prefs.MealType != "" {
			req.MealType = prefs.MealType
		}
	}
	return req
}
