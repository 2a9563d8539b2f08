package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrInvalidImage — payload не декодируется из транспортной кодировки.
// Это ошибка валидации: возникает до запуска любого шага и никогда
// не попадает в StepRecord.
var ErrInvalidImage = errors.New("invalid image payload")

// AnalysisRequest — запрос на анализ фотографии блюда.
//
// Создаётся вызывающей стороной и передаётся по значению в оркестратор
// (синхронный путь) или в очередь (асинхронный путь). После передачи
// не изменяется.
type AnalysisRequest struct {
	// UserID — идентификатор пользователя, от имени которого выполняется анализ.
	UserID string `json:"user_id"`

	// ImageData — изображение в base64 (стандартный алфавит).
	// Декодируется перед запуском первого шага; ошибка декодирования —
	// ошибка валидации, а не ошибка шага.
	ImageData string `json:"image_data"`

	// MealType — категория приёма пищи: "breakfast", "lunch", "dinner", "snack".
	MealType string `json:"meal_type"`

	// Context — опциональный свободный текст от пользователя
	// (например, "домашняя паста с морепродуктами").
	Context string `json:"context,omitempty"`

	// RecipePrefs — опциональные предпочтения для генерации рецепта.
	RecipePrefs *RecipePreferences `json:"recipe_prefs,omitempty"`

	// DietPrefs — опциональные предпочтения для диетических рекомендаций.
	DietPrefs *DietPreferences `json:"diet_prefs,omitempty"`
}

// RecipePreferences — настройки опционального шага генерации рецепта.
type RecipePreferences struct {
	// Disabled — шаг выполняется, но не обращается к сервису
	// и не возвращает результат.
	Disabled bool `json:"disabled,omitempty"`

	// Cuisine — желаемая кухня ("italian", "japanese", ...).
	Cuisine string `json:"cuisine,omitempty"`

	// Servings — количество порций.
	Servings int `json:"servings,omitempty"`

	// ExcludeIngredients — ингредиенты, которые нельзя использовать.
	ExcludeIngredients []string `json:"exclude_ingredients,omitempty"`
}

// DietPreferences — настройки опционального шага диетических рекомендаций.
type DietPreferences struct {
	// Disabled — шаг выполняется, но не обращается к сервису
	// и не возвращает результат.
	Disabled bool `json:"disabled,omitempty"`

	// Goal — цель пользователя ("lose_weight", "gain_muscle", "maintain").
	Goal string `json:"goal,omitempty"`

	// MealType — контекст приёма пищи. Если пуст, оркестратор
	// подставляет MealType из запроса.
	MealType string `json:"meal_type,omitempty"`

	// Restrictions — диетические ограничения ("vegan", "gluten_free", ...).
	Restrictions []string `json:"restrictions,omitempty"`
}

// DecodeImage декодирует ImageData из base64.
// Возвращает ErrInvalidImage, если payload повреждён или пуст.
func (r *AnalysisRequest) DecodeImage() ([]byte, error) {
	if r.ImageData == "" {
		return nil, fmt.Errorf("%w: empty image data", ErrInvalidImage)
	}

	data, err := base64.StdEncoding.DecodeString(r.ImageData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return data, nil
}
