package domain

// Типы данных на границе с внешними сервисами анализа.
// Сами эвристики (распознавание, генерация рецептов, диетические
// рекомендации) реализуются внешними подсистемами — здесь только
// контрактные структуры.

// FoodItem — распознанный на изображении продукт.
type FoodItem struct {
	// Name — название продукта.
	Name string `json:"name"`

	// Confidence — уверенность распознавания, 0..1.
	Confidence float64 `json:"confidence"`

	// Grams — оценка веса порции в граммах.
	Grams float64 `json:"grams,omitempty"`

	// Calories — оценка калорийности порции.
	Calories float64 `json:"calories,omitempty"`
}

// VisionResult — результат распознавания изображения.
type VisionResult struct {
	// Items — распознанные продукты. Может быть пустым:
	// пустой список — валидный результат, а не ошибка.
	Items []FoodItem `json:"items"`

	// TotalCalories — суммарная оценка калорийности.
	TotalCalories float64 `json:"total_calories,omitempty"`

	// Description — краткое текстовое описание блюда.
	Description string `json:"description,omitempty"`
}

// RecipeRequest — запрос к сервису генерации рецептов.
// Собирается оркестратором из предпочтений пользователя
// и распознанных продуктов.
type RecipeRequest struct {
	// Ingredients — названия распознанных продуктов.
	Ingredients []string `json:"ingredients"`

	// Cuisine — желаемая кухня.
	Cuisine string `json:"cuisine,omitempty"`

	// Servings — количество порций.
	Servings int `json:"servings,omitempty"`

	// ExcludeIngredients — запрещённые ингредиенты.
	ExcludeIngredients []string `json:"exclude_ingredients,omitempty"`
}

// RecipeResult — сгенерированный рецепт.
type RecipeResult struct {
	// Title — название рецепта.
	Title string `json:"title"`

	// Ingredients — список ингредиентов с количествами.
	Ingredients []string `json:"ingredients"`

	// Instructions — шаги приготовления.
	Instructions []string `json:"instructions"`

	// PrepTimeMinutes — время приготовления в минутах.
	PrepTimeMinutes int `json:"prep_time_minutes,omitempty"`
}

// DietRequest — запрос к сервису диетических рекомендаций.
type DietRequest struct {
	// MealType — контекст приёма пищи. Если пользователь не задал
	// свой, оркестратор подставляет категорию flow.
	MealType string `json:"meal_type"`

	// Goal — цель пользователя.
	Goal string `json:"goal,omitempty"`

	// Restrictions — диетические ограничения.
	Restrictions []string `json:"restrictions,omitempty"`
}

// DietResult — диетические рекомендации.
type DietResult struct {
	// Suggestions — рекомендации в человекочитаемом виде.
	Suggestions []string `json:"suggestions"`

	// Score — оценка соответствия блюда целям пользователя, 0..100.
	Score int `json:"score,omitempty"`
}
