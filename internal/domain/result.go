package domain

import "time"

// Имена шагов analysis flow.
const (
	StepVision = "vision_analysis"
	StepRecipe = "recipe_generation"
	StepDiet   = "diet_suggestions"
)

// StepRecord — запись о выполнении одного шага.
//
// Создаётся исполнителем шага при запуске (начинается отсчёт времени)
// и финализируется ровно один раз, когда unit of work возвращается
// или падает.
type StepRecord struct {
	// Name — имя шага (StepVision, StepRecipe, StepDiet).
	Name string `json:"name"`

	// StartedAt — время начала выполнения.
	StartedAt time.Time `json:"started_at"`

	// Duration — продолжительность выполнения (wall-clock),
	// фиксируется независимо от исхода.
	Duration time.Duration `json:"duration"`

	// Status — исход шага.
	Status StepStatus `json:"status"`

	// Error — сообщение об ошибке при Status == FAILED.
	Error string `json:"error,omitempty"`
}

// AnalysisResult — агрегированный результат analysis flow.
//
// Создаётся один раз на выполнение и не изменяется после возврата.
// Vision присутствует всегда, если flow дошёл до завершения;
// Recipe и Diet — каждый опционально.
type AnalysisResult struct {
	// Status — итоговый статус flow (COMPLETE/PARTIAL/FAILED).
	Status FlowStatus `json:"status"`

	// Vision — результат обязательного шага распознавания.
	Vision *VisionResult `json:"vision,omitempty"`

	// Recipe — результат опционального шага генерации рецепта.
	Recipe *RecipeResult `json:"recipe,omitempty"`

	// Diet — результат опционального шага диетических рекомендаций.
	Diet *DietResult `json:"diet,omitempty"`

	// Steps — записи о шагах по имени. Записи добавляются по мере
	// завершения шагов, а не в порядке объявления.
	Steps map[string]StepRecord `json:"steps"`

	// UserID — идентификатор пользователя из запроса.
	UserID string `json:"user_id"`

	// MealType — категория из запроса.
	MealType string `json:"meal_type"`

	// Duration — wall-clock от приёма запроса до агрегации.
	// Опциональные шаги перекрываются, поэтому сумма их Duration
	// не обязана совпадать с общей.
	Duration time.Duration `json:"duration"`

	// Warnings — нефатальные деградации в человекочитаемом виде.
	Warnings []string `json:"warnings,omitempty"`
}
