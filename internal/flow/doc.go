// Package flow выполняет analysis flow: цепочку из трёх внешних
// сервисов анализа как одну логическую операцию.
//
// Orchestrator отвечает за:
//   - Валидацию payload до запуска первого шага
//   - Обязательный шаг vision_analysis (его ошибка прерывает flow)
//   - Параллельный запуск опциональных шагов recipe_generation
//     и diet_suggestions (fan-out/fan-in; ошибка одного не прерывает другой)
//   - Вычисление агрегированного статуса (COMPLETE/PARTIAL/FAILED)
//   - Best-effort уведомление rewards-сервиса при полном успехе
//
// Orchestrator не хранит состояние между запросами: всё состояние
// выполнения живёт в рамках одного вызова Run.
package flow
