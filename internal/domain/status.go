package domain

// FlowStatus — агрегированный статус выполнения analysis flow.
//
// Вычисляется после завершения всех шагов:
//
//	COMPLETE — обязательный шаг успешен, хотя бы один опциональный
//	           шаг дал результат, ни один не упал.
//	PARTIAL  — обязательный шаг успешен, но опциональный шаг упал
//	           или ни один опциональный шаг не дал результата.
//	FAILED   — обязательный шаг (vision) упал; опциональные шаги
//	           не запускались.
type FlowStatus string

const (
	// FlowStatusComplete — flow полностью успешен.
	FlowStatusComplete FlowStatus = "COMPLETE"

	// FlowStatusPartial — flow завершён с деградацией (есть warnings).
	FlowStatusPartial FlowStatus = "PARTIAL"

	// FlowStatusFailed — обязательный шаг упал, flow прерван.
	FlowStatusFailed FlowStatus = "FAILED"
)

// StepStatus — статус выполнения одного шага.
//
// Запись о шаге создаётся в момент завершения, поэтому промежуточного
// статуса нет: шаг либо SUCCEEDED, либо FAILED.
type StepStatus string

const (
	// StepStatusSucceeded — шаг успешно завершён.
	StepStatusSucceeded StepStatus = "SUCCEEDED"

	// StepStatusFailed — шаг завершился с ошибкой.
	StepStatusFailed StepStatus = "FAILED"
)

// JobStatus — статус фонового job.
//
// Жизненный цикл:
//
//	QUEUED → RUNNING → COMPLETED
//	                 ↘ FAILED
//
// Других переходов нет: job в терминальном статусе неизменяем.
type JobStatus string

const (
	// JobStatusQueued — job создан, фоновое выполнение ещё не началось.
	JobStatusQueued JobStatus = "QUEUED"

	// JobStatusRunning — flow выполняется в фоне.
	JobStatusRunning JobStatus = "RUNNING"

	// JobStatusCompleted — flow завершён, результат доступен.
	JobStatusCompleted JobStatus = "COMPLETED"

	// JobStatusFailed — flow упал, доступно сообщение об ошибке.
	JobStatusFailed JobStatus = "FAILED"
)

// IsTerminal возвращает true, если статус финальный (job завершён).
func (s JobStatus) IsTerminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed:
		return true
	default:
		return false
	}
}
