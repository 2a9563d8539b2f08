package flow

import "errors"

// Ошибки оркестратора.
var (
	// ErrVisionStep — обязательный шаг распознавания упал.
	// Единственная ошибка выполнения, пересекающая границу Run
	// (кроме ошибки валидации domain.ErrInvalidImage).
	ErrVisionStep = errors.New("vision analysis failed")
)
