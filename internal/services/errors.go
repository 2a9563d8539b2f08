package services

import "errors"

// Ошибки клиентов внешних сервисов.
var (
	// ErrServiceRequest — запрос к внешнему сервису не выполнен
	// (сетевая ошибка, некорректный ответ или HTTP >= 400).
	ErrServiceRequest = errors.New("service request failed")
)
