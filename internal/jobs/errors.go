package jobs

import "errors"

// Ошибки реестра jobs.
var (
	// ErrJobNotFound — job с таким ID не существует.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobExists — job с таким ID уже зарегистрирован.
	ErrJobExists = errors.New("job already exists")

	// ErrJobFinished — попытка изменить job в терминальном статусе.
	ErrJobFinished = errors.New("job already finished")
)
