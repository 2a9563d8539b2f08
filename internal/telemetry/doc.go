// Package telemetry обеспечивает наблюдаемость сервиса.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики flow и очереди jobs
//
// Оба бинарника используют единый формат логирования;
// метрики экспортируются на /metrics endpoint API-сервера.
package telemetry
