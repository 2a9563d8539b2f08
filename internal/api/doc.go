// Package api реализует HTTP API сервиса.
//
// Поверхность:
//   - POST /api/v1/analyses — синхронный анализ (caller блокируется)
//   - POST /api/v1/jobs     — асинхронный анализ (сразу возвращается handle)
//   - GET  /api/v1/jobs/{id} — polling статуса job
//
// Использует стандартный net/http с method patterns (Go 1.22+).
package api
