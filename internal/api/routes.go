package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Analyses (синхронный путь)
	mux.Handle("POST /api/v1/analyses", chain(http.HandlerFunc(h.CreateAnalysis)))

	// Jobs (асинхронный путь)
	mux.Handle("POST /api/v1/jobs", chain(http.HandlerFunc(h.CreateJob)))
	mux.Handle("GET /api/v1/jobs/{id}", chain(http.HandlerFunc(h.GetJob)))
}
