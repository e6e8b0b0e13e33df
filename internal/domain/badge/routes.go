package badge

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startupquest/quest-api/internal/middleware"
)

// Routes returns badge router. Every route requires an authenticated caller.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Register)
	r.Get("/", h.ListMy)
	r.Get("/user_badges", h.ListUserBadges)
	r.Get("/types", h.ListTypes)
	r.Get("/types/{type}/awards", h.ListByType)

	r.Get("/{id}", h.GetByID)
	r.Patch("/{id}/update_status", h.UpdateStatus)
	r.With(middleware.RequireMinter()).Post("/{id}/outcome", h.ReportOutcome)

	return r
}
