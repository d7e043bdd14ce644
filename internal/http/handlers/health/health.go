// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
)

// Checker проверяет готовность зависимости.
type Checker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Status тело ответа проверки.
type Status struct {
	Status string `json:"status" example:"ok"`
}

type Handler struct {
	log     *slog.Logger
	checker Checker
}

// New создает Handler. checker может быть nil.
func New(log *slog.Logger, checker Checker) *Handler {
	return &Handler{
		log:     log,
		checker: checker,
	}
}

// ServeHTTP godoc
// @Summary Проверка живости
// @Tags Health
// @Produce json
// @Success 200 {object} Status
// @Failure 503 {object} Status
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.checker.CheckDatabaseReady(ctx); err != nil {
			h.log.Error("database is not ready", sl.Op(op), sl.Err(err))
			render.Status(r, http.StatusServiceUnavailable)
			render.JSON(w, r, Status{Status: "unavailable"})
			return
		}
	}
	render.JSON(w, r, Status{Status: "ok"})
}
