// Package usageincrement реализует HTTP-обработчик учёта одного запроса пользователя.
package usageincrement

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/http/response"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
)

// Handler обрабатывает запросы учёта использования.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики учёта.
type Service interface {
	Increment(ctx context.Context, userID string) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Учесть запрос
// @Description Увеличивает счётчик запросов пользователя за текущие сутки (UTC). Лимит не проверяется.
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse "Ошибка аутентификации или хранилища"
// @Router /functions/v1/increment-usage [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage.increment"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(middlewarectx.MsgNotAuthenticated))
		return
	}

	if err := h.service.Increment(r.Context(), user.UUID); err != nil {
		log.Error("failed to increment usage", slog.String("user_id", user.UUID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to increment usage"))
		return
	}

	log.Info("usage incremented", slog.String("user_id", user.UUID))
	render.JSON(w, r, response.Success())
}
