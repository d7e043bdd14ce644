// Package usagecheck реализует HTTP-обработчик проверки дневной квоты запросов.
//
// Обработчик только читает счётчик за текущий день и никогда не изменяет хранилище.
package usagecheck

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/http/response"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Handler обрабатывает запросы проверки квоты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки квоты.
type Service interface {
	Check(ctx context.Context, userID string) (models.UsageStatus, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить дневную квоту
// @Description Возвращает число запросов пользователя за текущие сутки (UTC), лимит, остаток и признак допуска.
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UsageStatus
// @Failure 500 {object} response.ErrorResponse "Ошибка аутентификации или хранилища"
// @Router /functions/v1/check-usage [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage.check"
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

	status, err := h.service.Check(r.Context(), user.UUID)
	if err != nil {
		log.Error("failed to check usage", slog.String("user_id", user.UUID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check usage"))
		return
	}

	log.Info("usage checked",
		slog.String("user_id", user.UUID),
		slog.Int("current_count", status.CurrentCount),
		slog.Bool("can_query", status.CanQuery),
	)
	render.JSON(w, r, status)
}
