// Package subscriptioncheck реализует HTTP-обработчик проверки подписки пользователя.
package subscriptioncheck

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

// Handler обрабатывает запросы проверки подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики проверки подписки.
type Service interface {
	Check(ctx context.Context, user *models.User) (models.SubscriptionState, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить подписку
// @Description Возвращает состояние подписки пользователя у платёжного провайдера.
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SubscriptionState
// @Failure 500 {object} response.ErrorResponse "Ошибка аутентификации или провайдера"
// @Router /functions/v1/check-subscription [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.check"
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

	state, err := h.service.Check(r.Context(), user)
	if err != nil {
		log.Error("failed to check subscription", slog.String("user_id", user.UUID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check subscription"))
		return
	}

	render.JSON(w, r, state)
}
