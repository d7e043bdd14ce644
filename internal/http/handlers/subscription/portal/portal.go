// Package portal реализует HTTP-обработчик открытия клиентского портала оплаты.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/http/response"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Handler обрабатывает запросы клиентского портала.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики портала.
type Service interface {
	CustomerPortal(ctx context.Context, user *models.User) (string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Открыть клиентский портал
// @Description Создаёт сессию клиентского портала платёжного провайдера и возвращает её URL.
// @Tags Subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.URLResponse
// @Failure 500 {object} response.ErrorResponse "Ошибка аутентификации, клиента нет или ошибка провайдера"
// @Router /functions/v1/customer-portal [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.portal"
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

	url, err := h.service.CustomerPortal(r.Context(), user)
	if err != nil {
		log.Error("failed to create portal session", slog.String("user_id", user.UUID), sl.Err(err))
		msg := "failed to create customer portal session"
		if errors.Is(err, models.ErrCustomerNotFound) {
			msg = "no customer found for this user"
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(msg))
		return
	}

	render.JSON(w, r, response.URLResponse{URL: url})
}
