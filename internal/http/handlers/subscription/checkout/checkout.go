// Package checkout реализует HTTP-обработчик создания сессии оплаты подписки.
//
// Handler принимает JSON {"plan": "weekly"|"monthly"}, валидирует тариф и возвращает
// ссылку на страницу оплаты платёжного провайдера.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/chef-ai/internal/http/middlewarectx"
	"github.com/magabrotheeeer/chef-ai/internal/http/response"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Request тело запроса создания сессии оплаты.
type Request struct {
	Plan string `json:"plan" validate:"required,oneof=weekly monthly" example:"monthly"`
}

// Handler управляет запросами на создание сессии оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики оплаты.
type Service interface {
	CreateCheckout(ctx context.Context, user *models.User, plan models.Plan) (string, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать сессию оплаты
// @Description Создаёт сессию оплаты подписки на выбранный тариф и возвращает её URL.
// @Tags Subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Тариф"
// @Success 200 {object} response.URLResponse
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка аутентификации или провайдера"
// @Router /functions/v1/create-checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.checkout"
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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid request"))
			return
		}
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return
	}

	url, err := h.service.CreateCheckout(r.Context(), user, models.Plan(req.Plan))
	if err != nil {
		log.Error("failed to create checkout session", slog.String("user_id", user.UUID), sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create checkout session"))
		return
	}

	log.Info("checkout session created", slog.String("user_id", user.UUID), slog.String("plan", req.Plan))
	render.JSON(w, r, response.URLResponse{URL: url})
}
