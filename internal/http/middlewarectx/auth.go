// Package middlewarectx содержит HTTP middleware сервиса: аутентификацию по bearer-токену,
// ограничение частоты запросов, CORS и метрики.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/chef-ai/internal/http/response"
	"github.com/magabrotheeeer/chef-ai/internal/lib/sl"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey ключ удостоверенного пользователя в контексте.
const UserKey Key = "user"

// Сообщения об ошибках аутентификации.
const (
	MsgMissingHeader    = "no authorization header provided"
	MsgInvalidHeader    = "invalid authorization header"
	MsgNotAuthenticated = "user not authenticated"
)

// UserProvider обменивает токен на удостоверенного пользователя.
type UserProvider interface {
	UserFromToken(ctx context.Context, token string) (*models.User, error)
}

// WithUser возвращает контекст с пользователем.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext возвращает пользователя, положенного AuthMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// AuthMiddleware проверяет заголовок Authorization и кладёт пользователя в контекст.
//
// Любая ошибка аутентификации возвращается как 500 с {"error": ...}, так же как ошибки
// хранилища: клиенты различают их только по тексту.
func AuthMiddleware(provider UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"
			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Error(MsgMissingHeader)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(MsgMissingHeader))
				return
			}
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				log.Error(MsgInvalidHeader)
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(MsgInvalidHeader))
				return
			}

			user, err := provider.UserFromToken(r.Context(), strings.TrimSpace(token))
			if err != nil || user == nil || user.UUID == "" {
				log.Error("failed to authenticate user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error(MsgNotAuthenticated))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}
