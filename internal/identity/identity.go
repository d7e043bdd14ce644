// Package identity обменивает bearer-токен вызывающего на удостоверенного пользователя.
//
// Поддерживаются два способа: локальная проверка подписи JWT общим секретом проекта
// и запрос к эндпоинту /auth/v1/user провайдера идентификации с сервисным ключом.
package identity

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/chef-ai/internal/lib/jwt"
	"github.com/magabrotheeeer/chef-ai/internal/models"
)

// TokenParser разбирает и проверяет JWT.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.CustomClaims, error)
}

// JWTProvider удостоверяет пользователя по подписи токена без сетевых вызовов.
type JWTProvider struct {
	parser TokenParser
}

// NewJWTProvider создаёт JWTProvider.
func NewJWTProvider(parser TokenParser) *JWTProvider {
	return &JWTProvider{parser: parser}
}

// UserFromToken возвращает пользователя, которому выдан токен.
func (p *JWTProvider) UserFromToken(_ context.Context, token string) (*models.User, error) {
	const op = "identity.JWTProvider.UserFromToken"
	if token == "" {
		return nil, fmt.Errorf("%s: %w: empty token", op, models.ErrAuthentication)
	}
	claims, err := p.parser.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrAuthentication, err)
	}
	return &models.User{
		UUID:  claims.Subject,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}
