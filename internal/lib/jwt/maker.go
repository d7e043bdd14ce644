// Package jwt реализует выпуск и проверку JWT, которые выдаёт провайдер
// идентификации (Supabase Auth): подпись HS256 общим секретом проекта,
// идентификатор пользователя в sub, почта и роль в дополнительных claims.
package jwt

import (
	"time"
)

// Audience значение aud в токенах вошедших пользователей.
const Audience = "authenticated"

// Maker описывает выпуск и разбор токенов пользователя.
type Maker interface {
	GenerateToken(userID, email, role string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на общем секрете проекта и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создаёт MakerImpl. TTL используется только при выпуске токенов.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
