// Package models содержит доменные модели сервиса: пользователя, запись учёта
// использования и состояние подписки.
package models

// User представляет пользователя, удостоверенного внешним провайдером идентификации.
type User struct {
	UUID  string // Идентификатор пользователя у провайдера (claim sub)
	Email string // Электронная почта, по ней ищется клиент платёжного провайдера
	Role  string // Роль из токена, обычно "authenticated"
}
