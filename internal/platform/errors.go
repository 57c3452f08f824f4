package platform

import (
	"errors"
	"fmt"
)

// Ошибки платформенного клиента.
var (
	// ErrNotConfigured — не заданы обязательные параметры подключения.
	ErrNotConfigured = errors.New("platform client is not configured")

	// ErrUnauthenticated — сессия не прошла аутентификацию.
	ErrUnauthenticated = errors.New("platform session is not authenticated")

	// ErrNotFound — запрошенный объект не существует на платформе.
	ErrNotFound = errors.New("object not found on platform")

	// ErrUnknownTier — имя hardware tier не удалось разрешить в ID.
	ErrUnknownTier = errors.New("unknown hardware tier name")
)

// APIError — ошибка HTTP API платформы.
type APIError struct {
	// StatusCode — HTTP-код ответа.
	StatusCode int

	// Endpoint — путь запроса.
	Endpoint string

	// Message — сообщение из тела ответа (если было).
	Message string
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("platform API %s: HTTP %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("platform API %s: HTTP %d", e.Endpoint, e.StatusCode)
}
