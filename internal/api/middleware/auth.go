// Package middleware HTTP-middleware: аутентификация администратора
// и метрики запросов.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lesnoydomik/booking-service/internal/api/handlers"
)

// AuthService интерфейс проверки токена сессии
type AuthService interface {
	Validate(ctx context.Context, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

const msgUnauthorized = "требуется авторизация"

// Auth проверяет Bearer-токен администратора. Все ответы об отказе
// одинаковы, чтобы не раскрывать причину.
func Auth(auth AuthService, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				logger.Warn("Auth: %s %s - отсутствует токен", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			if err := auth.Validate(r.Context(), token); err != nil {
				logger.Warn("Auth: %s %s - недействительный токен", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearer достает токен из заголовка Authorization
func extractBearer(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
