package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lesnoydomik/booking-service/internal/service/auth"
)

type nopLogger struct{}

func (nopLogger) Warn(format string, v ...interface{}) {}

type fakeAuth struct {
	valid string
}

func (a fakeAuth) Validate(_ context.Context, token string) error {
	if token == a.valid {
		return nil
	}
	return auth.ErrInvalidToken
}

func TestAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := Auth(fakeAuth{valid: "good-token"}, nopLogger{})(next)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"валидный токен", "Bearer good-token", http.StatusOK},
		{"регистронезависимая схема", "bearer good-token", http.StatusOK},
		{"неизвестный токен", "Bearer bad-token", http.StatusUnauthorized},
		{"без заголовка", "", http.StatusUnauthorized},
		{"не Bearer схема", "Basic good-token", http.StatusUnauthorized},
		{"только схема", "Bearer", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
