package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"Иван Петров", "Иван Петров"},
		{"цена = 30000", "цена \\= 30000"},
		{"скобки (важно)", "скобки \\(важно\\)"},
		{"точка.", "точка\\."},
		{"a_b*c", "a\\_b\\*c"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, escapeMarkdown(tt.in))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15.03.2026", formatDate("2026-03-15"))
	// Нераспознанный формат возвращается как есть
	assert.Equal(t, "garbage", formatDate("garbage"))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "500", formatPrice(500))
	assert.Equal(t, "6 000", formatPrice(6000))
	assert.Equal(t, "66 000", formatPrice(66000))
	assert.Equal(t, "1 234 567", formatPrice(1234567))
}

func TestSendMessage_Disabled(t *testing.T) {
	c := NewClient("", "", time.Second, false, nopLogger{})
	err := c.SendMessage(context.Background(), "test")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := NewClient("token", "chat", time.Second, true, nopLogger{})
	c.apiBase = srv.URL

	err := c.SendMessage(context.Background(), "test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPIError)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient("token", "chat", time.Second, true, nopLogger{})
	c.apiBase = srv.URL

	require.NoError(t, c.SendMessage(context.Background(), "test"))
	assert.Contains(t, gotPath, "sendMessage")
}
