package list_bookings

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lesnoydomik/booking-service/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name  string
		query string
		page  int
		limit int
		ok    bool
	}{
		{"значения по умолчанию", "", domain.DefaultPage, domain.DefaultPageSize, true},
		{"явные значения", "page=3&limit=10", 3, 10, true},
		{"потолок размера страницы", "limit=100500", domain.DefaultPage, domain.MaxPageSize, true},
		{"нулевая страница", "page=0", 0, 0, false},
		{"отрицательный лимит", "limit=-5", 0, 0, false},
		{"не число", "page=abc", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/bookings?"+tt.query, nil)
			page, limit, ok := parsePagination(req)

			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.page, page)
				assert.Equal(t, tt.limit, limit)
			}
		})
	}
}
