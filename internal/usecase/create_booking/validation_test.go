package create_booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lesnoydomik/booking-service/pkg/ptr"
)

func validRequest() *Request {
	return &Request{
		GuestName:  "Иван Петров",
		Phone:      "+7 (900) 123-45-67",
		GuestCount: 4,
		CheckIn:    "2026-03-16",
		CheckOut:   "2026-03-18",
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.NoError(t, validateRequest(validRequest()))

	withComment := validRequest()
	withComment.Comment = ptr.Ptr("поздний заезд после 22:00")
	assert.NoError(t, validateRequest(withComment))
}

func TestValidateRequest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"пустое имя", func(r *Request) { r.GuestName = "" }},
		{"имя из одного символа", func(r *Request) { r.GuestName = "И" }},
		{"имя из пробелов", func(r *Request) { r.GuestName = "   " }},
		{"мало цифр в телефоне", func(r *Request) { r.Phone = "123-45" }},
		{"телефон без цифр", func(r *Request) { r.Phone = "позвоните мне" }},
		{"ноль гостей", func(r *Request) { r.GuestCount = 0 }},
		{"отрицательное число гостей", func(r *Request) { r.GuestCount = -3 }},
		{"невалидная дата заезда", func(r *Request) { r.CheckIn = "16.03.2026" }},
		{"невалидная дата выезда", func(r *Request) { r.CheckOut = "завтра" }},
		{"выезд равен заезду", func(r *Request) { r.CheckOut = r.CheckIn }},
		{"выезд раньше заезда", func(r *Request) { r.CheckIn, r.CheckOut = r.CheckOut, r.CheckIn }},
		{"слишком длинный комментарий", func(r *Request) {
			r.Comment = ptr.Ptr(strings.Repeat("я", 1001))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}

func TestCountDigits(t *testing.T) {
	assert.Equal(t, 11, countDigits("+7 (900) 123-45-67"))
	assert.Equal(t, 0, countDigits("abc"))
	assert.Equal(t, 10, countDigits("9001234567"))
}
