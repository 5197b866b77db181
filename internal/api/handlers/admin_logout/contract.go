package admin_logout

import "context"

type AuthService interface {
	Logout(ctx context.Context, token string)
}

type Logger interface {
	Info(format string, v ...interface{})
}
