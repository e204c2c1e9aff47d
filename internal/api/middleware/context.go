package middleware

import "context"

type contextKey string

const adminKey contextKey = "admin"

// WithAdmin кладет имя администратора в контекст
func WithAdmin(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, adminKey, username)
}

// GetAdmin достает имя администратора, положенное AdminAuth
func GetAdmin(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(adminKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
