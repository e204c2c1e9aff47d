package middleware

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

const (
	bearerPrefix = "Bearer "

	msgMissingToken = "требуется токен администратора"
	msgInvalidToken = "недействительный токен"
)

// AdminAuth пропускает только запросы с действительным токеном администратора
// в заголовке Authorization: Bearer <token>
func AdminAuth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				logger.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
			claims, err := parser.ParseToken(token)
			if err != nil {
				logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), claims.Subject)))
		})
	}
}
