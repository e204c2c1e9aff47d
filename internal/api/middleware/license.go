package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-SimpleBooking/internal/api/handlers"
)

const msgLicenseInactive = "лицензия не активна"

// LicenseGate отклоняет запросы, пока лицензия не активна и льготный период истек
func LicenseGate(checker LicenseChecker, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			canRun, err := checker.CanRun(r.Context())
			if err != nil {
				logger.Error("%s %s - Failed to check license: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}
			if !canRun {
				logger.Warn("%s %s - Rejected: license inactive", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgLicenseInactive)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
