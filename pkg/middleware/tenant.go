package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/httpapi"
)

// RequireTenantFromHeader resolves the tenant identity from a request header.
// Requests without a valid tenant id never reach the handler.
func RequireTenantFromHeader(headerName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(headerName)
			if raw == "" {
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_REQUIRED", "missing tenant header", map[string]string{
					"header": headerName,
				})
				return
			}
			tenantID, err := uuid.Parse(raw)
			if err != nil {
				logger := composables.UseLogger(r.Context())
				logger.WithField("tenant", raw).WithError(err).Warn("invalid tenant header")
				_ = httpapi.WriteError(w, http.StatusBadRequest, "TENANT_INVALID", "tenant header is not a valid uuid", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(composables.WithTenantID(r.Context(), tenantID)))
		})
	}
}
