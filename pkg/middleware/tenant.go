package middleware

import (
	apperrors "barberbook/pkg/errors"
	httputil "barberbook/pkg/http"
	"barberbook/pkg/logger"
	"barberbook/pkg/tenant"
	"net/http"
	"strings"
)

const DefaultTenantHeader = "X-Tenant-ID"

// TenantResolution reads the tenant from header and stores it on the request
// context. Requests with a missing or malformed tenant are rejected.
func TenantResolution(header string, log *logger.Logger) func(http.Handler) http.Handler {
	if header == "" {
		header = DefaultTenantHeader
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(header))
			if id == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized(header+" header is required"))
				return
			}
			if !tenant.ValidID(id) {
				log.Warn("Malformed tenant header",
					"request_id", RequestIDFromContext(r.Context()),
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.InvalidInput("malformed "+header+" header"))
				return
			}

			next.ServeHTTP(w, r.WithContext(tenant.WithTenant(r.Context(), id)))
		})
	}
}
