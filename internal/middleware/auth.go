package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/crosswatch-systems/crosswatch/pkg/httputil"
)

// APIKeyHeader and APIKeyParam are the two ways a client can present the
// shared-secret key.
const (
	APIKeyHeader = "X-API-Key"
	APIKeyParam  = "api_key"
)

// APIKeyAuth rejects requests that do not carry the shared-secret key in the
// X-API-Key header or api_key query parameter. An empty configured key
// disables authentication (development only). Failed requests are rejected
// before any handler runs.
func APIKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			presented := r.Header.Get(APIKeyHeader)
			if presented == "" {
				presented = r.URL.Query().Get(APIKeyParam)
			}
			if presented == "" {
				httputil.WriteError(w, http.StatusUnauthorized, "missing API key")
				return
			}

			// Constant-time compare; the key is a shared secret.
			if !hmac.Equal([]byte(presented), []byte(key)) {
				httputil.WriteError(w, http.StatusUnauthorized, "invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
