package middleware

import (
	"log"
	"net"
	"net/http"

	"github.com/crosswatch-systems/crosswatch/internal/ratelimit"
	"github.com/crosswatch-systems/crosswatch/pkg/httputil"
)

// RateLimit rejects requests exceeding the per-client sliding window before
// the handler executes. Clients are keyed by remote address; a limiter
// backend error fails open so an unavailable Redis never blocks reads.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientAddr(r))
			if err != nil {
				log.Printf("rate limiter error: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				httputil.WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
