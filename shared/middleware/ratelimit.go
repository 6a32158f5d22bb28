package middleware

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/art-gallery-api/shared/ratelimit"
)

// RateLimit counts requests per client IP. Place it after chi's RealIP so proxied
// requests are keyed by the original client. Requests pass when the limiter is unavailable.
func RateLimit(limiter ratelimit.Limiter, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), "ip:"+clientIP(r))
			if err != nil {
				logger.Warn().Err(err).Msg("request rate limiter unavailable")
			} else if !allowed {
				writeError(w, http.StatusTooManyRequests, "Too many requests from this IP, please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
