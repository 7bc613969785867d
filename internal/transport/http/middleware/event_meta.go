package middleware

import (
	"net/http"

	"ponto/internal/domain/events"
)

// EventMeta stamps the request id and client address into the context so
// domain events recorded while serving the request carry them. Runs after
// RequestID.
func EventMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.Header.Get("X-Forwarded-For")
		if ip == "" {
			ip = r.RemoteAddr
		}
		ctx := events.WithMeta(r.Context(), events.RequestMeta{
			RequestID: GetRequestID(r.Context()),
			IP:        ip,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
