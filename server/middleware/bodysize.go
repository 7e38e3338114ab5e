package middleware

import "net/http"

// BodySizeLimit returns middleware that caps the request body at limit bytes.
// Reads past the limit fail with *http.MaxBytesError, which handlers map to
// 413. A non-positive limit disables the cap.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
