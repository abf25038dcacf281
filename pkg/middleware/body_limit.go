package middleware

import "net/http"

// MaxRequestSize caps request bodies at maxBytes. Reading past the cap fails
// with *http.MaxBytesError, which the JSON decoder turns into a 400.
func MaxRequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
