package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminKey gates the admin surface behind a single shared secret sent in the
// X-Admin-Key header. Comparison is constant time.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get("X-Admin-Key")
			if key == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"type":    "unauthorized",
					"message": "Unauthorized - Admin access required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
