package middleware

import (
	"net/http"

	"github.com/cloo-solutions/docsum/internal/api"
	"github.com/cloo-solutions/docsum/internal/domain"
)

// MaxBodyBytes caps the size of uploaded documents. Requests that declare a
// larger body are answered with domain.ErrUploadTooLarge before any handler
// runs; bodies of unknown length are cut off by http.MaxBytesReader and the
// upload handlers report the same error when form parsing trips the limit.
func MaxBodyBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength > limit {
				api.HandleError(w, domain.ErrUploadTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
