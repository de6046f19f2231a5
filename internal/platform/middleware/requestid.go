package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Bahjat/aeo-audit/internal/platform/requestid"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLen = 128

// RequestID is middleware that assigns a unique request ID to each request.
// An incoming X-Request-ID header is reused when present and reasonably
// short; otherwise a new UUID v4 is generated. The ID is echoed back on
// the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := requestid.NewContext(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
