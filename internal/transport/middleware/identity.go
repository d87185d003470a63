package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vodexapp/vodex-backend/pkg/ctxutil"
)

// Identity reads the authenticated user ID from the X-User-Id header and
// stores it in the request context. Authentication itself happens at the
// API gateway; this service trusts the header it forwards.
//
// A missing header passes through anonymously and the service layer rejects
// the call. A malformed header is rejected here with 401.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-Id")
		if raw == "" {
			next.ServeHTTP(w, r) // Anonymous
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := ctxutil.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
