package middleware

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/response"
)

// AccountLookup reports whether the account behind a token may still act.
// It returns an apperr NotFound error when the account is gone.
type AccountLookup func(ctx context.Context, userID string) (active bool, err error)

// Account runs after Auth and rejects tokens whose account was deleted
// (401) or blocked (403) since the token was issued.
func Account(lookup AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := UserIDFromCtx(r)
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			active, err := lookup(r.Context(), id)
			switch {
			case apperr.Is(err, apperr.KindNotFound):
				response.Unauthorized(w, "Account no longer exists")
				return
			case err != nil:
				response.Fail(w, r, err)
				return
			case !active:
				response.Error(w, http.StatusForbidden, "Account is blocked")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
