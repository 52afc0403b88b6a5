package api

import (
	"context"
	"net/http"

	"github.com/oliveapp/olive-server/internal/api/respond"
	"github.com/oliveapp/olive-server/internal/auth"
)

type contextKey string

const actorContextKey contextKey = "olive.actor"

// AuthMiddleware validates the bearer token on every /api route and
// stashes the resolved actor in the request context.
func AuthMiddleware(authorizer auth.Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, err := auth.ExtractAPIKey(r)
			if err != nil {
				respond.WriteUnauthorized(w, err.Error())
				return
			}
			info, err := authorizer.Authorize(r.Context(), key)
			if err != nil {
				respond.WriteUnauthorized(w, "invalid API key")
				return
			}
			ctx := context.WithValue(r.Context(), actorContextKey, info)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFrom returns the actor placed in the context by AuthMiddleware.
func actorFrom(r *http.Request) *auth.ActorInfo {
	info, _ := r.Context().Value(actorContextKey).(*auth.ActorInfo)
	return info
}
