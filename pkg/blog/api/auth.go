package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"

	"github.com/oilmonegov/Blog/pkg/blog"
)

type contextKey string

// ActorKey holds the authenticated *blog.Actor in the request context.
const ActorKey contextKey = "actor"

// NewJWTAuth returns an HS256 verifier for bearer tokens.
func NewJWTAuth(secret string) *jwtauth.JWTAuth {
	return jwtauth.New("HS256", []byte(secret), nil)
}

// Authenticate verifies an optional bearer token and stores the actor it
// names. Requests without a token continue as guests; invalid tokens get 401.
func Authenticate(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	verify := jwtauth.Verifier(ja)
	return func(next http.Handler) http.Handler {
		return verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				writeStatus(w, r, http.StatusUnauthorized, "invalid token")
				return
			}
			actor, err := actorFromClaims(claims)
			if err != nil {
				writeStatus(w, r, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		}))
	}
}

// RequireActor rejects guests with 401.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()) == nil {
			writeStatus(w, r, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func actorFromClaims(claims map[string]interface{}) (*blog.Actor, error) {
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim")
	}
	roleClaim, _ := claims["role"].(string)
	role, err := blog.ParseRole(roleClaim)
	if err != nil {
		return nil, fmt.Errorf("invalid role claim")
	}
	return &blog.Actor{ID: id, Role: role}, nil
}

// WithActor returns a context carrying actor.
func WithActor(ctx context.Context, actor *blog.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFromContext returns the request's actor, or nil for guests.
func ActorFromContext(ctx context.Context) *blog.Actor {
	actor, _ := ctx.Value(ActorKey).(*blog.Actor)
	return actor
}
