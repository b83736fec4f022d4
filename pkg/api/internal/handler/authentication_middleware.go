package handler

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// NewAuthenticationMiddleware verifies the bearer token, cookie or jwt query parameter of the
// request. The outcome is stored in the context and checked by the handlers that need a viewer.
func NewAuthenticationMiddleware(jwtAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := jwtauth.VerifyRequest(jwtAuth, r, jwtauth.TokenFromHeader, jwtauth.TokenFromCookie, jwtauth.TokenFromQuery)
			ctx := jwtauth.NewContext(r.Context(), token, err)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
