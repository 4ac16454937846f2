package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

type contextKey int

const buyerKey contextKey = 0

// BuyerID returns the authenticated buyer resolved by RequireAuth.
func BuyerID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(buyerKey).(uuid.UUID)
	return id, ok
}

// RequireAuth verifies the bearer token and places the buyer id (the token
// subject) in the request context. Token issuance is the auth server's job;
// this side only verifies.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			raw = strings.TrimPrefix(raw, "Bearer ")
			if raw == "" {
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			claims := &jwt.StandardClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "invalid authorization token", http.StatusUnauthorized)
				return
			}

			buyer, err := uuid.Parse(claims.Subject)
			if err != nil {
				http.Error(w, "invalid authorization token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), buyerKey, buyer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
