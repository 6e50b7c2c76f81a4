package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wardpass/wardpass/internal/identity"
)

// visitorClaims carries the visitor's identity inside an HMAC-signed JWT.
// The subject is the identity provider's user id; email is optional.
type visitorClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// VisitorJWT enforces a visitor token on booking endpoints and stores the
// authenticated visitor in the request context.
func VisitorJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := visitorClaims{}
			if !parseBearer(w, r, secret, &claims) {
				return
			}
			if claims.Subject == "" {
				http.Error(w, `{"error": "invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := identity.WithVisitor(r.Context(), identity.Visitor{ID: claims.Subject, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffJWT enforces a staff token on the review endpoints. Staff tokens are
// issued by the hospital back office with a distinct signing secret.
func StaffJWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := jwt.RegisteredClaims{}
			if !parseBearer(w, r, secret, &claims) {
				return
			}
			if claims.Subject == "" {
				http.Error(w, `{"error": "invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := identity.WithStaff(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseBearer extracts and verifies the bearer token, writing the error
// response itself on failure. Only HMAC signatures are accepted.
func parseBearer(w http.ResponseWriter, r *http.Request, secret string, claims jwt.Claims) bool {
	if secret == "" {
		http.Error(w, `{"error": "authentication disabled"}`, http.StatusUnauthorized)
		return false
	}
	auth := r.Header.Get("Authorization")
	if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
		http.Error(w, `{"error": "missing authorization header"}`, http.StatusUnauthorized)
		return false
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		http.Error(w, `{"error": "invalid token"}`, http.StatusUnauthorized)
		return false
	}
	return true
}
