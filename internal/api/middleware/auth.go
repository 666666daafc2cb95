// Package middleware provides HTTP middleware for the Gin router.
//
// Go Learning Note — Middleware Pattern (Gin):
// In Gin, middleware is any function with the signature `gin.HandlerFunc`, which
// is `func(*gin.Context)`. Middleware functions form a chain: each one runs,
// optionally calls c.Next() to pass control to the next handler, and can call
// c.Abort() to stop the chain.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys for storing authenticated session data.
const (
	UserIDKey   = "user_id"
	UserRoleKey = "user_role"

	// RoleAuthenticated is the role the session provider puts in tokens of
	// signed-in users. Anonymous tokens carry "anon".
	RoleAuthenticated = "authenticated"

	AnonymousUserID = "anonymous"
)

var (
	ErrMissingToken = errors.New("missing authorization header")
	ErrInvalidToken = errors.New("invalid session token")
	ErrNotSignedIn  = errors.New("signed-in session required")
)

// SessionClaims is the access-token payload issued by the session provider.
type SessionClaims struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ParseSessionToken verifies an HS256 access token and returns its claims.
// Expiry and not-before are checked by the jwt library.
func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionAuth gates routes on a signed-in session: "Authorization: Bearer
// <access token>" signed with secret and carrying the authenticated role.
//
// Go Learning Note — Returning Functions (Closures):
// SessionAuth(secret) returns a gin.HandlerFunc. The inner closure captures
// secret, so the middleware is configured once at startup and the secret is
// never looked up per request.
func SessionAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		claims, err := ParseSessionToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}
		if claims.Role != RoleAuthenticated {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": ErrNotSignedIn.Error()})
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// NoAuth marks every request as an anonymous signed-in user. It is used when
// authentication is disabled for local development.
func NoAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(UserIDKey, AnonymousUserID)
		c.Set(UserRoleKey, RoleAuthenticated)
		c.Next()
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	// strings.SplitN splits into at most 2 parts, handling tokens with spaces.
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", errors.New("invalid authorization format")
	}
	return parts[1], nil
}

// GetUserID retrieves the user ID set by SessionAuth or NoAuth.
//
// Go Learning Note — Type Assertion:
// c.Get() returns (any, bool). The comma-ok form `v, ok := x.(string)`
// returns ok=false instead of panicking when the value is missing or of
// another type.
func GetUserID(c *gin.Context) string {
	v, _ := c.Get(UserIDKey)
	userID, _ := v.(string)
	return userID
}
