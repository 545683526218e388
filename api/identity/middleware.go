package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionClaims is the key used to store session token claims in the Gin context.
	ContextSessionClaims = "sessionClaims"
)

// Authorize rejects requests without a valid bearer session token and stores its claims in the context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the session token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextSessionClaims, claims)
		c.Next()
	}
}

// Claim returns a string claim of the request's session token.
func Claim(c *gin.Context, key string) (string, bool) {
	raw, ok := c.Get(ContextSessionClaims)
	if !ok {
		return "", false
	}
	claims, ok := raw.(map[string]interface{})
	if !ok {
		return "", false
	}
	value, ok := claims[key].(string)
	return value, ok
}
