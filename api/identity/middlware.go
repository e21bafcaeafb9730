package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextUserClaims is the key used to store user claims in the Gin context.
	ContextUserClaims = "userClaims"
)

func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if _, _, ok := playerFromClaims(claims); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// Attach user claims to the request context for further use.
		c.Set(ContextUserClaims, claims)
		c.Next()
	}
}

// Player returns the authenticated player's ID and username.
func Player(c *gin.Context) (uuid.UUID, string, bool) {
	v, ok := c.Get(ContextUserClaims)
	if !ok {
		return uuid.Nil, "", false
	}
	claims, ok := v.(map[string]interface{})
	if !ok {
		return uuid.Nil, "", false
	}
	return playerFromClaims(claims)
}

func playerFromClaims(claims map[string]interface{}) (uuid.UUID, string, bool) {
	rawID, _ := claims["playerID"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", false
	}
	username, _ := claims["username"].(string)
	return id, username, true
}
