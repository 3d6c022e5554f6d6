package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist/pkg/auth"
)

// UserIDKey is where the resolved caller identity lives in the gin context.
const UserIDKey = "x-user-id"

// GinJwtMiddleware is the identity gate: it resolves the caller from the
// bearer token or terminates the request. Failures carry no detail beyond
// the generic unauthorized message.
func GinJwtMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" || !strings.HasPrefix(bearer, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		claims, err := auth.VerifyJwtToken(strings.TrimPrefix(bearer, "Bearer "))

		if err != nil {
			abortUnauthorized(c)
			return
		}

		rawUserId, ok := claims["user_id"].(float64)

		if !ok {
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDKey, int(rawUserId))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "Unauthorized",
	})
}

// CurrentUserID reads the identity the gate resolved for this request.
func CurrentUserID(c *gin.Context) (int, bool) {
	userId, exists := c.Get(UserIDKey)

	if !exists {
		return 0, false
	}

	id, ok := userId.(int)

	return id, ok
}
