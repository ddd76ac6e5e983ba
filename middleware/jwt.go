package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/nejmigmc-soft/landmarkweb/utils"
)

// TokenFromRequest finds the session token: httpOnly cookie first (the
// web client), Bearer header as fallback (API clients, tests).
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// JWTAuthMiddleware validates the session token and rejects tokens
// revoked via the Redis blacklist. Sets user_id and role on the context.
func JWTAuthMiddleware(rdb *redis.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		token := TokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			c.Abort()
			return
		}

		if rdb != nil {
			if _, err := rdb.Get(c.Request.Context(), "blacklist:"+token).Result(); err == nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ParseJWT(token, secret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token payload"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole gates a group on the role claim set by JWTAuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
