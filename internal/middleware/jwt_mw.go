package middleware

import (
	"net/http"
	"strings"

	"contacts_api/internal/utils"

	"github.com/gin-gonic/gin"
)

const AuthUserKey = "authUser"

const (
	MsgNotAuthenticated = "Not authenticated"
	MsgInvalidToken     = "Invalid token"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

// Unauthorized aborts with 401 and the bearer challenge header.
func Unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}

// JWTAuthMiddleware creates a middleware for JWT authentication. The token
// subject (the user's name) is stored under AuthUserKey.
func JWTAuthMiddleware(jwtUtil *utils.JWTUtil) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			Unauthorized(c, MsgNotAuthenticated)
			return
		}

		claims, err := jwtUtil.Verify(tokenString)
		if err != nil {
			Unauthorized(c, MsgInvalidToken)
			return
		}
		name, err := utils.Subject(claims)
		if err != nil {
			Unauthorized(c, MsgInvalidToken)
			return
		}

		c.Set(AuthUserKey, name)
		c.Next()
	}
}
