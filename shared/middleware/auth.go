package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware guards write routes with a static shared bearer secret.
// A missing or non-Bearer header is a 401; a wrong token is a 403.
func AuthMiddleware(secret string) gin.HandlerFunc {
	expected := []byte(secret)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			RespondWithError(c, http.StatusUnauthorized, "Authorization header missing or invalid.")
			return
		}

		token := strings.Split(authHeader, " ")[1]
		if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
			RespondWithError(c, http.StatusForbidden, "Invalid token.")
			return
		}

		c.Next()
	}
}
