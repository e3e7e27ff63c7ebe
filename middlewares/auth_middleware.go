package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/utils"
)

// AuthMiddleware consumes the identity service's bearer token and exposes
// the subject and role to handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			// websocket clients cannot set headers from the browser
			token = "Bearer " + c.Query("token")
		}
		if !strings.HasPrefix(token, "Bearer ") || token == "Bearer " {
			c.AbortWithStatusJSON(401, utils.JSONResponse{
				Status:  false,
				Code:    "UNAUTHORIZED",
				Message: "authorization token missing",
			})
			return
		}

		claims, err := utils.ParseToken(strings.TrimPrefix(token, "Bearer "))
		if err != nil || claims.UserID == 0 {
			c.AbortWithStatusJSON(401, utils.JSONResponse{
				Status:  false,
				Code:    "UNAUTHORIZED",
				Message: "invalid or expired token",
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userName", claims.FullName)
		c.Set("role", claims.Role)
		c.Next()
	}
}
