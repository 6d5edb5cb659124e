package middleware

import (
	"net/http"
	"strings"

	"teamboard-be/config"
	"teamboard-be/internal/models"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer access token and stores the user id in
// the request context under "userID".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "missing authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "authorization header must be a bearer token",
			})
			return
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "invalid or expired token",
			})
			return
		}

		if claims.TokenType != "access" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "token is not an access token",
			})
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
