package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

// AuthMiddleware resolves the bearer token to a user and stores it on the context.
func AuthMiddleware(gate *services.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			controllers.RespondError(c, controllers.NewHTTPError(http.StatusUnauthorized, controllers.CodeUnauthorized, "Authorization header is required"))
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			controllers.RespondError(c, controllers.NewHTTPError(http.StatusUnauthorized, controllers.CodeTokenInvalid, "Invalid token format"))
			return
		}

		user, err := gate.Authenticate(c.Request.Context(), token)
		if err != nil {
			controllers.RespondError(c, err)
			return
		}

		utils.SetUser(c, user)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := services.RequireAdmin(utils.GetUser(c)); err != nil {
			controllers.RespondError(c, err)
			return
		}
		c.Next()
	}
}
