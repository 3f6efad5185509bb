package utils

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/models"
)

type contextKey string

const UserContextKey contextKey = "user"

// SetUser stores the authenticated caller on the request context.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(string(UserContextKey), user)
}

// GetUser returns the caller set by the auth middleware, or nil.
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if u, ok := user.(*models.User); ok {
		return u
	}
	return nil
}
