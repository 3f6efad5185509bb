package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{Auth: auth}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := ac.Auth.Register(c.Request.Context(), services.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", user)
}

func (ac *AuthController) CheckEmail(c *gin.Context) {
	var input CheckEmailRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	available, err := ac.Auth.EmailAvailable(c.Request.Context(), input.Email)
	if err != nil {
		RespondError(c, err)
		return
	}
	message := "Email available for registration"
	if !available {
		message = "Email already registered"
	}
	respond(c, http.StatusOK, message, gin.H{"available": available})
}

// Login takes form fields (username or email, password, device_name) or the
// same keys as JSON.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBind(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	email := strings.TrimSpace(input.Username)
	if email == "" {
		email = strings.TrimSpace(input.Email)
	}
	if email == "" {
		RespondError(c, &HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeMissingRequiredField,
			Message: "missing required field: username",
			Details: gin.H{"fields": []string{"username"}},
		})
		return
	}
	device := strings.TrimSpace(input.DeviceName)
	if device == "" {
		device = c.Request.UserAgent()
	}

	pair, err := ac.Auth.Login(c.Request.Context(), email, input.Password, device)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", pair)
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBind(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	pair, err := ac.Auth.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Token refreshed", pair)
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input RefreshRequest
	if err := c.ShouldBind(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := ac.Auth.Logout(c.Request.Context(), utils.GetUser(c), input.RefreshToken); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged out successfully", nil)
}

func (ac *AuthController) LogoutAll(c *gin.Context) {
	revoked, err := ac.Auth.LogoutAll(c.Request.Context(), utils.GetUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Logged out from all sessions", gin.H{"revoked": revoked})
}

func (ac *AuthController) Sessions(c *gin.Context) {
	sessions, err := ac.Auth.Sessions(c.Request.Context(), utils.GetUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Active sessions", sessions)
}

func (ac *AuthController) RevokeSession(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := ac.Auth.RevokeSession(c.Request.Context(), utils.GetUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Session revoked", nil)
}
