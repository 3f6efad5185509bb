package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) List(c *gin.Context) {
	var query PaginationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}
	page := query.Page()
	users, err := uc.Users.List(c.Request.Context(), utils.GetUser(c), page)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved", listOf(users, len(users), page))
}

func (uc *UserController) Me(c *gin.Context) {
	user := utils.GetUser(c)
	if user == nil {
		RespondError(c, services.ErrUnauthenticated)
		return
	}
	respond(c, http.StatusOK, "Current user", user)
}

func (uc *UserController) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.Users.Get(c.Request.Context(), utils.GetUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved", user)
}

func (uc *UserController) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var input UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := uc.Users.Update(c.Request.Context(), utils.GetUser(c), id, services.UpdateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated", user)
}

func (uc *UserController) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := uc.Users.Delete(c.Request.Context(), utils.GetUser(c), id); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted", nil)
}
