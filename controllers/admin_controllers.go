package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

// AdminController manages staff and customer accounts.
type AdminController struct {
	Users *services.UserService
}

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{Users: users}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"`
}

type roleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (ac *AdminController) GetUsers(c *gin.Context) {
	users, err := ac.Users.ListUsers(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

func (ac *AdminController) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := ac.Users.CreateUser(c.Request.Context(), middlewares.GetCaller(c), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "User created", user)
}

func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	id, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := ac.Users.UpdateUserRole(c.Request.Context(), middlewares.GetCaller(c), id, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Role updated", user)
}

func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if err := ac.Users.DeleteUser(c.Request.Context(), middlewares.GetCaller(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User deleted", nil)
}
