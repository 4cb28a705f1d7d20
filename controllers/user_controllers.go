package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register -> sign-up for customers
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.Users.Register(c.Request.Context(), services.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Registration successful", user)
}

func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	session, err := uc.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("user_id", session.User.ID).Info("user logged in")
	utils.RespondJSON(c, http.StatusOK, "Login successful", session)
}

func (uc *UserController) Logout(c *gin.Context) {
	if err := uc.Users.Logout(middlewares.GetToken(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}

// GetProfile -> the account behind the current session
func (uc *UserController) GetProfile(c *gin.Context) {
	caller := middlewares.GetCaller(c)
	user, err := uc.Users.GetUser(c.Request.Context(), caller.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	user.Role = caller.Role
	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", user)
}
