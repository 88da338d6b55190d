// File: /controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-api/models"
	"photoshare-api/services"
	"photoshare-api/utils"
)

type AuthController struct {
	userService *services.UserService
}

func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

type RegisterRequest struct {
	LoginName   string `json:"login_name" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
	Email       string `json:"email"`
}

type LoginRequest struct {
	LoginName string `json:"login_name" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

// Register godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      RegisterRequest  true  "Account details"
// @Success      201    {object}  RegisterResponse
// @Failure      400    {object}  utils.ErrorResponse
// @Failure      409    {object}  utils.ErrorResponse  "User already exists"
// @Router       /admin/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if !utils.IsValidLoginName(req.LoginName) {
		utils.SendValidationError(c, "login_name must be 3-50 characters of letters, digits, '.', '_' or '-'")
		return
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		utils.SendValidationError(c, "Invalid email address")
		return
	}

	user, err := ac.userService.Register(c.Request.Context(), services.RegisterInput{
		LoginName:   req.LoginName,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Location:    req.Location,
		Description: req.Description,
		Occupation:  req.Occupation,
		Email:       req.Email,
	})
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User:    *user,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  AuthResponse
// @Failure      400    {object}  utils.ErrorResponse
// @Failure      401    {object}  utils.ErrorResponse  "Invalid login name or password"
// @Router       /admin/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	token, user, err := ac.userService.Login(c.Request.Context(), req.LoginName, req.Password)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: *user})
}

// Logout godoc
// @Summary      Log out
// @Description  Tokens are stateless; clients discard theirs.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  utils.MessageResponse
// @Router       /admin/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	utils.SendMessage(c, http.StatusOK, "Logged out successfully")
}
