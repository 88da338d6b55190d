// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-api/models"
	"photoshare-api/services"
	"photoshare-api/utils"
)

type UserController struct {
	userService   *services.UserService
	friendService *services.FriendService
	maxUpload     int64
}

func NewUserController(userService *services.UserService, friendService *services.FriendService, maxUpload int64) *UserController {
	return &UserController{
		userService:   userService,
		friendService: friendService,
		maxUpload:     maxUpload,
	}
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	Occupation  *string `json:"occupation"`
	Email       *string `json:"email"`
}

type UserResponse struct {
	Message string      `json:"message"`
	User    models.User `json:"user"`
}

type AvatarResponse struct {
	Message string      `json:"message"`
	Avatar  string      `json:"avatar"`
	User    models.User `json:"user"`
}

// ListFriends godoc
// @Summary      List my friends
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.UserSummary
// @Router       /user/list [get]
func (uc *UserController) ListFriends(c *gin.Context) {
	friends, err := uc.friendService.ListFriendSummaries(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// ListAvailable godoc
// @Summary      List users I can send a friend request to
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.UserSummary
// @Router       /user/available [get]
func (uc *UserController) ListAvailable(c *gin.Context) {
	users, err := uc.friendService.ListDiscoverable(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary      Get a user profile
// @Tags         user
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.UserSummary
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /user/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user.ToSummary())
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200    {object}  UserResponse
// @Failure      400    {object}  utils.ErrorResponse
// @Router       /user/update [post]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}
	if req.Email != nil && *req.Email != "" && !utils.IsValidEmail(*req.Email) {
		utils.SendValidationError(c, "Invalid email address")
		return
	}

	user, err := uc.userService.UpdateProfile(c.Request.Context(), c.GetString("user_id"), services.ProfileUpdate{
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

	c.JSON(http.StatusOK, UserResponse{Message: "Profile updated", User: *user})
}

// UploadAvatar godoc
// @Summary      Upload a new avatar
// @Tags         user
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Image file"
// @Success      200     {object}  AvatarResponse
// @Failure      400     {object}  utils.ErrorResponse
// @Router       /user/upload-avatar [post]
func (uc *UserController) UploadAvatar(c *gin.Context) {
	data, err := readUpload(c, "avatar", uc.maxUpload)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	user, err := uc.userService.UpdateAvatar(c.Request.Context(), c.GetString("user_id"), data)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AvatarResponse{
		Message: "Avatar updated",
		Avatar:  user.Avatar,
		User:    *user,
	})
}
