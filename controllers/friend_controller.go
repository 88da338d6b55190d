// File: /controllers/friend_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-api/models"
	"photoshare-api/services"
	"photoshare-api/utils"
)

type FriendController struct {
	friendService *services.FriendService
}

func NewFriendController(friendService *services.FriendService) *FriendController {
	return &FriendController{friendService: friendService}
}

type SendFriendRequestInput struct {
	RecipientID string `json:"recipientId" binding:"required"`
}

type RespondFriendRequestInput struct {
	Action models.FriendshipStatus `json:"action" binding:"required,oneof=accepted declined"`
}

type FriendLinkResponse struct {
	FriendLink string `json:"friendLink"`
	UserID     string `json:"userId"`
}

// GetMyLink godoc
// @Summary      Get my add-friend link
// @Description  Returns the link other users open (or scan as a QR code) to send a friend request.
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FriendLinkResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Router       /friend/my-link [get]
func (fc *FriendController) GetMyLink(c *gin.Context) {
	userID := c.GetString("user_id")
	c.JSON(http.StatusOK, FriendLinkResponse{
		FriendLink: fc.friendService.FriendLink(userID),
		UserID:     userID,
	})
}

// SendRequest godoc
// @Summary      Send a friend request
// @Tags         friend
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      SendFriendRequestInput  true  "Recipient"
// @Success      201    {object}  utils.MessageResponse
// @Failure      400    {object}  utils.ErrorResponse  "Self request or missing recipient"
// @Failure      404    {object}  utils.ErrorResponse  "Recipient not found"
// @Failure      409    {object}  utils.ErrorResponse  "Request pending or already friends"
// @Router       /friend/send-request [post]
func (fc *FriendController) SendRequest(c *gin.Context) {
	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	if _, err := fc.friendService.SendRequest(c.Request.Context(), c.GetString("user_id"), input.RecipientID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendMessage(c, http.StatusCreated, "Friend request sent")
}

// Respond godoc
// @Summary      Accept or decline a friend request
// @Tags         friend
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        friendId  path      string                     true  "Friend request ID"
// @Param        input     body      RespondFriendRequestInput  true  "accepted or declined"
// @Success      200       {object}  utils.MessageResponse
// @Failure      400       {object}  utils.ErrorResponse
// @Failure      404       {object}  utils.ErrorResponse  "No pending request addressed to the caller"
// @Router       /friend/respond/{friendId} [put]
func (fc *FriendController) Respond(c *gin.Context) {
	var input RespondFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	friendship, err := fc.friendService.Respond(c.Request.Context(), c.Param("friendId"), c.GetString("user_id"), input.Action)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	message := "Friend request declined"
	if friendship.Status == models.FriendshipStatusAccepted {
		message = "Friend request accepted"
	}
	utils.SendMessage(c, http.StatusOK, message)
}

// ListFriends godoc
// @Summary      List my friends
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.PublicProfile
// @Router       /friend/list [get]
func (fc *FriendController) ListFriends(c *gin.Context) {
	friends, err := fc.friendService.ListFriends(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// ListRequests godoc
// @Summary      List friend requests waiting on me
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FriendRequestResponse
// @Router       /friend/requests [get]
func (fc *FriendController) ListRequests(c *gin.Context) {
	requests, err := fc.friendService.ListPendingRequests(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// ListSent godoc
// @Summary      List friend requests I sent that are still pending
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.FriendRequestResponse
// @Router       /friend/sent [get]
func (fc *FriendController) ListSent(c *gin.Context) {
	requests, err := fc.friendService.ListSentRequests(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// GetStatus godoc
// @Summary      Friendship status with another user
// @Tags         friend
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "Other user ID"
// @Success      200     {object}  models.FriendshipStatusResponse
// @Router       /friend/status/{userId} [get]
func (fc *FriendController) GetStatus(c *gin.Context) {
	status, err := fc.friendService.Status(c.Request.Context(), c.GetString("user_id"), c.Param("userId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
