// File: /controllers/reaction_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"photoshare-api/models"
	"photoshare-api/services"
	"photoshare-api/utils"
)

type ReactionController struct {
	reactionService *services.ReactionService
}

func NewReactionController(reactionService *services.ReactionService) *ReactionController {
	return &ReactionController{reactionService: reactionService}
}

type ReactInput struct {
	Type string `json:"type" binding:"required"`
}

type ReactResponse struct {
	Message      string                `json:"message"`
	Action       models.ReactionAction `json:"action"`
	ReactionType models.ReactionType   `json:"reactionType,omitempty"`
	Stats        models.ReactionStats  `json:"stats"`
}

type UnreactResponse struct {
	Message     string               `json:"message"`
	RemovedType models.ReactionType  `json:"removedType"`
	Stats       models.ReactionStats `json:"stats"`
}

var reactionMessages = map[models.ReactionAction]string{
	models.ReactionAdded:   "Reaction added",
	models.ReactionRemoved: "Reaction removed",
	models.ReactionUpdated: "Reaction updated",
}

// React godoc
// @Summary      React to a photo
// @Description  Adds a reaction, removes it when the same type is sent again, or switches it to the new type.
// @Tags         reaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        photoId  path      string      true  "Photo ID"
// @Param        input    body      ReactInput  true  "like, love, haha, wow, sad or angry"
// @Success      200      {object}  ReactResponse
// @Failure      400      {object}  utils.ErrorResponse  "Invalid reaction type"
// @Failure      404      {object}  utils.ErrorResponse  "Photo not found"
// @Router       /reaction/{photoId} [post]
func (rc *ReactionController) React(c *gin.Context) {
	var input ReactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendError(c, http.StatusBadRequest, "Invalid reaction type")
		return
	}

	result, err := rc.reactionService.React(c.Request.Context(), c.Param("photoId"), c.GetString("user_id"), input.Type)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	resp := ReactResponse{
		Message: reactionMessages[result.Action],
		Action:  result.Action,
		Stats:   result.Stats,
	}
	if result.Action != models.ReactionRemoved {
		resp.ReactionType = result.ReactionType
	}
	c.JSON(http.StatusOK, resp)
}

// Unreact godoc
// @Summary      Remove my reaction from a photo
// @Tags         reaction
// @Produce      json
// @Security     BearerAuth
// @Param        photoId  path      string  true  "Photo ID"
// @Success      200      {object}  UnreactResponse
// @Failure      404      {object}  utils.ErrorResponse  "Photo not found or no reaction"
// @Router       /reaction/{photoId} [delete]
func (rc *ReactionController) Unreact(c *gin.Context) {
	result, err := rc.reactionService.Unreact(c.Request.Context(), c.Param("photoId"), c.GetString("user_id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, UnreactResponse{
		Message:     "Reaction removed",
		RemovedType: result.RemovedType,
		Stats:       result.Stats,
	})
}

// GetReactions godoc
// @Summary      List reactions on a photo
// @Tags         reaction
// @Produce      json
// @Param        photoId  path      string  true   "Photo ID"
// @Param        type     query     string  false  "Only this reaction type"
// @Success      200      {object}  models.PhotoReactions
// @Failure      400      {object}  utils.ErrorResponse  "Invalid reaction type"
// @Failure      404      {object}  utils.ErrorResponse  "Photo not found"
// @Router       /reaction/{photoId} [get]
func (rc *ReactionController) GetReactions(c *gin.Context) {
	reactions, err := rc.reactionService.GetReactions(c.Request.Context(), c.Param("photoId"), c.Query("type"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reactions)
}

// GetUserReaction godoc
// @Summary      Get one user's reaction on a photo
// @Tags         reaction
// @Produce      json
// @Param        photoId  path      string  true  "Photo ID"
// @Param        userId   path      string  true  "User ID"
// @Success      200      {object}  models.UserReactionStatus
// @Failure      404      {object}  utils.ErrorResponse  "Photo not found"
// @Router       /reaction/{photoId}/user/{userId} [get]
func (rc *ReactionController) GetUserReaction(c *gin.Context) {
	status, err := rc.reactionService.GetUserReaction(c.Request.Context(), c.Param("photoId"), c.Param("userId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
