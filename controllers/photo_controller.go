// File: /controllers/photo_controller.go
package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoshare-api/services"
	"photoshare-api/utils"
)

type PhotoController struct {
	photoService *services.PhotoService
	maxUpload    int64
}

func NewPhotoController(photoService *services.PhotoService, maxUpload int64) *PhotoController {
	return &PhotoController{photoService: photoService, maxUpload: maxUpload}
}

type AddCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ListPhotos godoc
// @Summary      List every photo
// @Tags         photo
// @Produce      json
// @Success      200  {array}   models.Photo
// @Router       /photo [get]
func (pc *PhotoController) ListPhotos(c *gin.Context) {
	photos, err := pc.photoService.ListAll(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// PhotosOfUser godoc
// @Summary      List a user's photos, newest first
// @Tags         photo
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {array}   models.PhotoResponse
// @Failure      404  {object}  utils.ErrorResponse  "User not found or no photos"
// @Router       /photo/photosOfUser/{id} [get]
func (pc *PhotoController) PhotosOfUser(c *gin.Context) {
	photos, err := pc.photoService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, photos)
}

// Upload godoc
// @Summary      Upload a photo
// @Tags         photo
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file   formData  file    true   "Image file"
// @Param        title  formData  string  false  "Title"
// @Success      201    {object}  models.PhotoResponse
// @Failure      400    {object}  utils.ErrorResponse
// @Router       /photo/upload [post]
func (pc *PhotoController) Upload(c *gin.Context) {
	data, err := readUpload(c, "file", pc.maxUpload)
	if err != nil {
		utils.SendValidationError(c, err.Error())
		return
	}

	photo, err := pc.photoService.Upload(c.Request.Context(), c.GetString("user_id"), strings.TrimSpace(c.PostForm("title")), data)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// Delete godoc
// @Summary      Delete one of my photos
// @Tags         photo
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Photo ID"
// @Success      200  {object}  utils.MessageResponse
// @Failure      403  {object}  utils.ErrorResponse  "Not the owner"
// @Failure      404  {object}  utils.ErrorResponse
// @Router       /photo/delete/{id} [delete]
func (pc *PhotoController) Delete(c *gin.Context) {
	if err := pc.photoService.Delete(c.Request.Context(), c.Param("id"), c.GetString("user_id")); err != nil {
		utils.SendServiceError(c, err)
		return
	}
	utils.SendMessage(c, http.StatusOK, "Photo deleted")
}

// AddComment godoc
// @Summary      Comment on a photo
// @Tags         photo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        photoId  path      string             true  "Photo ID"
// @Param        input    body      AddCommentRequest  true  "Comment"
// @Success      201      {object}  models.CommentResponse
// @Failure      400      {object}  utils.ErrorResponse
// @Failure      404      {object}  utils.ErrorResponse
// @Router       /photo/commentsOfPhoto/{photoId} [post]
func (pc *PhotoController) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Comment is required")
		return
	}

	comment, err := pc.photoService.AddComment(c.Request.Context(), c.Param("photoId"), c.GetString("user_id"), req.Comment)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments on a photo
// @Tags         photo
// @Produce      json
// @Param        photoId  path      string  true  "Photo ID"
// @Success      200      {array}   models.CommentResponse
// @Failure      404      {object}  utils.ErrorResponse
// @Router       /photo/commentsOfPhoto/{photoId} [get]
func (pc *PhotoController) ListComments(c *gin.Context) {
	comments, err := pc.photoService.ListComments(c.Request.Context(), c.Param("photoId"))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
