package controller

import (
	"lingua_edu_backend/internal/service"
	"lingua_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MediaController handles media file uploads. Uploaded files are
// referenced by id from question creation requests.
type MediaController struct {
	MediaService *service.MediaService
}

func NewMediaController(mediaService *service.MediaService) *MediaController {
	return &MediaController{MediaService: mediaService}
}

// UploadMedia godoc
// @Summary Upload a media file (image, audio or video)
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "media file"
// @Success 201 {object} util.Response{data=model.MediaFile}
// @Failure 400 {object} util.Response
// @Router /api/media/upload [post]
func (mc *MediaController) UploadMedia(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file field")
		return
	}
	file, err := mc.MediaService.UploadSingleFile(ctx.Request.Context(), header)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Created(ctx, file)
}
