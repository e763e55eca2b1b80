package videos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gallery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List gallery videos
// @Tags Videos
// @Produce json
// @Param order query string false "Sort order: asc or desc" default(desc)
// @Success 200 {array} Video
// @Router /api/videos [get]
func (h *Handler) List(c *gin.Context) {
	records, err := h.service.List(c.DefaultQuery("order", "desc"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read video metadata")
		return
	}
	c.JSON(http.StatusOK, records)
}

// Upload godoc
// @Summary Upload a batch of videos
// @Description Multipart upload, field "videos". Files are validated independently.
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/videos/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	uploaded, rejections, err := h.service.UploadBatch(form.File["videos"])
	if err != nil {
		if errors.Is(err, ErrNoFiles) {
			response.Error(c, http.StatusBadRequest, "No video files provided")
			return
		}
		if len(uploaded) == 0 && len(rejections) > 0 {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to process upload")
		return
	}

	body := gin.H{
		"success": true,
		"videos":  uploaded,
		"count":   len(uploaded),
	}
	if len(rejections) > 0 {
		body["errors"] = rejections
	}
	c.JSON(http.StatusOK, body)
}

// Delete godoc
// @Summary Delete a video and its backing file
// @Tags Videos
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/videos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Video not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete video")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
