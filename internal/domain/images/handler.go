package images

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"gallery/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary List gallery images
// @Description Returns all image records sorted by date or size.
// @Tags Images
// @Produce json
// @Param sort query string false "Sort key: date or size" default(date)
// @Param order query string false "Sort order: asc or desc" default(desc)
// @Success 200 {array} Image
// @Router /api/images [get]
func (h *Handler) List(c *gin.Context) {
	records, err := h.service.List(c.DefaultQuery("sort", "date"), c.DefaultQuery("order", "desc"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read image metadata")
		return
	}
	c.JSON(http.StatusOK, records)
}

// StorageInfo godoc
// @Summary Current storage usage
// @Tags Images
// @Produce json
// @Success 200 {object} storage.Info
// @Router /api/storage [get]
func (h *Handler) StorageInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.StorageInfo())
}

// Upload godoc
// @Summary Upload a batch of images
// @Description Multipart upload, field "images", multiple files. All-or-nothing per batch.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	uploaded, err := h.service.UploadBatch(form.File["images"])
	if err != nil {
		var quotaErr *QuotaExceededError
		var typeErr *UnsupportedTypeError
		var sizeErr *FileTooLargeError
		switch {
		case errors.Is(err, ErrNoFiles):
			response.Error(c, http.StatusBadRequest, "No image files provided")
		case errors.As(err, &quotaErr):
			response.ErrorWithStorage(c, http.StatusBadRequest, err.Error(), h.service.StorageInfo())
		case errors.As(err, &typeErr), errors.As(err, &sizeErr):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to process upload")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      uploaded,
		"count":       len(uploaded),
		"storageInfo": h.service.StorageInfo(),
	})
}

// AddFromURL godoc
// @Summary Add an externally hosted image by URL
// @Tags Images
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/add-url [post]
func (h *Handler) AddFromURL(c *gin.Context) {
	var req AddURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	img, err := h.service.AddFromURL(req.URL, req.FileName)
	if err != nil {
		if errors.Is(err, ErrInvalidURL) {
			response.Error(c, http.StatusBadRequest, "Invalid URL format")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to add image")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "image": img})
}

// Delete godoc
// @Summary Delete an image and its backing file
// @Tags Images
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/images/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Image not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func bindErrorMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			if fieldError.Field() == "URL" {
				if fieldError.Tag() == "required" {
					return "URL is required"
				}
				return "Invalid URL format"
			}
		}
	}
	return "Invalid request body"
}
