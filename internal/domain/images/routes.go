package images

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/images", h.List)
	r.GET("/storage", h.StorageInfo)
	r.POST("/upload", h.Upload)
	r.POST("/add-url", h.AddFromURL)
	r.DELETE("/images/:id", h.Delete)
}
