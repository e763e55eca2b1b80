package videos

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	v := r.Group("/videos")
	{
		v.GET("", h.List)
		v.POST("/upload", h.Upload)
		v.DELETE("/:id", h.Delete)
	}
}
