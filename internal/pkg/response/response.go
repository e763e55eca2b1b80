package response

import (
	"github.com/gin-gonic/gin"

	"gallery/internal/storage"
)

// Helpers for the gallery's wire shapes: errors are a flat {"error": msg}
// object, quota rejections carry a fresh storage snapshot alongside.

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func ErrorWithStorage(c *gin.Context, statusCode int, message string, info storage.Info) {
	c.JSON(statusCode, gin.H{
		"error":       message,
		"storageInfo": info,
	})
}
