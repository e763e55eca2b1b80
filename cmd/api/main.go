package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gallery/internal/config"
	"gallery/internal/domain/images"
	"gallery/internal/domain/videos"
	"gallery/internal/middleware"
	"gallery/internal/pkg/logger"
	"gallery/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	if err := cfg.EnsureDirs(); err != nil {
		zl.Fatal("bootstrap directories", zap.Error(err))
	}

	imageStore := storage.NewCollection[images.Image](cfg.ImageMetadataPath)
	videoStore := storage.NewCollection[videos.Video](cfg.VideoMetadataPath)
	accountant := storage.NewAccountant(cfg.UploadsDir, cfg.StorageLimit)

	imageService := images.NewService(imageStore, accountant, cfg.UploadsDir, cfg.MaxImageSize, zl)
	videoService := videos.NewService(videoStore, cfg.VideoUploadsDir, cfg.MaxVideoSize, zl)

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.CORS())

	api := r.Group("/api")
	{
		images.RegisterRoutes(api, images.NewHandler(imageService))
		videos.RegisterRoutes(api, videos.NewHandler(videoService))
	}

	// Stored media. Video uploads are addressed under /uploads/videos
	// regardless of where the two directories actually live on disk.
	r.GET("/uploads/*filepath", serveUploads(cfg))

	// Everything else is the single-page client.
	r.NoRoute(serveClient(cfg))

	zl.Info("gallery server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func serveUploads(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		rel := filepath.Clean(strings.TrimPrefix(c.Param("filepath"), "/"))
		if rel == "." || strings.HasPrefix(rel, "..") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		if after, ok := strings.CutPrefix(rel, "videos/"); ok {
			c.File(filepath.Join(cfg.VideoUploadsDir, after))
			return
		}
		c.File(filepath.Join(cfg.UploadsDir, rel))
	}
}

func serveClient(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}

		rel := filepath.Clean(strings.TrimPrefix(c.Request.URL.Path, "/"))
		if rel != "." && !strings.HasPrefix(rel, "..") {
			path := filepath.Join(cfg.PublicDir, rel)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				c.File(path)
				return
			}
		}
		c.File(filepath.Join(cfg.PublicDir, "index.html"))
	}
}
