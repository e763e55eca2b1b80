package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults mirror the reference deployment: a 1 GiB image quota, 10 MiB per
// image, 100 MiB per video.
const (
	DefaultStorageLimit = 1 << 30
	DefaultMaxImageSize = 10 << 20
	DefaultMaxVideoSize = 100 << 20
)

type Config struct {
	Port            string
	PublicDir       string
	DataDir         string
	UploadsDir      string
	VideoUploadsDir string

	ImageMetadataPath string
	VideoMetadataPath string

	StorageLimit int64 // aggregate quota on locally stored images
	MaxImageSize int64 // per-file cap, images
	MaxVideoSize int64 // per-file cap, videos
}

// Load builds the configuration from environment variables, reading a .env
// file first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")
	uploadsDir := getEnv("UPLOADS_DIR", "./uploads")

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		PublicDir:       getEnv("PUBLIC_DIR", "./web/public"),
		DataDir:         dataDir,
		UploadsDir:      uploadsDir,
		VideoUploadsDir: getEnv("VIDEO_UPLOADS_DIR", filepath.Join(uploadsDir, "videos")),
		StorageLimit:    getEnvInt64("STORAGE_LIMIT", DefaultStorageLimit),
		MaxImageSize:    getEnvInt64("MAX_IMAGE_SIZE", DefaultMaxImageSize),
		MaxVideoSize:    getEnvInt64("MAX_VIDEO_SIZE", DefaultMaxVideoSize),
	}
	cfg.ImageMetadataPath = filepath.Join(cfg.DataDir, "images.json")
	cfg.VideoMetadataPath = filepath.Join(cfg.DataDir, "videos.json")

	return cfg, nil
}

// EnsureDirs creates the data and upload directories and seeds empty metadata
// files so a fresh checkout serves an empty gallery instead of erroring.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.DataDir, c.UploadsDir, c.VideoUploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	for _, path := range []string{c.ImageMetadataPath, c.VideoMetadataPath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			empty, _ := json.MarshalIndent([]struct{}{}, "", "  ")
			if err := os.WriteFile(path, empty, 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
