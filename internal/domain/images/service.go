package images

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gallery/internal/storage"
)

// AllowedMimeTypes is the declared-type allow-list for image uploads.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

const urlPrefix = "/uploads"

// Service implements the image gallery: listing, batch upload with aggregate
// quota enforcement, add-by-URL, and deletion. All mutations run under one
// mutex so concurrent read-modify-write cycles cannot drop each other's
// records.
type Service struct {
	store       Store
	meter       Meter
	uploadsDir  string
	maxFileSize int64
	log         *zap.Logger

	mu sync.Mutex
}

func NewService(store Store, meter Meter, uploadsDir string, maxFileSize int64, log *zap.Logger) *Service {
	return &Service{
		store:       store,
		meter:       meter,
		uploadsDir:  uploadsDir,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// List returns all image records sorted by the requested key. Unknown sort
// keys fall back to date, unknown orders to descending.
func (s *Service) List(sortKey, order string) ([]Image, error) {
	records, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	asc := order == "asc"
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !asc {
			a, b = b, a
		}
		if sortKey == "size" {
			return a.FileSize < b.FileSize
		}
		return a.UploadedAt.Before(b.UploadedAt)
	})
	return records, nil
}

// StorageInfo returns a fresh quota snapshot.
func (s *Service) StorageInfo() storage.Info {
	return s.meter.Info()
}

// UploadBatch validates and persists one multipart batch. The batch is
// all-or-nothing: any per-file validation failure or an aggregate quota miss
// rejects the whole batch before a single byte reaches disk.
func (s *Service) UploadBatch(files []*multipart.FileHeader) ([]Image, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	mimeTypes := make([]string, len(files))
	var batchSize int64
	for i, fh := range files {
		mimeType := declaredMimeType(fh)
		if !AllowedMimeTypes[mimeType] {
			return nil, &UnsupportedTypeError{FileName: fh.Filename, MimeType: mimeType}
		}
		if fh.Size > s.maxFileSize {
			return nil, &FileTooLargeError{FileName: fh.Filename, Size: fh.Size, Limit: s.maxFileSize}
		}
		mimeTypes[i] = mimeType
		batchSize += fh.Size
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if available := s.meter.Available(); batchSize > available {
		return nil, &QuotaExceededError{
			Limit:     s.meter.Limit(),
			Available: available,
			Requested: batchSize,
		}
	}

	accepted := make([]Image, 0, len(files))
	for i, fh := range files {
		storedName, size, err := storage.SaveFile(fh, s.uploadsDir)
		if err != nil {
			s.rollback(accepted)
			return nil, fmt.Errorf("persist %q: %w", fh.Filename, err)
		}
		accepted = append(accepted, Image{
			ID:         uuid.New().String(),
			FileName:   fh.Filename,
			StoredName: storedName,
			FileSize:   size,
			MimeType:   mimeTypes[i],
			UploadedAt: time.Now().UTC(),
			Source:     "upload",
			URL:        urlPrefix + "/" + storedName,
		})
	}

	records, err := s.store.ReadAll()
	if err != nil {
		s.rollback(accepted)
		return nil, err
	}
	records = append(records, accepted...)
	if err := s.store.WriteAll(records); err != nil {
		s.rollback(accepted)
		return nil, err
	}

	s.log.Info("image batch stored",
		zap.Int("count", len(accepted)),
		zap.Int64("bytes", batchSize),
	)
	return accepted, nil
}

// rollback removes the files written for a batch that cannot be completed.
func (s *Service) rollback(accepted []Image) {
	for _, img := range accepted {
		if err := storage.RemoveStored(s.uploadsDir, img.StoredName); err != nil {
			s.log.Warn("rollback remove failed",
				zap.String("stored_name", img.StoredName),
				zap.Error(err),
			)
		}
	}
}

// AddFromURL records an externally hosted image. The URL is checked for
// well-formedness only; the resource is never fetched.
func (s *Service) AddFromURL(rawURL, fileName string) (Image, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Image{}, ErrInvalidURL
	}

	if fileName == "" {
		fileName = "Image from " + u.Hostname()
	}
	source := "external"
	if strings.Contains(rawURL, "unsplash") {
		source = "unsplash"
	}

	img := Image{
		ID:         uuid.New().String(),
		FileName:   fileName,
		FileSize:   0,
		MimeType:   "image/jpeg",
		UploadedAt: time.Now().UTC(),
		Source:     source,
		URL:        rawURL,
		IsExternal: true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.ReadAll()
	if err != nil {
		return Image{}, err
	}
	if err := s.store.WriteAll(append(records, img)); err != nil {
		return Image{}, err
	}
	return img, nil
}

// Delete removes a record and its backing file in one operation. A backing
// file that is already gone is tolerated.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	idx := -1
	for i, img := range records {
		if img.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	if stored := records[idx].StoredName; stored != "" {
		if err := storage.RemoveStored(s.uploadsDir, stored); err != nil {
			return fmt.Errorf("remove stored file %q: %w", stored, err)
		}
	}

	records = append(records[:idx], records[idx+1:]...)
	return s.store.WriteAll(records)
}

func declaredMimeType(fh *multipart.FileHeader) string {
	mimeType := fh.Header.Get("Content-Type")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.TrimSpace(strings.ToLower(mimeType))
}
