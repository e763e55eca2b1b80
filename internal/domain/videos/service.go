package videos

import (
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gallery/internal/storage"
)

// AllowedMimeTypes is the declared-type allow-list for video uploads.
var AllowedMimeTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
	"video/ogg":  true,
}

const urlPrefix = "/uploads/videos"

// Service implements the video side of the gallery. Videos carry only the
// per-file size cap: the aggregate image quota does not apply to them, and
// files in the video directory are invisible to the accountant.
type Service struct {
	store       Store
	uploadsDir  string
	maxFileSize int64
	log         *zap.Logger

	mu sync.Mutex
}

func NewService(store Store, uploadsDir string, maxFileSize int64, log *zap.Logger) *Service {
	return &Service{
		store:       store,
		uploadsDir:  uploadsDir,
		maxFileSize: maxFileSize,
		log:         log,
	}
}

// List returns all video records ordered by upload time.
func (s *Service) List(order string) ([]Video, error) {
	records, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	asc := order == "asc"
	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return records[i].UploadedAt.Before(records[j].UploadedAt)
		}
		return records[j].UploadedAt.Before(records[i].UploadedAt)
	})
	return records, nil
}

// UploadBatch validates each file independently: a failing file is reported
// in rejections and skipped, its siblings proceed. The call fails only when
// the batch is empty or nothing in it passes validation.
func (s *Service) UploadBatch(files []*multipart.FileHeader) ([]Video, []string, error) {
	if len(files) == 0 {
		return nil, nil, ErrNoFiles
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var accepted []Video
	var rejections []string
	for _, fh := range files {
		if err := s.validate(fh); err != nil {
			rejections = append(rejections, err.Error())
			continue
		}

		storedName, size, err := storage.SaveFile(fh, s.uploadsDir)
		if err != nil {
			rejections = append(rejections, fmt.Sprintf("%s: failed to store file", fh.Filename))
			s.log.Warn("video store failed", zap.String("file", fh.Filename), zap.Error(err))
			continue
		}
		accepted = append(accepted, Video{
			ID:         uuid.New().String(),
			FileName:   fh.Filename,
			StoredName: storedName,
			FileSize:   size,
			MimeType:   declaredMimeType(fh),
			UploadedAt: time.Now().UTC(),
			URL:        urlPrefix + "/" + storedName,
		})
	}

	if len(accepted) == 0 {
		return nil, rejections, fmt.Errorf("no videos accepted: %s", strings.Join(rejections, "; "))
	}

	records, err := s.store.ReadAll()
	if err != nil {
		s.rollback(accepted)
		return nil, rejections, err
	}
	records = append(records, accepted...)
	if err := s.store.WriteAll(records); err != nil {
		s.rollback(accepted)
		return nil, rejections, err
	}

	s.log.Info("video batch stored", zap.Int("count", len(accepted)), zap.Int("rejected", len(rejections)))
	return accepted, rejections, nil
}

func (s *Service) validate(fh *multipart.FileHeader) error {
	mimeType := declaredMimeType(fh)
	if !AllowedMimeTypes[mimeType] {
		return &UnsupportedTypeError{FileName: fh.Filename, MimeType: mimeType}
	}
	if fh.Size > s.maxFileSize {
		return &FileTooLargeError{FileName: fh.Filename, Size: fh.Size, Limit: s.maxFileSize}
	}
	return nil
}

func (s *Service) rollback(accepted []Video) {
	for _, v := range accepted {
		if err := storage.RemoveStored(s.uploadsDir, v.StoredName); err != nil {
			s.log.Warn("rollback remove failed", zap.String("stored_name", v.StoredName), zap.Error(err))
		}
	}
}

// Delete removes a record and its backing file, tolerating a file that is
// already gone.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	idx := -1
	for i, v := range records {
		if v.ID == id {
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
