// Package selection models the client-side upload basket: files picked (or
// dropped) across multiple selection events accumulate here, validated with
// the same rules the server enforces, until they are submitted as one
// multipart batch. The server stays authoritative; everything here is a
// first line of defense and a UX aid.
package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/dustin/go-humanize"

	"gallery/internal/storage"
)

const (
	DefaultMaxFileSize = 10 << 20 // per-file cap, mirrors the server
	uploadPath         = "/api/upload"
	fieldName          = "images"
)

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// File is one pending image, held in memory like a picked browser file.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Rejection explains why a candidate was not added to the selection.
type Rejection struct {
	Name   string
	Reason string
}

// UploadResult is the server's reply to a submitted batch.
type UploadResult struct {
	Success     bool            `json:"success"`
	Count       int             `json:"count"`
	Images      json.RawMessage `json:"images"`
	Error       string          `json:"error"`
	StorageInfo *storage.Info   `json:"storageInfo"`
}

// Selection is the accumulating pending-file state. Not safe for concurrent
// use; a selection belongs to one view.
type Selection struct {
	files       []File
	maxFileSize int64
	info        storage.Info
	hasInfo     bool
}

func New() *Selection {
	return &Selection{maxFileSize: DefaultMaxFileSize}
}

// Add validates each candidate against the image rules and appends the valid
// ones, returning a rejection per invalid file. One bad pick never blocks its
// siblings.
func (s *Selection) Add(candidates ...File) []Rejection {
	var rejections []Rejection
	for _, f := range candidates {
		switch {
		case !allowedMimeTypes[f.MimeType]:
			rejections = append(rejections, Rejection{
				Name:   f.Name,
				Reason: "invalid format (only JPG, PNG, WEBP allowed)",
			})
		case int64(len(f.Data)) > s.maxFileSize:
			rejections = append(rejections, Rejection{
				Name:   f.Name,
				Reason: fmt.Sprintf("exceeds the %s limit", humanize.IBytes(uint64(s.maxFileSize))),
			})
		default:
			s.files = append(s.files, f)
		}
	}
	return rejections
}

// RemoveAt drops one pending file by position.
func (s *Selection) RemoveAt(i int) error {
	if i < 0 || i >= len(s.files) {
		return fmt.Errorf("no pending file at position %d", i)
	}
	s.files = append(s.files[:i], s.files[i+1:]...)
	return nil
}

func (s *Selection) Clear() {
	s.files = nil
}

func (s *Selection) Count() int {
	return len(s.files)
}

func (s *Selection) Files() []File {
	out := make([]File, len(s.files))
	copy(out, s.files)
	return out
}

func (s *Selection) TotalSize() int64 {
	var total int64
	for _, f := range s.files {
		total += int64(len(f.Data))
	}
	return total
}

// SetStorageInfo records the last-known quota snapshot for advisory checks.
func (s *Selection) SetStorageInfo(info storage.Info) {
	s.info = info
	s.hasInfo = true
}

// ExceedsAvailable reports whether the pending total is over the last-known
// available storage. Advisory only; without a snapshot it reports false.
func (s *Selection) ExceedsAvailable() bool {
	return s.hasInfo && s.TotalSize() > s.info.Available
}

// Summary is the preview line: "3 files selected (1.2 MB)".
func (s *Selection) Summary() string {
	plural := "s"
	if len(s.files) == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d file%s selected (%s)", len(s.files), plural, humanize.IBytes(uint64(s.TotalSize())))
}

// WriteMultipart serializes the pending list as one multipart batch and
// returns the content type for the request header.
func (s *Selection) WriteMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, f := range s.files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, f.Name))
		header.Set("Content-Type", f.MimeType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return "", err
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

// Submit posts the pending batch to the server. The pending list is cleared
// only when the server accepts the batch; on any failure the selection stays
// intact for retry. A storage snapshot in the reply refreshes the advisory
// quota either way.
func (s *Selection) Submit(ctx context.Context, client *http.Client, baseURL string) (*UploadResult, error) {
	if len(s.files) == 0 {
		return nil, fmt.Errorf("nothing selected")
	}
	if client == nil {
		client = http.DefaultClient
	}

	var body bytes.Buffer
	contentType, err := s.WriteMultipart(&body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+uploadPath, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}

	if result.StorageInfo != nil {
		s.SetStorageInfo(*result.StorageInfo)
	}
	if result.Success {
		s.Clear()
	}
	return &result, nil
}
