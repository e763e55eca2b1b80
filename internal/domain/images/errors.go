package images

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	ErrNotFound   = errors.New("image not found")
	ErrNoFiles    = errors.New("no image files provided")
	ErrInvalidURL = errors.New("invalid URL format")
)

// UnsupportedTypeError names the file whose declared MIME type is outside the
// allow-list.
type UnsupportedTypeError struct {
	FileName string
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: invalid format (only JPG, PNG, and WEBP allowed)", e.FileName)
}

// FileTooLargeError names the file exceeding the per-file cap.
type FileTooLargeError struct {
	FileName string
	Size     int64
	Limit    int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: exceeds the %s per-file limit", e.FileName, humanize.IBytes(uint64(e.Limit)))
}

// QuotaExceededError reports the shortfall when a batch does not fit the
// remaining image storage quota.
type QuotaExceededError struct {
	Limit     int64
	Available int64
	Requested int64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("upload would exceed the %s storage limit: available %s, upload size %s",
		humanize.IBytes(uint64(e.Limit)),
		humanize.IBytes(uint64(max(e.Available, 0))),
		humanize.IBytes(uint64(e.Requested)))
}
