package videos

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	ErrNotFound = errors.New("video not found")
	ErrNoFiles  = errors.New("no video files provided")
)

type UnsupportedTypeError struct {
	FileName string
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: invalid format (only MP4, WebM, and OGG allowed)", e.FileName)
}

type FileTooLargeError struct {
	FileName string
	Size     int64
	Limit    int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: exceeds the %s per-file limit", e.FileName, humanize.IBytes(uint64(e.Limit)))
}
