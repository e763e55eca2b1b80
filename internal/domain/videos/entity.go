package videos

import "time"

// Video is one stored video record. Videos are always local uploads; there is
// no external-URL variant.
type Video struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	StoredName string    `json:"storedName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
	URL        string    `json:"url"`
}
