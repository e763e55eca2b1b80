package images

import "time"

// Image is one gallery record: either a locally stored upload or an
// externally linked URL that consumes no local storage.
type Image struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	StoredName string    `json:"storedName,omitempty"` // empty for external images
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
	Source     string    `json:"source"`
	URL        string    `json:"url"`
	IsExternal bool      `json:"isExternal,omitempty"`
}
