package images

import "gallery/internal/storage"

// Store is the metadata collection backing the gallery. The whole collection
// is read and rewritten on every mutation.
type Store interface {
	ReadAll() ([]Image, error)
	WriteAll([]Image) error
}

// Meter reports image storage usage against the fixed quota. Implementations
// recompute from the filesystem on every call.
type Meter interface {
	Limit() int64
	Available() int64
	Info() storage.Info
}
