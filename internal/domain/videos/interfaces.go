package videos

// Store is the video metadata collection. Same whole-file rewrite semantics
// as the image store.
type Store interface {
	ReadAll() ([]Video, error)
	WriteAll([]Video) error
}
