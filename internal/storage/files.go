package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveFile streams one multipart file to dir under a fresh unique name and
// returns that name with the number of bytes written. Original names never
// touch the filesystem, so colliding client names cannot overwrite each other.
func SaveFile(fh *multipart.FileHeader, dir string) (string, int64, error) {
	src, err := fh.Open()
	if err != nil {
		return "", 0, fmt.Errorf("open uploaded file %q: %w", fh.Filename, err)
	}
	defer src.Close()

	storedName := uuid.New().String() + filepath.Ext(fh.Filename)
	path := filepath.Join(dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create %q: %w", path, err)
	}

	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write %q: %w", path, err)
	}
	return storedName, written, nil
}

// RemoveStored deletes a stored file, tolerating one that is already gone.
func RemoveStored(dir, storedName string) error {
	err := os.Remove(filepath.Join(dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
