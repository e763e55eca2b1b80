package storage

import (
	"math"
	"os"
	"path/filepath"
)

// Info is the storage snapshot returned by GET /api/storage and echoed on
// quota rejections.
type Info struct {
	Used           int64   `json:"used"`
	Limit          int64   `json:"limit"`
	Available      int64   `json:"available"`
	UsedPercentage float64 `json:"usedPercentage"`
}

// Accountant computes image storage usage against a fixed quota. Usage is
// recomputed from the filesystem on every call rather than cached, so it stays
// consistent with files added or removed outside the server.
type Accountant struct {
	dir   string
	limit int64
}

func NewAccountant(dir string, limit int64) *Accountant {
	return &Accountant{dir: dir, limit: limit}
}

func (a *Accountant) Limit() int64 { return a.limit }

// UsedBytes sums the sizes of regular files in the uploads directory,
// skipping the .gitkeep placeholder and subdirectories (videos live in a
// subdirectory and are not counted against the quota).
func (a *Accountant) UsedBytes() int64 {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return 0
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == ".gitkeep" {
			continue
		}
		info, err := os.Stat(filepath.Join(a.dir, entry.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		total += info.Size()
	}
	return total
}

func (a *Accountant) Available() int64 {
	return a.limit - a.UsedBytes()
}

func (a *Accountant) Info() Info {
	used := a.UsedBytes()
	pct := float64(0)
	if a.limit > 0 {
		pct = math.Round(float64(used)/float64(a.limit)*10000) / 100
	}
	return Info{
		Used:           used,
		Limit:          a.limit,
		Available:      a.limit - used,
		UsedPercentage: pct,
	}
}
