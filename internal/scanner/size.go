package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
)

// DirSize returns the total size in bytes of all regular files under path.
// Unreadable entries are skipped; a missing path reports 0.
func DirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// fileSize returns the size of a single file, or 0 when it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
