//go:build !darwin && !linux

package signals

import (
	"os"
	"time"
)

func statAccessTime(_ os.FileInfo) (time.Time, bool) {
	return time.Time{}, false
}
