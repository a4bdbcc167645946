//go:build !linux

package locator

import (
	"io/fs"
	"time"
)

func createdAt(fi fs.FileInfo) time.Time {
	return modTime(fi)
}
