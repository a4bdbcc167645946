//go:build linux

package locator

import (
	"io/fs"
	"syscall"
	"time"
)

// createdAt uses the inode change time, the closest Linux has to a creation time.
func createdAt(fi fs.FileInfo) time.Time {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return modTime(fi)
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
