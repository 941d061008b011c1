//go:build linux

package notepub

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// StatTimes returns the birth and modification times of the file at path.
// Filesystems that do not report a birth time fall back to the change time,
// then to the modification time.
func StatTimes(path string) (FileTimes, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME|unix.STATX_MTIME|unix.STATX_CTIME, &stx)
	if err != nil {
		info, serr := os.Stat(path)
		if serr != nil {
			return FileTimes{}, serr
		}
		return FileTimes{Birth: info.ModTime(), Modify: info.ModTime()}, nil
	}
	mtime := time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec))
	birth := mtime
	switch {
	case stx.Mask&unix.STATX_BTIME != 0:
		birth = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	case stx.Mask&unix.STATX_CTIME != 0:
		birth = time.Unix(stx.Ctime.Sec, int64(stx.Ctime.Nsec))
	}
	return FileTimes{Birth: birth, Modify: mtime}, nil
}
