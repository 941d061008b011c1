//go:build darwin

package notepub

import (
	"os"
	"syscall"
	"time"
)

// StatTimes returns the birth and modification times of the file at path.
func StatTimes(path string) (FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	ft := FileTimes{Birth: info.ModTime(), Modify: info.ModTime()}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		ft.Birth = time.Unix(st.Birthtimespec.Unix())
	}
	return ft, nil
}
