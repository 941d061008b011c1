//go:build !linux && !darwin

package notepub

import "os"

// StatTimes returns the modification time of the file at path for both
// fields; this platform exposes no portable birth time.
func StatTimes(path string) (FileTimes, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	return FileTimes{Birth: info.ModTime(), Modify: info.ModTime()}, nil
}
