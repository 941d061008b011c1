package notepub

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// NewLogger returns the console logger shared by the publisher, watcher and
// preview server. level is one of debug, info, warn, error or off.
func NewLogger(w io.Writer, level string) *log.Logger {
	l := log.New("notepub")
	l.SetOutput(w)
	l.SetHeader("${time_rfc3339} ${level}")
	l.SetLevel(parseLevel(level))
	return l
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func discardLogger() *log.Logger {
	return NewLogger(io.Discard, "off")
}
