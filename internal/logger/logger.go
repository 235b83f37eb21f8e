package logger

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the application-wide leveled logger.
var Logger = New("INFO")

// New builds a logger for the given level name (DEBUG, INFO, WARN, ERROR, OFF).
func New(level string) *log.Logger {
	l := log.New("taskflow")
	l.SetLevel(ParseLevel(level))
	l.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")
	return l
}

// SetLevel changes the level of the shared logger.
func SetLevel(level string) {
	Logger.SetLevel(ParseLevel(level))
}

func ParseLevel(level string) log.Lvl {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return log.DEBUG
	case "WARN", "WARNING":
		return log.WARN
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.INFO
	}
}
