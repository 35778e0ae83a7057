package starvine

import (
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-wide leveled logger. It writes to stderr at info
// level until SetLogger or SetDebugMode changes it.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix:          "starvine",
	ReportTimestamp: true,
	Level:           log.InfoLevel,
})

// SetLogger replaces the package logger. Passing nil restores a stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.NewWithOptions(os.Stderr, log.Options{Prefix: "starvine", ReportTimestamp: true})
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *log.Logger { return logger }

// setVerbose switches the package logger between debug and info level.
func setVerbose(on bool) {
	if on {
		logger.SetLevel(log.DebugLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}
