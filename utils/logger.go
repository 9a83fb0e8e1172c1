package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLogger sets up the loggers with text output at info level.
func InitLogger() {
	ConfigureLogger("info", "text")
}

// ConfigureLogger sets up InfoLogger on stdout and ErrorLogger on stderr.
// format is "text" or "json"; an unknown level falls back to info.
func ConfigureLogger(level, format string) {
	InfoLogger = newLogger(os.Stdout, level, format)
	ErrorLogger = newLogger(os.Stderr, "error", format)
}

func newLogger(out io.Writer, level, format string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
