package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	baseLogger *logrus.Logger
	initOnce   sync.Once
)

// Init configures the process logger. Only the first call has an effect.
func Init(level, format string) *logrus.Logger {
	initOnce.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stdout)

		switch strings.ToLower(strings.TrimSpace(format)) {
		case "json":
			l.SetFormatter(&logrus.JSONFormatter{})
		default:
			l.SetFormatter(&logrus.TextFormatter{
				FullTimestamp:          true,
				TimestampFormat:        "2006-01-02T15:04:05-07:00",
				PadLevelText:           true,
				DisableLevelTruncation: true,
			})
		}

		level = strings.ToLower(strings.TrimSpace(level))
		if level == "" {
			level = "info"
		}
		parsedLevel, err := logrus.ParseLevel(level)
		if err != nil {
			parsedLevel = logrus.InfoLevel
		}
		l.SetLevel(parsedLevel)

		baseLogger = l
	})

	return baseLogger
}

// L returns the process logger, initializing it with defaults if needed.
func L() *logrus.Logger {
	return Init("", "")
}

func C(component string) *logrus.Entry {
	return L().WithField("component", component)
}
