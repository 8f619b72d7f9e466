package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a new logger instance. Log lines go to stderr so that query
// results printed on stdout stay clean.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		parsedLevel = logrus.InfoLevel
	}
	log.SetLevel(parsedLevel)

	return log
}
