package config

import (
	"errors"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrInvalidLogLevel = errors.New("Possible values for --log-level are debug, info, warning, error, and critical.")

var logLevels = map[string]log.Level{
	"debug":    log.DebugLevel,
	"info":     log.InfoLevel,
	"warning":  log.WarnLevel,
	"error":    log.ErrorLevel,
	"critical": log.FatalLevel,
}

func ParseLogLevel(level string) (log.Level, error) {
	l, ok := logLevels[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return log.InfoLevel, ErrInvalidLogLevel
	}
	return l, nil
}

// SetupLogger configures the standard logger for command line use.
func SetupLogger(level string, out io.Writer) error {
	l, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	log.SetOutput(out)
	log.SetLevel(l)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return nil
}
