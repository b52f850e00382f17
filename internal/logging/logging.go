// Package logging sets up the statement log. Stdout is reserved for result
// tables, so entries go to a file.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/evan-wu/phoenix-jdbc-shell/internal/config"
	"github.com/sirupsen/logrus"
)

// New returns a logger writing to cfg.File. An empty file name discards all
// entries. The returned closer releases the file.
func New(cfg config.Log) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Level); err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
