// Package logging builds the logrus logger shared by goldbook commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Config of the logger.
type Config struct {
	Level  string `mapstructure:"level"`  // logrus level name, default info
	Format string `mapstructure:"format"` // "text" or "json"
	File   string `mapstructure:"file"`   // also append to this file when set
}

// New returns a logger writing to out. An unknown level falls back to info.
func New(cfg Config, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		out = io.MultiWriter(out, f)
	}
	log.SetOutput(out)
	return log, nil
}
