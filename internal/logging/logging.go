// Package logging builds the structured logger shared by the server, the
// migration runner and the route view.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"bffmvp/internal/config"
)

// New returns a logrus logger writing one JSON object per line (or logfmt text
// when Format is "text"). Timestamps are emitted under "ts" in the configured location.
func New(cfg config.LogConfig, w io.Writer) (*logrus.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	level, err := logrus.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	loc, err := Location(cfg.Location)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.AddHook(locationHook{loc: loc})

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "text":
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			DisableColors:   true,
		})
	case "", "json":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
			},
		})
	default:
		return nil, fmt.Errorf("unsupported log format %q", cfg.Format)
	}

	return log, nil
}

// Location resolves an IANA zone name, defaulting to UTC.
func Location(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// Component returns an entry tagged with the emitting component, mirroring the
// {"component": ..., "event": ...} shape used across the service.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

type locationHook struct {
	loc *time.Location
}

func (h locationHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h locationHook) Fire(e *logrus.Entry) error {
	e.Time = e.Time.In(h.loc)
	return nil
}
