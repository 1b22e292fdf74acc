// Package log is a thin facade over logrus that stays silent unless logs.write is enabled.
package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aceplay/aceplay/filesystem"
	"github.com/aceplay/aceplay/key"
	"github.com/aceplay/aceplay/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var enabled bool

// Setup opens today's log file and configures the formatter and level.
// When logging is disabled every call in this package is a no-op.
func Setup() error {
	enabled = viper.GetBool(key.LogsWrite)
	if !enabled {
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)

	if viper.GetBool(key.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	return nil
}

// Enabled reports whether log output is being written.
func Enabled() bool {
	return enabled
}

// Fields is a set of structured key/value pairs attached to an entry.
type Fields = logrus.Fields

// Entry is a log line with fields attached. A nil Entry discards everything.
type Entry struct {
	e *logrus.Entry
}

// With returns an entry carrying fields, e.g. the selection token and stream id.
func With(fields Fields) *Entry {
	if !enabled {
		return &Entry{}
	}
	return &Entry{e: logrus.WithFields(fields)}
}

func (e *Entry) Debugf(format string, args ...any) {
	if e.e != nil {
		e.e.Debugf(format, args...)
	}
}

func (e *Entry) Infof(format string, args ...any) {
	if e.e != nil {
		e.e.Infof(format, args...)
	}
}

func (e *Entry) Warnf(format string, args ...any) {
	if e.e != nil {
		e.e.Warnf(format, args...)
	}
}

func (e *Entry) Errorf(format string, args ...any) {
	if e.e != nil {
		e.e.Errorf(format, args...)
	}
}

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debug(args ...any) {
	if enabled {
		logrus.Debug(args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}
