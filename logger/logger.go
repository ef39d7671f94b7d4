package logger

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type Fields logrus.Fields

var log = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
		ForceColors:      true,
		TimestampFormat:  time.TimeOnly,
		DisableColors:    false},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.WarnLevel,
}

func SetLevel(level logrus.Level) {
	log.SetLevel(level)
}

// SetVerbosity maps the count of -v flags to a log level.
func SetVerbosity(count int) {
	switch {
	case count > 3:
		SetLevel(logrus.TraceLevel)
	case count > 2:
		SetLevel(logrus.DebugLevel)
	case count > 1:
		SetLevel(logrus.InfoLevel)
	}
}

func SetOutput(out io.Writer) {
	log.SetOutput(out)
}

func Log() *logrus.Logger {
	return log
}

func Error(args ...interface{}) {
	log.Error(args...)
}

func Warn(args ...interface{}) {
	log.Warn(args...)
}

func Info(args ...interface{}) {
	log.Info(args...)
}

func Debug(args ...interface{}) {
	log.Debug(args...)
}

func Trace(args ...interface{}) {
	log.Trace(args...)
}

func Fatal(args ...interface{}) {
	log.Fatal(args...)
}

func Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

func WithFields(fields Fields) *logrus.Entry {
	return log.WithFields(logrus.Fields(fields))
}

func WithError(err error) *logrus.Entry {
	return log.WithError(err)
}

// ForDevice returns the entry used by everything that acts on behalf of one keypad.
func ForDevice(serial string) *logrus.Entry {
	return log.WithField("device", serial)
}

func IsInfo() bool {
	return log.Level == logrus.InfoLevel || IsDebug()
}

func IsDebug() bool {
	return log.Level == logrus.DebugLevel || IsTrace()
}

func IsTrace() bool {
	return log.Level == logrus.TraceLevel
}
