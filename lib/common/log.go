package common

import (
	"os"

	logging "github.com/inconshreveable/log15"
)

var (
	DefaultLogLevel   logging.Lvl     = logging.LvlInfo
	DefaultLogHandler logging.Handler = logging.StreamHandler(os.Stdout, logging.TerminalFormat())
)

// SetLogging sets level and handler on the given logger.
func SetLogging(logger logging.Logger, level logging.Lvl, handler logging.Handler) {
	logger.SetHandler(logging.LvlFilterHandler(level, handler))
}

// NopLogger returns a Logger that discards everything.
func NopLogger() logging.Logger {
	return &nopLogger{}
}

type nopLogger struct{}

func (l *nopLogger) New(ctx ...interface{}) logging.Logger {
	return l
}

func (l nopLogger) GetHandler() logging.Handler {
	return nil
}

func (l nopLogger) SetHandler(logging.Handler)           {}
func (l nopLogger) Debug(msg string, ctx ...interface{}) {}
func (l nopLogger) Info(msg string, ctx ...interface{})  {}
func (l nopLogger) Warn(msg string, ctx ...interface{})  {}
func (l nopLogger) Error(msg string, ctx ...interface{}) {}
func (l nopLogger) Crit(msg string, ctx ...interface{})  {}
