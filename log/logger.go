package log

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/neuronlabs/uni-logger"

	"github.com/neuronlabs/jsonapi/errors"
)

// Levels of the logged messages.
const (
	LDEBUG3   = unilogger.DEBUG3
	LDEBUG2   = unilogger.DEBUG2
	LDEBUG    = unilogger.DEBUG
	LINFO     = unilogger.INFO
	LWARNING  = unilogger.WARNING
	LERROR    = unilogger.ERROR
	LCRITICAL = unilogger.CRITICAL
	// LUNKNOWN is the unspecified logger level.
	LUNKNOWN = unilogger.UNKNOWN
)

var (
	// ErrLogger is the error classification for the logger.
	ErrLogger = errors.New("logger")
	// ErrUnknownLevel is the error classification for the unknown logger level.
	ErrUnknownLevel = errors.Wrap(ErrLogger, "unknown level")
)

// std is the logger shared by the modules without their own logger.
var std = struct {
	sync.RWMutex
	logger unilogger.LeveledLogger
	level  unilogger.Level
}{level: LINFO}

// Default sets the unilogger.BasicLogger writing to the 'os.Stderr'.
func Default() {
	New(os.Stderr, "", log.Ldate|log.Ltime|log.Lshortfile)
}

// New sets the unilogger.BasicLogger that writes to the 'out' with the 'prefix' and 'flags'.
func New(out io.Writer, prefix string, flags int) {
	basic := unilogger.NewBasicLogger(out, prefix, flags)
	// reports the caller of the ModuleLogger methods.
	basic.SetOutputDepth(6)
	SetLogger(basic)
}

// SetLogger sets the shared logger. The logger level is set to the current level if possible.
func SetLogger(logger unilogger.LeveledLogger) {
	std.Lock()
	defer std.Unlock()
	std.logger = logger
	if setter, ok := logger.(unilogger.LevelSetter); ok {
		setter.SetLevel(std.level)
	}
}

// Logger returns the shared logger.
func Logger() unilogger.LeveledLogger {
	std.RLock()
	defer std.RUnlock()
	return std.logger
}

// CurrentLevel returns the shared logger level.
func CurrentLevel() unilogger.Level {
	std.RLock()
	defer std.RUnlock()
	return std.level
}

// ParseLevel parses the logger level from the string value.
func ParseLevel(level string) unilogger.Level {
	return unilogger.ParseLevel(level)
}

// SetLevel sets the shared logger level. The module loggers without their own level follow it.
func SetLevel(level unilogger.Level) error {
	if level == LUNKNOWN {
		return errors.WrapDet(ErrUnknownLevel, "can't set unknown logger level")
	}
	std.Lock()
	defer std.Unlock()
	std.level = level
	if setter, ok := std.logger.(unilogger.LevelSetter); ok {
		setter.SetLevel(level)
	}
	return nil
}

// Debugf writes the formatted debug message with the shared logger.
func Debugf(format string, args ...interface{}) {
	write(Logger(), LDEBUG, format, args...)
}

// write dispatches the message of the 'level' to the matching 'logger' method.
func write(logger unilogger.LeveledLogger, level unilogger.Level, format string, args ...interface{}) {
	if logger == nil {
		return
	}
	switch level {
	case LDEBUG3, LDEBUG2:
		if debug, ok := logger.(unilogger.DebugLeveledLogger); ok {
			if level == LDEBUG3 {
				debug.Debug3f(format, args...)
			} else {
				debug.Debug2f(format, args...)
			}
			return
		}
		logger.Debugf(format, args...)
	case LDEBUG:
		logger.Debugf(format, args...)
	case LINFO:
		logger.Infof(format, args...)
	case LWARNING:
		logger.Warningf(format, args...)
	default:
		logger.Errorf(format, args...)
	}
}
