package log

import (
	"sync"

	"github.com/neuronlabs/uni-logger"
)

// ModuleLogger is the logger of a single package. Its messages are prefixed with the module name.
// Unless set otherwise, it writes with the shared logger at the shared level.
type ModuleLogger struct {
	Name string

	lock   sync.RWMutex
	logger unilogger.LeveledLogger
	level  unilogger.Level
}

type levelGetter interface {
	GetLevel() unilogger.Level
}

// NewModuleLogger creates new module logger for given 'name' of the module and an optional 'logger'.
// A logger that doesn't expose its level filters the messages by itself.
func NewModuleLogger(name string, moduleLogger ...unilogger.LeveledLogger) *ModuleLogger {
	m := &ModuleLogger{Name: name, level: LUNKNOWN}
	if len(moduleLogger) > 0 && moduleLogger[0] != nil {
		m.logger = moduleLogger[0]
		m.level = LDEBUG3
		if getter, ok := m.logger.(levelGetter); ok {
			m.level = getter.GetLevel()
		}
	}
	return m
}

// Level gets the module logger level.
func (m *ModuleLogger) Level() unilogger.Level {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if m.level == LUNKNOWN {
		return CurrentLevel()
	}
	return m.level
}

// IsLevelEnabled checks if the module logs messages at given 'level'.
func (m *ModuleLogger) IsLevelEnabled(level unilogger.Level) bool {
	return m.Level() <= level
}

// SetLevel sets the module logger level. The LUNKNOWN level restores the shared level.
func (m *ModuleLogger) SetLevel(level unilogger.Level) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.level = level
	if setter, ok := m.logger.(unilogger.LevelSetter); ok && level != LUNKNOWN {
		setter.SetLevel(level)
	}
}

// Debug3f writes the formatted debug3 log.
func (m *ModuleLogger) Debug3f(format string, args ...interface{}) {
	m.logf(LDEBUG3, format, args...)
}

// Debug2f writes the formatted debug2 log.
func (m *ModuleLogger) Debug2f(format string, args ...interface{}) {
	m.logf(LDEBUG2, format, args...)
}

// Debugf writes the formatted debug log.
func (m *ModuleLogger) Debugf(format string, args ...interface{}) {
	m.logf(LDEBUG, format, args...)
}

// Infof writes the formatted info log.
func (m *ModuleLogger) Infof(format string, args ...interface{}) {
	m.logf(LINFO, format, args...)
}

// Warningf writes the formatted warning log.
func (m *ModuleLogger) Warningf(format string, args ...interface{}) {
	m.logf(LWARNING, format, args...)
}

// Errorf writes the formatted error log.
func (m *ModuleLogger) Errorf(format string, args ...interface{}) {
	m.logf(LERROR, format, args...)
}

func (m *ModuleLogger) logf(level unilogger.Level, format string, args ...interface{}) {
	if !m.IsLevelEnabled(level) {
		return
	}
	m.lock.RLock()
	logger := m.logger
	m.lock.RUnlock()
	if logger == nil {
		logger = Logger()
	}
	write(logger, level, "["+m.Name+"] "+format, args...)
}
