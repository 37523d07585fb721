// Package log is the leveled logging of the jsonapi packages over the 'github.com/neuronlabs/uni-logger'.
// Each package logs with its own ModuleLogger, which might have its own level or logger instance.
package log
