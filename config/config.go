// Package config contains the configurations for the jsonapi packages.
// The configurations are read by the 'github.com/spf13/viper' and validated with
// the 'gopkg.in/go-playground/validator.v9' struct tags.
package config

import (
	"github.com/neuronlabs/jsonapi/errors"
)

var (
	// ErrConfig is the error classification for the configuration.
	ErrConfig = errors.New("config")
	// ErrInvalidConfig is the error classification for the configuration that doesn't pass the validation.
	ErrInvalidConfig = errors.Wrap(ErrConfig, "invalid")
	// ErrReadConfig is the error classification for the configuration that couldn't be read.
	ErrReadConfig = errors.Wrap(ErrConfig, "read")
)

// Config contains general configurations for the jsonapi service.
type Config struct {
	// Options are the resource graph and query options.
	Options *Options `mapstructure:"options" validate:"required"`
	// Server is the http server configuration.
	Server *Server `mapstructure:"server" validate:"required"`
	// LogLevel is the current logging level.
	LogLevel string `mapstructure:"log_level" validate:"isdefault|oneof=debug3 debug2 debug info warning error critical"`
}

// Server is the configuration for the http server.
type Server struct {
	// Address is the listen address of the server i.e. ':8080'.
	Address string `mapstructure:"address" validate:"required"`
	// ReadTimeout is the server read timeout in seconds.
	ReadTimeout int `mapstructure:"read_timeout" validate:"gte=0"`
	// WriteTimeout is the server write timeout in seconds.
	WriteTimeout int `mapstructure:"write_timeout" validate:"gte=0"`
}

// Validate validates the config.
func (c *Config) Validate() error {
	return validateStruct(c)
}
