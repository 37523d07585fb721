package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/neuronlabs/jsonapi/errors"
	"github.com/neuronlabs/jsonapi/log"
)

// EnvPrefix is the prefix of the environment variables that overrides the configuration.
// i.e. JSONAPI_OPTIONS_DEFAULT_PAGE_SIZE=20
const EnvPrefix = "JSONAPI"

// ReadNamedConfig reads the config with the provided 'name' looking in the provided 'paths'.
// If no paths are provided the config is searched in the working directory and the 'configs' directory.
func ReadNamedConfig(name string, paths ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName(name)
	if len(paths) == 0 {
		paths = []string{".", "configs"}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	return read(v)
}

// ReadConfigFile reads the config from the provided file 'path'.
func ReadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return read(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapDetf(ErrReadConfig, "reading config failed: %v", err)
	}
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling Config failed. %v", err)
		return nil, errors.WrapDetf(ErrReadConfig, "unmarshaling config failed: %v", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
