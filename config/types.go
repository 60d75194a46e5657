package config

import (
	"github.com/spf13/viper"
)

type Validator interface {
	Validate() error
}

type ConfigInterface interface {
	Bind(instance any) error
	BindWithDefaults(instance any) error
	Get(key string) any
	Files() []string
}

type Config struct {
	instance *viper.Viper
	opts     ConfigOptions
	files    []string
}

type ConfigOptions struct {
	// BasePath is searched for FileName and its local and env-mode variants.
	BasePath string
	FileName string
	FileType string
	// ConfigFile, when set, is loaded on its own instead of searching BasePath.
	// Unlike searched files it must exist.
	ConfigFile string
	EnvPrefix  string
	// EnvKeys are keys that environment variables may set even when no
	// config file mentions them.
	EnvKeys []string
}
