package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/leeforge/devkit/env_mode"
	"github.com/leeforge/devkit/utils"
	"github.com/spf13/viper"
)

func DefaultConfigOptions() ConfigOptions {
	basePath := os.Getenv("CONFIG_PATH")
	if basePath == "" {
		basePath = "."
	}

	return ConfigOptions{
		BasePath:  basePath,
		FileName:  "devkit",
		FileType:  "yaml",
		EnvPrefix: "DEVKIT",
	}
}

func NewConfig(optsArr ...ConfigOptions) (*Config, error) {
	var opts ConfigOptions
	if len(optsArr) == 0 {
		opts = DefaultConfigOptions()
	} else {
		opts = optsArr[0]
	}
	if opts.FileType == "" {
		opts.FileType = "yaml"
	}

	instance, files, err := CreateConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Config{
		instance: instance,
		opts:     opts,
		files:    files,
	}, nil
}

// Bind decodes the merged configuration over instance. Fields with no
// configured value keep what instance already holds.
func (c *Config) Bind(instance any) error {
	if c == nil || c.instance == nil {
		return fmt.Errorf("config instance is nil")
	}

	if instance == nil {
		return fmt.Errorf("target instance is nil")
	}

	if err := c.instance.Unmarshal(instance); err != nil {
		return fmt.Errorf("failed to unmarshal config (files: %s): %w", strings.Join(c.files, ", "), err)
	}

	if v, ok := instance.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

func (c *Config) BindWithDefaults(instance any) error {
	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("failed to set defaults: %w", err)
	}

	if err := c.Bind(instance); err != nil {
		return err
	}

	if err := defaults.Set(instance); err != nil {
		return fmt.Errorf("failed to set defaults after unmarshal: %w", err)
	}

	return nil
}

func (c *Config) Get(key string) any {
	return c.instance.Get(key)
}

// Files lists the config files that were merged, in load order.
func (c *Config) Files() []string {
	return c.files
}

// CreateConfig merges every config file found for opts, later files winning,
// then applies environment overrides. Finding no file is not an error.
func CreateConfig(opts ConfigOptions) (*viper.Viper, []string, error) {
	var configPaths []string
	if opts.ConfigFile != "" {
		isDir, exists, err := utils.Exists(opts.ConfigFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to stat config file %s: %w", opts.ConfigFile, err)
		}
		if !exists || isDir {
			return nil, nil, fmt.Errorf("config file %s not found", opts.ConfigFile)
		}
		configPaths = []string{opts.ConfigFile}
	} else {
		configPaths = getConfigFilePaths(opts)
	}

	v := viper.New()
	v.SetConfigType(opts.FileType)

	for _, configPath := range configPaths {
		tempV := viper.New()
		tempV.SetConfigFile(configPath)
		if err := tempV.ReadInConfig(); err != nil {
			return nil, nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}

		for _, key := range tempV.AllKeys() {
			v.Set(key, tempV.Get(key))
		}
	}

	// Override with environment variables (higher priority than config files)
	applyEnvOverrides(v, opts.EnvPrefix, opts.EnvKeys)

	return v, configPaths, nil
}

// applyEnvOverrides sets every known key for which an environment variable
// exists: image.jpeg_quality -> DEVKIT_IMAGE_JPEG_QUALITY.
func applyEnvOverrides(v *viper.Viper, envPrefix string, extraKeys []string) {
	keys := append(v.AllKeys(), extraKeys...)
	for _, key := range keys {
		if envValue, ok := os.LookupEnv(EnvName(envPrefix, key)); ok && envValue != "" {
			v.Set(key, envValue)
		}
	}
}

// EnvName returns the environment variable consulted for key.
func EnvName(envPrefix, key string) string {
	envKey := strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
	if envPrefix != "" {
		envKey = envPrefix + "_" + envKey
	}
	return envKey
}

// KeysOf lists the dotted mapstructure keys of a struct type's leaf fields.
func KeysOf(v any) []string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return collectKeys(t, "")
}

func collectKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		if field.Type.Kind() == reflect.Struct {
			keys = append(keys, collectKeys(field.Type, key)...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func getConfigFilePaths(opts ConfigOptions) (configFiles []string) {
	env := env_mode.Mode()
	fileNames := []string{
		opts.FileName,
		fmt.Sprintf("%s.local", opts.FileName),
		fmt.Sprintf("%s.%s", opts.FileName, env),
		fmt.Sprintf("%s.%s.local", opts.FileName, env),
	}

	switch env {
	case env_mode.DevMode:
		fileNames = append(fileNames, fmt.Sprintf("%s.dev", opts.FileName))
		fileNames = append(fileNames, fmt.Sprintf("%s.dev.local", opts.FileName))
	case env_mode.ProMode:
		fileNames = append(fileNames, fmt.Sprintf("%s.prod", opts.FileName))
		fileNames = append(fileNames, fmt.Sprintf("%s.prod.local", opts.FileName))
	}

	for _, fileName := range fileNames {
		file := filepath.Join(opts.BasePath, fmt.Sprintf("%s.%s", fileName, opts.FileType))
		if isDir, exists, _ := utils.Exists(file); exists && !isDir {
			configFiles = append(configFiles, file)
		}
	}

	return configFiles
}
