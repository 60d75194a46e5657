package config

import (
	"github.com/leeforge/devkit/logging"
	"github.com/leeforge/devkit/validation"
)

// DevkitConfig is the full configuration of the devkit command.
type DevkitConfig struct {
	Log      logging.Config `mapstructure:"log" json:"log" yaml:"log"`
	Image    ImageConfig    `mapstructure:"image" json:"image" yaml:"image"`
	Password PasswordConfig `mapstructure:"password" json:"password" yaml:"password"`
}

// ImageConfig tunes the image codec.
type ImageConfig struct {
	// JPEGQuality is the JPEG encoder quality.
	JPEGQuality int `mapstructure:"jpeg_quality" json:"jpeg_quality" yaml:"jpeg_quality" default:"75" validate:"gte=1,lte=100"`
	// WebPLossy switches WebP output to lossy compression.
	WebPLossy bool `mapstructure:"webp_lossy" json:"webp_lossy" yaml:"webp_lossy"`
	// WebPQuality applies to lossy WebP only.
	WebPQuality float32 `mapstructure:"webp_quality" json:"webp_quality" yaml:"webp_quality" default:"80" validate:"gte=0,lte=100"`
	// BaseDir resolves relative image paths; empty means the working directory.
	BaseDir string `mapstructure:"base_dir" json:"base_dir" yaml:"base_dir"`
}

// PasswordConfig holds password generator defaults.
type PasswordConfig struct {
	Length int `mapstructure:"length" json:"length" yaml:"length" default:"16" validate:"gte=4"`
}

// Default returns the configuration used when no file or override sets a value.
func Default() *DevkitConfig {
	return &DevkitConfig{
		Log: logging.DefaultConfig(),
		Image: ImageConfig{
			JPEGQuality: 75,
			WebPQuality: 80,
		},
		Password: PasswordConfig{Length: 16},
	}
}

func (c *DevkitConfig) Validate() error {
	return validation.Struct(c)
}

// Load reads the devkit configuration for opts over Default.
func Load(opts ConfigOptions) (*DevkitConfig, error) {
	cfg := Default()
	opts.EnvKeys = append(opts.EnvKeys, KeysOf(cfg)...)

	c, err := NewConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := c.BindWithDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
