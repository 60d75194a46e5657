package env_mode

import (
	"os"
	"strings"
)

const ENV_MODE_KEY = "DEVKIT_ENV"

type ENV_MODE string

const (
	DevMode  ENV_MODE = "development"
	ProMode  ENV_MODE = "production"
	TestMode ENV_MODE = "test"
)

func ParseEnv(env string) ENV_MODE {
	normalizedEnv := strings.ToLower(strings.TrimSpace(env))
	switch normalizedEnv {
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// Mode reads the mode from the environment on every call; config loading
// happens once per process so there is nothing worth caching.
func Mode() ENV_MODE {
	return ParseEnv(os.Getenv(ENV_MODE_KEY))
}

func SetMode(mode ENV_MODE) {
	os.Setenv(ENV_MODE_KEY, string(mode))
}
