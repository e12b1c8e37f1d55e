package experiment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables which override
// configuration values. Nested keys are joined by underscores, for
// example ROCKETLANDER_ENV_PHYSICS_GRAVITY.
const EnvPrefix = "ROCKETLANDER"

// ConfigFileEnv names the environment variable holding the path of the
// JSON configuration file read by the rocketlander command
const ConfigFileEnv = EnvPrefix + "_CONFIG"

// LoadConfig loads an experiment Config. Values are read, in order of
// increasing precedence, from DefaultConfig, the JSON file at path, and
// environment variables. If path is empty, no file is read.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("json")

	defaults, err := json.Marshal(DefaultConfig())
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read "+
			"defaults: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("loadConfig: could not read %v: %w",
				path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}
	return c, nil
}
