package config

import (
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "COMMENTATOR_"

// envSetters maps environment variable suffixes to the settings they
// override.
var envSetters = map[string]func(c *Config, val string) error{
	"LOG_LEVEL": func(c *Config, val string) error {
		c.Log.Level = strings.ToLower(strings.TrimSpace(val))
		return nil
	},
	"LOG_FILE": func(c *Config, val string) error {
		c.Log.File = val
		return nil
	},
	"WINDOW": func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return invalid(EnvPrefix+"WINDOW", val, "not an integer")
		}
		c.Analyzer.Window = n
		return nil
	},
	"TAB_WIDTH": func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return invalid(EnvPrefix+"TAB_WIDTH", val, "not an integer")
		}
		c.Editor.TabWidth = n
		return nil
	},
}

// EnvVars lists the recognised environment variables.
func EnvVars() []string {
	return []string{
		EnvPrefix + "LOG_LEVEL",
		EnvPrefix + "LOG_FILE",
		EnvPrefix + "WINDOW",
		EnvPrefix + "TAB_WIDTH",
	}
}

// ApplyEnv overrides settings from environment variables found through
// lookup, normally os.LookupEnv. An empty value is treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, name := range EnvVars() {
		val, ok := lookup(name)
		if !ok {
			continue
		}
		if err := envSetters[strings.TrimPrefix(name, EnvPrefix)](c, val); err != nil {
			return err
		}
	}
	return nil
}
