package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/grammar"
	"github.com/dshills/commentator/internal/logging"
)

// Default values.
const (
	DefaultLogLevel = "info"
	DefaultTabWidth = 4
	MaxTabWidth     = 16
)

// Config holds all commentator settings.
type Config struct {
	Log      LogConfig         `toml:"log"`
	Analyzer AnalyzerConfig    `toml:"analyzer"`
	Editor   EditorConfig      `toml:"editor"`
	Grammars GrammarSources    `toml:"grammars"`
	Grammar  []grammar.Grammar `toml:"grammar"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// AnalyzerConfig configures context analysis.
type AnalyzerConfig struct {
	// Window is how many lines above a cursor are searched for an open
	// block comment.
	Window int `toml:"window"`
}

// EditorConfig configures the terminal editor.
type EditorConfig struct {
	TabWidth int `toml:"tab_width"`
}

// GrammarSources lists external grammar definitions.
type GrammarSources struct {
	// Files are YAML grammar packs.
	Files []string `toml:"files"`
	// Scripts are Lua grammar scripts.
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: DefaultLogLevel},
		Analyzer: AnalyzerConfig{Window: analyzer.DefaultWindow},
		Editor:   EditorConfig{TabWidth: DefaultTabWidth},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "commentator", "config.toml")
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := cfg.parse(path, data); err != nil {
		return nil, err
	}
	cfg.Path = path
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// LoadWithEnv loads path, applies environment overrides and validates.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parse decodes TOML data into c. Unknown keys are rejected.
func (c *Config) parse(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = serr.String()
		}
		return perr
	}
	return nil
}

// resolvePaths makes relative grammar source paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Grammars.Files {
		c.Grammars.Files[i] = resolve(dir, p)
	}
	for i, p := range c.Grammars.Scripts {
		c.Grammars.Scripts[i] = resolve(dir, p)
	}
	if c.Log.File != "" {
		c.Log.File = resolve(dir, c.Log.File)
	}
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level, err.Error())
	}
	if c.Analyzer.Window <= 0 {
		return invalid("analyzer.window", c.Analyzer.Window, "must be positive")
	}
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > MaxTabWidth {
		return invalid("editor.tab_width", c.Editor.TabWidth, fmt.Sprintf("must be between 1 and %d", MaxTabWidth))
	}
	for i, g := range c.Grammar {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%w: grammar[%d]: %w", ErrValidationFailed, i, err)
		}
	}
	return nil
}

// LogLevel returns the parsed log level, or Info if it is invalid.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// WatchPaths returns the files whose changes should trigger a reload.
func (c *Config) WatchPaths() []string {
	var paths []string
	if c.Path != "" {
		paths = append(paths, c.Path)
	}
	paths = append(paths, c.Grammars.Files...)
	paths = append(paths, c.Grammars.Scripts...)
	return paths
}
