// Package config handles loading and parsing of navsh configuration files.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/navsh/internal/derrors"
	"github.com/NikitaCOEUR/navsh/internal/prompt"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed defaults.yml
var defaultsYAML []byte

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// Stderr modes for delegated commands
const (
	StderrInherit = "inherit"
	StderrDiscard = "discard"
)

// PromptConfig configures the prompt line
type PromptConfig struct {
	Template    string `koanf:"template"`
	PathColor   string `koanf:"path_color"`
	ViaColor    string `koanf:"via_color"`
	Symbol      string `koanf:"symbol"`
	SymbolColor string `koanf:"symbol_color"`
}

// Options converts the section into prompt renderer options
func (p PromptConfig) Options() prompt.Options {
	return prompt.Options{
		Template:    p.Template,
		PathColor:   p.PathColor,
		ViaColor:    p.ViaColor,
		Symbol:      p.Symbol,
		SymbolColor: p.SymbolColor,
	}
}

// ShellConfig configures delegated command execution
type ShellConfig struct {
	Stderr string `koanf:"stderr"`
}

// Config represents a navsh configuration
type Config struct {
	LogLevel string       `koanf:"log_level"`
	Prompt   PromptConfig `koanf:"prompt"`
	Shell    ShellConfig  `koanf:"shell"`

	// Path is the user file that was layered on top of the defaults, if any
	Path string `koanf:"-"`
}

// Defaults returns the built-in configuration
func Defaults() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}
	return unmarshal(k)
}

// Load reads the defaults and layers the file at path on top of them.
// An empty path returns the defaults. The file is schema-validated first.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path == "" {
		return unmarshal(k)
	}

	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "unsupported config file", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read config", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to validate config", err)
	}
	if !result.Valid {
		first := result.Errors[0]
		return nil, derrors.NewConfigurationError(path, "invalid config",
			derrors.NewValidationError(first.Field, first.Message, nil))
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	cfg, err := unmarshal(k)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	cfg.Path = path
	return cfg, nil
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// parserFor picks the koanf parser matching the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// GetConfigDir returns the navsh configuration directory
func GetConfigDir() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "navsh"), nil
}

// FindConfigFile returns the first supported config file in the config
// directory, or "" when there is none.
func FindConfigFile() string {
	dir, err := GetConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
