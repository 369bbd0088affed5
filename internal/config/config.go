package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	pmerrors "github.com/carlosnayan/protomodel/internal/errors"
)

// Config is the full protomodel configuration (protomodel.conf).
type Config struct {
	Schema    string           `toml:"schema"`              // Path to the .proto schema
	Generator *GeneratorConfig `toml:"generator,omitempty"` // Code generation settings
	Protoc    *ProtocConfig    `toml:"protoc,omitempty"`    // External wire compiler settings
	Log       []string         `toml:"log,omitempty"`       // Log levels: debug, info, warn, error
}

// GeneratorConfig configures code generation output.
type GeneratorConfig struct {
	Output  string `toml:"output"`            // Output directory for the model package
	Package string `toml:"package,omitempty"` // Generated package name (default "models")
	Tests   string `toml:"tests,omitempty"`   // Output directory for the round-trip test module
}

// ProtocConfig configures the protoc invocation.
type ProtocConfig struct {
	Path string `toml:"path,omitempty"` // protoc binary (default: looked up on PATH)
}

// Load reads the configuration from protomodel.conf, searching upward from
// the working directory when configPath is empty. A .env file found along
// the same walk is loaded first so env("VAR") references expand.
func Load(configPath string) (*Config, error) {
	loadDotenv()

	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		dir := wd
		for {
			configPath = filepath.Join(dir, "protomodel.conf")
			if _, err := os.Stat(configPath); err == nil {
				break
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				return nil, pmerrors.Wrapf(pmerrors.ErrConfig, "protomodel.conf not found")
			}
			dir = parent
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, pmerrors.Wrap(pmerrors.ErrConfig, err)
	}

	var config Config
	if _, err := toml.Decode(string(data), &config); err != nil {
		return nil, pmerrors.Wrap(pmerrors.ErrConfig, err)
	}

	config.expandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// loadDotenv loads the nearest .env, walking up from the working directory.
func loadDotenv() {
	wd, err := os.Getwd()
	if err != nil {
		_ = godotenv.Load()
		return
	}

	dir := wd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			_ = godotenv.Load()
			return
		}
		dir = parent
	}
}

// expandEnvVars expands ${VAR}, $VAR and env("VAR") in path-valued fields.
func (c *Config) expandEnvVars() {
	c.Schema = expandString(c.Schema)
	if c.Generator != nil {
		c.Generator.Output = expandString(c.Generator.Output)
		c.Generator.Tests = expandString(c.Generator.Tests)
	}
	if c.Protoc != nil {
		c.Protoc.Path = expandString(c.Protoc.Path)
	}
}

// expandString expands environment variables in a string.
// Supports ${VAR}, $VAR, env("VAR") and env('VAR').
func expandString(s string) string {
	for {
		var start int
		var endQuote string

		if idx := strings.Index(s, `env("`); idx != -1 {
			start = idx
			endQuote = `")`
		} else if idx := strings.Index(s, `env('`); idx != -1 {
			start = idx
			endQuote = `')`
		} else {
			break
		}

		end := strings.Index(s[start+5:], endQuote)
		if end == -1 {
			break
		}
		end += start + 5

		varName := s[start+5 : end]
		value := os.Getenv(varName)
		s = s[:start] + value + s[end+2:]
	}

	return os.ExpandEnv(s)
}

// Validate applies defaults and rejects incomplete configuration.
func (c *Config) Validate() error {
	if c.Schema == "" {
		return pmerrors.Wrapf(pmerrors.ErrConfig, "schema is required")
	}

	if c.Generator == nil {
		c.Generator = &GeneratorConfig{}
	}
	if c.Generator.Output == "" {
		c.Generator.Output = "gen/models"
	}
	if c.Generator.Package == "" {
		c.Generator.Package = "models"
	}
	if c.Generator.Tests == "" {
		// The round-trip tests are an external test package of the model
		// package, so they default to the same directory.
		c.Generator.Tests = c.Generator.Output
	}

	if c.Protoc == nil {
		c.Protoc = &ProtocConfig{}
	}
	if c.Protoc.Path == "" {
		c.Protoc.Path = "protoc"
	}

	return nil
}

// GetSchemaPath returns the configured schema path.
func (c *Config) GetSchemaPath() string {
	return c.Schema
}
