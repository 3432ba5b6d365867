package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envOverrides lists the variables that take precedence over the YAML file.
// Unset variables leave the loaded value alone.
type envOverrides struct {
	DatabasePath string `env:"MOVIEDB_DB"`
	ImportPath   string `env:"MOVIEDB_IMPORT_FILE"`
	ExportPath   string `env:"MOVIEDB_EXPORT_FILE"`
	LogLevel     string `env:"MOVIEDB_LOG_LEVEL"`
	LogFile      string `env:"MOVIEDB_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var o envOverrides
	if err := ParseEnv(&o); err != nil {
		return err
	}

	if o.DatabasePath != "" {
		c.DatabasePath = o.DatabasePath
	}
	if o.ImportPath != "" {
		c.ImportPath = o.ImportPath
	}
	if o.ExportPath != "" {
		c.ExportPath = o.ExportPath
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
	return nil
}
