// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package config loads the i18ntidy run configuration from defaults, a YAML
// file, a .env file and environment variables, in that order.
package config

import (
	"fmt"
	"os"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
)

const (
	configFileEnvVar      = "I18NTIDY_CONFIGFILE"
	defaultConfigFilePath = "./i18ntidy.yaml"
	fallbackConfigPath    = "./i18ntidy.yml"
)

// Config holds the run configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Sources struct {
		Cwd       string   `env:"I18NTIDY_CWD,overwrite" yaml:"cwd"`
		Templates []string `env:"I18NTIDY_TEMPLATES,overwrite" yaml:"templates"`
		Scripts   []string `env:"I18NTIDY_SCRIPTS,overwrite" yaml:"scripts"`

		Interpolation struct {
			StartDelimiter string `env:"I18NTIDY_START_DELIMITER,overwrite" yaml:"startDelimiter"`
			EndDelimiter   string `env:"I18NTIDY_END_DELIMITER,overwrite" yaml:"endDelimiter"`
		} `yaml:"interpolation"`
	} `yaml:"sources"`

	Catalog struct {
		Languages       []string `env:"I18NTIDY_LANGUAGES,overwrite" yaml:"languages"`
		DefaultLanguage string   `env:"I18NTIDY_DEFAULT_LANGUAGE,overwrite" yaml:"defaultLanguage"`
		// Existing catalog files; "*" is replaced by each language code.
		Existing []string `env:"I18NTIDY_EXISTING,overwrite" yaml:"existing"`

		NullEmpty       bool `env:"I18NTIDY_NULL_EMPTY,overwrite" yaml:"nullEmpty"`
		Namespace       bool `env:"I18NTIDY_NAMESPACE,overwrite" yaml:"namespace"`
		SafeMode        bool `env:"I18NTIDY_SAFE_MODE,overwrite" yaml:"safeMode"`
		KeyAsText       bool `env:"I18NTIDY_KEY_AS_TEXT,overwrite" yaml:"keyAsText"`
		RefreshDefaults bool `env:"I18NTIDY_REFRESH_DEFAULTS,overwrite" yaml:"refreshDefaults"`
	} `yaml:"catalog"`

	Output struct {
		Dir    string `env:"I18NTIDY_OUTPUT_DIR,overwrite" yaml:"dir"`
		Prefix string `env:"I18NTIDY_PREFIX,overwrite" yaml:"prefix"`
		Suffix string `env:"I18NTIDY_SUFFIX,overwrite" yaml:"suffix"`
		Format string `env:"I18NTIDY_FORMAT,overwrite" yaml:"format"`
		Mode   string `env:"I18NTIDY_MODE,overwrite" yaml:"mode"`
		// Workers bounds parallel scanning; 0 uses one worker per CPU.
		Workers int `env:"I18NTIDY_WORKERS,overwrite" yaml:"workers"`
	} `yaml:"output"`

	Log struct {
		Level   string   `env:"I18NTIDY_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"I18NTIDY_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"I18NTIDY_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// Load loads the configuration from various sources. args are the command
// line arguments without the program name.
func (cfg *Config) Load(args []string) error {
	flags, err := parseCommandLineArgs(args)
	if err != nil {
		return err
	}

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (I18NTIDY_CONFIGFILE)
	// 3. Default path with fallback check
	if flags.configSet {
		configFilePath = flags.configFilePath
	} else if envVar := os.Getenv(configFileEnvVar); envVar != "" {
		configFilePath = envVar
	} else {
		configFilePath = defaultConfigFilePath
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat(fallbackConfigPath); statErr == nil {
				configFilePath = fallbackConfigPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build = readBuildInfo()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	flags.apply(cfg)

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// Delimiters returns the interpolation delimiters of the templates.
func (cfg *Config) Delimiters() pattern.Delimiters {
	return pattern.Delimiters{
		Start: cfg.Sources.Interpolation.StartDelimiter,
		End:   cfg.Sources.Interpolation.EndDelimiter,
	}
}
