// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func (cfg *Config) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Str("go", cfg.Build.GoVersion).
		Msg("Starting i18ntidy")

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	configYAML, err := cfg.YAML()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Debug().
		Msg("Run configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// YAML returns the configuration as indented YAML.
func (cfg *Config) YAML() ([]byte, error) {
	return yaml.MarshalWithOptions(cfg, yaml.Indent(2), yaml.IndentSequence(true))
}
