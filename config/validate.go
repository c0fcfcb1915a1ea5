// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// validation errors.
var (
	errNoLanguages              = errors.New("at least one language is required")
	errInvalidLanguage          = errors.New("invalid language code")
	errDuplicateLanguage        = errors.New("language listed more than once")
	errDefaultLanguageNotListed = errors.New("Catalog.DefaultLanguage must be one of Catalog.Languages")
	errNoSources                = errors.New("at least one template or script pattern is required")
	errEmptyDelimiter           = errors.New("interpolation delimiters cannot be empty")
	errInvalidFormat            = errors.New("invalid Output.Format value")
	errInvalidMode              = errors.New("invalid Output.Mode value")
	errNegativeWorkers          = errors.New("Output.Workers cannot be negative")
	errInvalidLogFormat         = errors.New("invalid Log.Format value")
)

// validateAndSet validates the configuration and normalizes some fields.
func (cfg *Config) validateAndSet() error {
	// Languages are kept as written since they name the catalog files, but
	// each must be a valid BCP 47 tag. Underscores are accepted as in "pt_BR".
	if len(cfg.Catalog.Languages) == 0 {
		return errNoLanguages
	}

	seen := make(map[string]struct{}, len(cfg.Catalog.Languages))

	for _, lang := range cfg.Catalog.Languages {
		tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-"))
		if err != nil {
			return fmt.Errorf("%w %q: %w", errInvalidLanguage, lang, err)
		}

		if _, ok := seen[tag.String()]; ok {
			return fmt.Errorf("%w: %q", errDuplicateLanguage, lang)
		}

		seen[tag.String()] = struct{}{}
	}

	if cfg.Catalog.DefaultLanguage != "" && !slices.Contains(cfg.Catalog.Languages, cfg.Catalog.DefaultLanguage) {
		return fmt.Errorf("%w: %q", errDefaultLanguageNotListed, cfg.Catalog.DefaultLanguage)
	}

	if len(cfg.Sources.Templates) == 0 && len(cfg.Sources.Scripts) == 0 {
		return errNoSources
	}

	if cfg.Sources.Cwd == "" {
		cfg.Sources.Cwd = "."
	}

	if cfg.Sources.Interpolation.StartDelimiter == "" || cfg.Sources.Interpolation.EndDelimiter == "" {
		return errEmptyDelimiter
	}

	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	switch cfg.Output.Format {
	case "json", "po":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidFormat, cfg.Output.Format)
	}

	cfg.Output.Mode = strings.ToLower(cfg.Output.Mode)
	switch cfg.Output.Mode {
	case "sync", "unused":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidMode, cfg.Output.Mode)
	}

	if cfg.Output.Workers < 0 {
		return errNegativeWorkers
	}

	if cfg.Output.Workers == 0 {
		cfg.Output.Workers = runtime.NumCPU()
		log.Debug().
			Int("workers", cfg.Output.Workers).
			Msg("Using one scan worker per CPU")
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
