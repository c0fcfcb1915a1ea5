// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/pixivfe/i18ntidy/core/pattern"

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Sources.Cwd = "."
	cfg.Sources.Templates = []string{"src/**/*.html"}
	cfg.Sources.Scripts = []string{"src/**/*.js"}
	cfg.Sources.Interpolation.StartDelimiter = pattern.DefaultDelimiters.Start
	cfg.Sources.Interpolation.EndDelimiter = pattern.DefaultDelimiters.End

	cfg.Catalog.Languages = []string{"en"}
	cfg.Catalog.DefaultLanguage = "en"
	cfg.Catalog.Existing = nil
	cfg.Catalog.NullEmpty = false
	cfg.Catalog.Namespace = false
	cfg.Catalog.SafeMode = false
	cfg.Catalog.KeyAsText = false
	cfg.Catalog.RefreshDefaults = false

	cfg.Output.Dir = "i18n"
	cfg.Output.Prefix = ""
	cfg.Output.Suffix = ""
	cfg.Output.Format = "json"
	cfg.Output.Mode = "sync"
	cfg.Output.Workers = 0

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
