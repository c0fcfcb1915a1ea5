// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/pixivfe/i18ntidy/core/tidy"

// Settings returns the run settings described by cfg.
func (cfg *Config) Settings() tidy.Settings {
	return tidy.Settings{
		Cwd:        cfg.Sources.Cwd,
		Templates:  cfg.Sources.Templates,
		Scripts:    cfg.Sources.Scripts,
		Delimiters: cfg.Delimiters(),

		Languages:       cfg.Catalog.Languages,
		DefaultLanguage: cfg.Catalog.DefaultLanguage,
		Existing:        cfg.Catalog.Existing,

		NullEmpty:       cfg.Catalog.NullEmpty,
		Namespace:       cfg.Catalog.Namespace,
		SafeMode:        cfg.Catalog.SafeMode,
		KeyAsText:       cfg.Catalog.KeyAsText,
		RefreshDefaults: cfg.Catalog.RefreshDefaults,

		OutputDir: cfg.Output.Dir,
		Prefix:    cfg.Output.Prefix,
		Suffix:    cfg.Output.Suffix,
		Format:    cfg.Output.Format,

		Mode:    tidy.Mode(cfg.Output.Mode),
		Workers: cfg.Output.Workers,
	}
}
