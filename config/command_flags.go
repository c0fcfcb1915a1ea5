// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
)

// commandFlags are the command-line settings. They take precedence over
// every other source.
type commandFlags struct {
	configFilePath string
	configSet      bool

	mode string
}

// parseCommandLineArgs parses args into commandFlags.
func parseCommandLineArgs(args []string) (commandFlags, error) {
	var flags commandFlags

	fs := flag.NewFlagSet("i18ntidy", flag.ContinueOnError)
	fs.StringVar(&flags.configFilePath, "config", defaultConfigFilePath, "Path to an i18ntidy configuration file in YAML format.")
	fs.StringVar(&flags.mode, "mode", "", `What to do with the merged catalogs: "sync" writes them, "unused" only reports.`)

	if err := fs.Parse(args); err != nil {
		return commandFlags{}, fmt.Errorf("failed to parse command line: %w", err)
	}

	// Check if the -config flag was explicitly set by the user.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			flags.configSet = true
		}
	})

	return flags, nil
}

func (flags commandFlags) apply(cfg *Config) {
	if flags.mode != "" {
		cfg.Output.Mode = flags.mode
	}
}
