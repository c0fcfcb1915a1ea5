// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
i18ntidy extracts translation keys from AngularJS-style templates and
scripts and keeps the per-language translation catalogs in sync with them.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/i18ntidy/config"
	"codeberg.org/pixivfe/i18ntidy/core/audit"
	"codeberg.org/pixivfe/i18ntidy/core/tidy"
)

// main is the entry point of the application.
func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run loads the configuration and performs one pass.
func run(args []string) error {
	audit.SetDefaultLogger()

	var cfg config.Config
	if err := cfg.Load(args); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// An interrupt stops the run between files and languages.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := tidy.Run(ctx, cfg.Settings())
	if err != nil {
		return err
	}

	report(summary)

	return nil
}

// report logs the outcome of a run.
func report(summary tidy.Summary) {
	for _, stats := range summary.Stats {
		unused := summary.Unused[stats.Lang]

		log.Info().
			Str("lang", stats.Lang).
			Int("total", stats.Total).
			Int(stats.Kind(), stats.Incomplete()).
			Int("percentage", stats.Percentage()).
			Int("new", stats.New).
			Int("updated", stats.Updated).
			Int("deleted", stats.Deleted).
			Int("unused", len(unused)).
			Msg("Catalog summary")

		for _, key := range unused {
			log.Warn().
				Str("lang", stats.Lang).
				Str("key", key).
				Msg("Unused translation")
		}
	}

	log.Info().
		Int("templates", summary.TemplateFiles).
		Int("scripts", summary.ScriptFiles).
		Strs("languages", summary.Languages).
		Msg("Done")
}
