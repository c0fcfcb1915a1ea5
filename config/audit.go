// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// setupAudit sets the global log level and outputs.
func (cfg *Config) setupAudit() {
	switch cfg.Log.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}

	writers := []io.Writer{}

	if len(cfg.Log.Outputs) == 0 {
		writers = append(writers, cfg.writerFor(os.Stderr))
	} else {
		for _, output := range cfg.Log.Outputs {
			var w io.Writer

			switch output {
			case "/dev/stdout":
				w = cfg.writerFor(os.Stdout)
			case "/dev/stderr":
				w = cfg.writerFor(os.Stderr)
			default:
				file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
				if err != nil {
					// If opening the file fails, we simply don't add it to the writers.
					fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

					continue
				}

				w = cfg.writerFor(file)
			}

			writers = append(writers, w)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

// writerFor returns a raw JSON writer or a console writer for f, according to Log.Format.
func (cfg *Config) writerFor(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	w := zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.TimeOnly}

	if !noColor {
		w.FormatPrepare = formatPhase
	}

	return w
}

// formatPhase condenses run phase logs into a single message.
func formatPhase(m map[string]any) error {
	if sys, ok := m["sys"]; !ok || sys != "phase" {
		return nil
	}

	msg := fmt.Sprintf("[%s] %v items, %v in %v", m["phase"], m["items"], m["len"], m["dur"])
	if lang, ok := m["lang"]; ok {
		msg = fmt.Sprintf("%s (%v)", msg, lang)
	}

	m["message"] = msg

	delete(m, "sys")
	delete(m, "phase")
	delete(m, "items")
	delete(m, "len")
	delete(m, "dur")
	delete(m, "lang")

	return nil
}
