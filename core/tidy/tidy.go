// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tidy runs a complete pass over a project: it reads the template and
script sources, extracts their keys, reconciles every language catalog and
writes the merged catalogs.
*/
package tidy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/pixivfe/i18ntidy/core/audit"
	"codeberg.org/pixivfe/i18ntidy/core/catalog"
	"codeberg.org/pixivfe/i18ntidy/core/catalogfile"
	"codeberg.org/pixivfe/i18ntidy/core/extract"
	"codeberg.org/pixivfe/i18ntidy/core/pattern"
	"codeberg.org/pixivfe/i18ntidy/core/reconcile"
	"codeberg.org/pixivfe/i18ntidy/core/source"
)

// Mode selects what Run does with the merged catalogs.
type Mode string

const (
	// ModeSync writes the merged catalogs.
	ModeSync Mode = "sync"
	// ModeUnused only reports statistics and unused keys.
	ModeUnused Mode = "unused"
)

var (
	// ErrNoLanguages is returned by Run when Settings lists no language.
	ErrNoLanguages = errors.New("no languages to process")
	// ErrNoSources is returned by Run when Settings has neither template nor script patterns.
	ErrNoSources = errors.New("no template or script patterns")
	// ErrUnknownMode is returned by Run for a Mode other than ModeSync or ModeUnused.
	ErrUnknownMode = errors.New("unknown mode")
)

// Settings configures a run. Relative paths are resolved against Cwd.
type Settings struct {
	Cwd        string
	Templates  []string
	Scripts    []string
	Delimiters pattern.Delimiters

	Languages       []string
	DefaultLanguage string

	// Existing lists the catalog files to read for each language. A "*" in a
	// path is replaced by the language code. When empty, the output file of
	// the language is read.
	Existing []string

	NullEmpty       bool
	Namespace       bool
	SafeMode        bool
	KeyAsText       bool
	RefreshDefaults bool

	OutputDir string
	Prefix    string
	// Suffix defaults to the extension of Format.
	Suffix string
	Format string

	Mode    Mode
	Workers int
}

// Summary describes a finished run.
type Summary struct {
	TemplateFiles int
	ScriptFiles   int
	Languages     []string
	Stats         []reconcile.Stats

	// Unused maps each language to the stored keys no source mentions.
	Unused map[string][]string
}

// Run performs a pass as configured by s.
func Run(ctx context.Context, s Settings) (Summary, error) {
	logger := log.With().Str("sys", "tidy").Logger()

	if len(s.Languages) == 0 {
		return Summary{}, ErrNoLanguages
	}

	if len(s.Templates) == 0 && len(s.Scripts) == 0 {
		return Summary{}, ErrNoSources
	}

	mode := s.Mode
	if mode == "" {
		mode = ModeSync
	}

	if mode != ModeSync && mode != ModeUnused {
		return Summary{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	cwd := s.Cwd
	if cwd == "" {
		cwd = "."
	}

	writer, err := catalogfile.NewWriter(s.Format, catalogfile.Options{Namespace: s.Namespace})
	if err != nil {
		return Summary{}, err
	}

	suffix := s.Suffix
	if suffix == "" {
		suffix = writer.Ext()
	}

	fsys := os.DirFS(cwd)

	readSpan := audit.Span{Phase: audit.PhaseRead, Path: cwd}
	readCtx := readSpan.Begin(ctx)
	defer readSpan.End()

	templates, err := source.Read(readCtx, fsys, pattern.Template, s.Templates)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read templates: %w", err)
	}

	scripts, err := source.Read(readCtx, fsys, pattern.Script, s.Scripts)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read scripts: %w", err)
	}

	readSpan.End()

	logger.Info().
		Strs("languages", s.Languages).
		Int("templates", len(templates)).
		Int("scripts", len(scripts)).
		Msg("Read sources")

	ex, err := extract.New(extract.Options{Delimiters: s.Delimiters, KeyAsText: s.KeyAsText})
	if err != nil {
		return Summary{}, err
	}

	corpus := make([]source.Document, 0, len(templates)+len(scripts))
	corpus = append(corpus, templates...)
	corpus = append(corpus, scripts...)

	readSpan.Items = len(corpus)
	for _, doc := range corpus {
		readSpan.Bytes += len(doc.Content)
	}

	readSpan.Log()

	scanSpan := audit.Span{Phase: audit.PhaseScan, Items: len(corpus), Bytes: readSpan.Bytes}

	found, err := ex.ScanConcurrent(scanSpan.Begin(ctx), corpus, s.Workers)
	scanSpan.End()
	scanSpan.Error = err
	scanSpan.Log()

	if err != nil {
		return Summary{}, fmt.Errorf("failed to scan sources: %w", err)
	}

	logger.Info().Int("keys", len(found)).Msg("Extracted keys")

	summary := Summary{
		TemplateFiles: len(templates),
		ScriptFiles:   len(scripts),
		Languages:     s.Languages,
		Unused:        make(map[string][]string, len(s.Languages)),
	}

	outDir := resolve(cwd, s.OutputDir)

	for _, lang := range s.Languages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dest := catalogfile.Destination(outDir, s.Prefix, lang, suffix)

		existing, err := catalogfile.LoadAll(existingPaths(cwd, s.Existing, lang, dest), s.Format)
		if err != nil {
			return summary, err
		}

		mergeSpan := audit.Span{Phase: audit.PhaseMerge, Lang: lang, Items: len(existing)}
		mergeSpan.Begin(ctx)

		out := reconcile.Reconcile(reconcile.Input{
			Lang:     lang,
			Existing: existing,
			Scanned:  found,
			Corpus:   corpus,
			Merge: catalog.MergeOptions{
				NullEmpty:       s.NullEmpty,
				SafeMode:        s.SafeMode,
				DefaultLanguage: lang == s.DefaultLanguage,
				RefreshDefaults: s.RefreshDefaults,
			},
		})

		mergeSpan.End()
		mergeSpan.Log()

		unused := out.Unused()

		logger.Info().
			Str("lang", lang).
			Int("total", len(existing)).
			Int("unused", len(unused)).
			Msg("Checked existing translations")

		if mode == ModeSync {
			writeSpan := audit.Span{Phase: audit.PhaseWrite, Lang: lang, Path: dest, Items: len(out.Merged)}
			writeSpan.Begin(ctx)
			writeSpan.Error = catalogfile.Save(writer, dest, lang, out.Merged)
			writeSpan.End()
			writeSpan.Log()

			if writeSpan.Error != nil {
				return summary, writeSpan.Error
			}
		}

		logger.Info().Str("lang", lang).Str("path", dest).Msg(out.Stats.String())

		summary.Stats = append(summary.Stats, out.Stats)
		summary.Unused[lang] = unused
	}

	return summary, nil
}

// existingPaths returns the catalog files to read for lang.
func existingPaths(cwd string, patterns []string, lang, dest string) []string {
	if len(patterns) == 0 {
		return []string{dest}
	}

	paths := make([]string, 0, len(patterns))
	for _, p := range patterns {
		paths = append(paths, resolve(cwd, strings.ReplaceAll(p, "*", lang)))
	}

	return paths
}

func resolve(cwd, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cwd, path)
}
