// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package extract finds translation keys in template and script sources.

An [Extractor] applies the patterns of package pattern to each document and
normalizes every match into canonical keys with a default value:

	ex, err := extract.New(extract.Options{KeyAsText: true})
	res := ex.Scan(docs)
	// res["home.title"] == "home.title"

Results accumulate into a single [Result] where a later write of the same key
overwrites an earlier one (documents in traversal order, patterns in registry order).
*/
package extract

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
	"codeberg.org/pixivfe/i18ntidy/core/source"
)

// Result maps each discovered key to its default value.
type Result map[string]string

// Keys returns the keys of r in sorted order.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Options configures an Extractor.
type Options struct {
	// Delimiters are the interpolation delimiters of the templates.
	// The zero value selects [pattern.DefaultDelimiters].
	Delimiters pattern.Delimiters

	// KeyAsText uses each key as its own default value when none was captured.
	KeyAsText bool
}

// Extractor scans documents for translation keys.
// It holds no per-scan state and is safe for concurrent use.
type Extractor struct {
	registry  *pattern.Registry
	norm      normalizer
	byDialect map[pattern.Dialect][]*pattern.Pattern
	logger    zerolog.Logger
}

// New compiles the pattern registry for opts and returns an Extractor.
func New(opts Options) (*Extractor, error) {
	delims := opts.Delimiters
	if delims == (pattern.Delimiters{}) {
		delims = pattern.DefaultDelimiters
	}

	reg, err := pattern.NewRegistry(delims)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern registry: %w", err)
	}

	byDialect := map[pattern.Dialect][]*pattern.Pattern{
		pattern.Template: reg.For(pattern.Template),
		pattern.Script:   reg.For(pattern.Script),
	}

	return &Extractor{
		registry:  reg,
		norm:      normalizer{delims: delims, keyAsText: opts.KeyAsText},
		byDialect: byDialect,
		logger:    log.With().Str("sys", "extract").Logger(),
	}, nil
}

// Registry returns the compiled patterns used by e.
func (e *Extractor) Registry() *pattern.Registry {
	return e.registry
}

// Scan extracts the keys of every document into a new Result.
func (e *Extractor) Scan(docs []source.Document) Result {
	res := make(Result)

	for _, doc := range docs {
		before := len(res)

		e.ScanText(doc.Dialect, doc.Content, res)

		e.logger.Debug().
			Str("path", doc.Path).
			Stringer("dialect", doc.Dialect).
			Int("new_keys", len(res)-before).
			Msg("Scanned document")
	}

	return res
}

// ScanConcurrent is like Scan but processes up to workers documents at a time.
// Per-document results are merged in document order, so the returned Result
// equals the one from Scan.
func (e *Extractor) ScanConcurrent(ctx context.Context, docs []source.Document, workers int) (Result, error) {
	if workers <= 1 {
		return e.Scan(docs), nil
	}

	partial := make([]Result, len(docs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r := make(Result)
			e.ScanText(doc.Dialect, doc.Content, r)
			partial[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make(Result)

	for _, r := range partial {
		for k, v := range r {
			res[k] = v
		}
	}

	return res, nil
}

// ScanText extracts the keys of one text of dialect d into into.
func (e *Extractor) ScanText(d pattern.Dialect, text string, into Result) {
	for _, p := range e.byDialect[d] {
		if p.Strategy == pattern.ScanAll {
			for _, whole := range p.WholeMatches(text) {
				e.apply(p, whole, into)
			}

			continue
		}

		e.apply(p, text, into)
	}
}

// Entries returns the canonical entries of every match of p in text, without
// the scan-all narrowing step.
func (e *Extractor) Entries(p *pattern.Pattern, text string) []Entry {
	var out []Entry

	for _, groups := range p.Submatches(text) {
		out = append(out, e.norm.normalize(p, groups)...)
	}

	return out
}

func (e *Extractor) apply(p *pattern.Pattern, text string, into Result) {
	for _, entry := range e.Entries(p, text) {
		into[entry.Key] = entry.Default
	}
}
