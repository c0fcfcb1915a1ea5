// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package source resolves glob patterns to template and script files and reads
them into memory as [Document] values for the extraction engine.
*/
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"codeberg.org/pixivfe/i18ntidy/core/pattern"
)

// ErrInvalidPattern is returned when a glob pattern is malformed.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// defaultReadWorkers bounds concurrent file reads.
const defaultReadWorkers = 8

// Document is the content of one source file.
type Document struct {
	Path    string
	Dialect pattern.Dialect
	Content string
}

// Expand resolves patterns against fsys. Patterns support "**" for any number of
// directories. Matches of each pattern are sorted, pattern order is kept, and a
// path matched by several patterns is returned once, at its first position.
func Expand(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})

	var out []string

	for _, p := range patterns {
		// fs.FS paths are unrooted: "./app/*.html" is "app/*.html".
		p = path.Clean(p)

		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}

		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", p, err)
		}

		sort.Strings(matches)

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}

			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	return out, nil
}

// Read expands patterns against fsys and reads every matched file as a document
// of dialect d. Files are read concurrently; the result keeps traversal order.
func Read(ctx context.Context, fsys fs.FS, d pattern.Dialect, patterns []string) ([]Document, error) {
	paths, err := Expand(fsys, patterns)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultReadWorkers)

	for i, name := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}

			docs[i] = Document{Path: name, Dialect: d, Content: string(data)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}
