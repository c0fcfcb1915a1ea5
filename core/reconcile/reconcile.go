// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package reconcile cross-references existing catalogs with the keys found in
the sources. For one language, [Reconcile] classifies every stored key,
merges the catalog with the scan result and aggregates the statistics.
*/
package reconcile

import (
	"codeberg.org/pixivfe/i18ntidy/core/catalog"
	"codeberg.org/pixivfe/i18ntidy/core/extract"
	"codeberg.org/pixivfe/i18ntidy/core/source"
)

// Input holds what Reconcile needs for one language.
type Input struct {
	Lang     string
	Existing catalog.Flat
	Scanned  extract.Result
	Corpus   []source.Document
	Merge    catalog.MergeOptions
}

// Outcome is the result of reconciling one language.
type Outcome struct {
	Merged      catalog.Flat
	Diagnostics []Diagnostic
	Stats       Stats
}

// Unused returns the stored keys no source mentions.
func (o Outcome) Unused() []string {
	return Unused(o.Diagnostics)
}

// Reconcile classifies the existing keys of in, merges the catalog and
// computes its statistics.
func Reconcile(in Input) Outcome {
	diags := Classify(in.Existing.Keys(), in.Corpus, in.Scanned)

	merged, counts := catalog.Merge(in.Existing, in.Scanned, in.Merge)

	return Outcome{
		Merged:      merged,
		Diagnostics: diags,
		Stats:       Aggregate(in.Lang, in.Existing, merged, counts, in.Merge.NullEmpty),
	}
}
