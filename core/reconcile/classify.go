// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package reconcile

import (
	"sort"
	"strings"

	"codeberg.org/pixivfe/i18ntidy/core/extract"
	"codeberg.org/pixivfe/i18ntidy/core/pattern"
	"codeberg.org/pixivfe/i18ntidy/core/source"
)

// Diagnostic reports how an existing catalog key relates to the scanned sources.
//
// KnownString and Maybe are loose textual checks; Found is set only when the
// key went through pattern recognition. They are reported independently.
type Diagnostic struct {
	Key string

	// KnownString is set when the key text appears anywhere in a document.
	KnownString bool

	// Maybe is set when the key appears in one of the forms a reference
	// usually takes in the document's dialect.
	Maybe bool

	// Found is set when the key is in the scan result.
	Found bool

	Unknown bool
	Missing bool
}

// Classify computes a Diagnostic for each of keys against corpus and found.
// The result keeps the order of keys.
func Classify(keys []string, corpus []source.Document, found extract.Result) []Diagnostic {
	diags := make([]Diagnostic, 0, len(keys))

	for _, key := range keys {
		d := Diagnostic{Key: key}
		_, d.Found = found[key]

		for _, doc := range corpus {
			if !strings.Contains(doc.Content, key) {
				continue
			}

			d.KnownString = true

			if maybeReferenced(doc, key) {
				d.Maybe = true

				break
			}
		}

		d.Unknown = !d.KnownString
		d.Missing = !d.Maybe

		diags = append(diags, d)
	}

	return diags
}

// maybeReferenced reports whether key, already known to occur in doc, appears
// in a form that looks like a reference. Templates accept the bare key, which
// covers element content (">key<") and the quoted forms.
func maybeReferenced(doc source.Document, key string) bool {
	if doc.Dialect&pattern.Template != 0 {
		return true
	}

	return strings.Contains(doc.Content, `"`+key+`"`) || strings.Contains(doc.Content, `'`+key+`'`)
}

// Unused returns the keys of diags that no document mentions, sorted.
func Unused(diags []Diagnostic) []string {
	var out []string

	for _, d := range diags {
		if d.Unknown {
			out = append(out, d.Key)
		}
	}

	sort.Strings(out)

	return out
}
